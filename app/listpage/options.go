package listpage

import "time"

const (
	DefaultLimit       = 20
	DefaultSearchDelay = 300 * time.Millisecond
)

type options struct {
	filterResetsPage bool
	skipRefetch      bool
	initial          Query
	searchDelay      time.Duration
}

type Option func(*options)

// FilterResetsPage moves back to page 1 whenever search or filter change.
func FilterResetsPage() Option {
	return func(o *options) { o.filterResetsPage = true }
}

// SkipRefetch marks the list stale after a mutation instead of fetching it
// again. Used when the caller redirects and the next request refetches.
func SkipRefetch() Option {
	return func(o *options) { o.skipRefetch = true }
}

func Initial(q Query) Option {
	return func(o *options) { o.initial = q }
}

func SearchDelay(d time.Duration) Option {
	return func(o *options) { o.searchDelay = d }
}
