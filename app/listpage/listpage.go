// Package listpage holds the state machine shared by every paginated
// management screen: fetch a page, filter it, edit rows in a modal form and
// delete rows after confirmation.
package listpage

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotConfirmed = errors.New("listpage: delete not confirmed")
	ErrClosed       = errors.New("listpage: controller closed")
	ErrModalClosed  = errors.New("listpage: no form is open")
	ErrUnsupported  = errors.New("listpage: operation not supported by this resource")
)

// ValidationError is returned by Submit when the form is rejected before any
// request is made. Message is the notification text, Fields the inline errors.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string { return e.Message }

type Query struct {
	Page      int
	Limit     int
	Search    string
	Filter    string
	SortBy    string
	SortOrder string
}

type Page[T any] struct {
	Items      []T
	Total      int
	TotalPages int
}

type Lister[T any] interface {
	List(ctx context.Context, q Query) (Page[T], error)
}

type Creator[F any] interface {
	Create(ctx context.Context, form F) error
}

type Updater[F any] interface {
	Update(ctx context.Context, key string, form F) error
}

type Deleter interface {
	Delete(ctx context.Context, key string) error
}

// Schema describes the form of a resource.
type Schema[T any, F any] interface {
	Key(row T) string
	Defaults() F
	FromRow(row T) F
	// Validate returns nil when the form may be sent.
	Validate(form F) *ValidationError
}

type Notifier interface {
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Messages are the notifications raised by a controller.
type Messages struct {
	FetchFailed   string
	Created       string
	CreateFailed  string
	Updated       string
	UpdateFailed  string
	Deleted       string
	DeleteFailed  string
	ConfirmDelete string
}

// DefaultMessages builds the usual notifications for a resource named by its
// singular and plural nouns, e.g. ("product", "products").
func DefaultMessages(singular, plural string) Messages {
	if singular == "" {
		return Messages{}
	}
	title := strings.ToUpper(singular[:1]) + singular[1:]
	return Messages{
		FetchFailed:   "Failed to fetch " + plural,
		Created:       title + " created successfully",
		CreateFailed:  "Failed to create " + singular,
		Updated:       title + " updated successfully",
		UpdateFailed:  "Failed to update " + singular,
		Deleted:       title + " deleted successfully",
		DeleteFailed:  "Failed to delete " + singular,
		ConfirmDelete: "Are you sure you want to delete this " + singular + "?",
	}
}

type Modal[F any] struct {
	Open   bool
	Key    string
	Form   F
	Errors map[string]string
}

func (m Modal[F]) Editing() bool { return m.Open && m.Key != "" }

// State is a snapshot of a controller, safe to hand to a template.
type State[T any, F any] struct {
	Query      Query
	Items      []T
	Total      int
	TotalPages int
	Loading    bool
	Stale      bool
	Err        error
	Modal      Modal[F]
}

func (s State[T, F]) HasPrev() bool { return s.Query.Page > 1 }

func (s State[T, F]) HasNext() bool { return s.Query.Page < s.TotalPages }
