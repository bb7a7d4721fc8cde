package format

type Badge string

const (
	BadgeSuccess Badge = "success"
	BadgeWarning Badge = "warning"
	BadgeDanger  Badge = "danger"
	BadgeInfo    Badge = "info"
	BadgeNeutral Badge = "neutral"
)

// statusBadges covers both order and payment statuses.
var statusBadges = map[string]Badge{
	"pending":    BadgeWarning,
	"confirmed":  BadgeInfo,
	"processing": BadgeInfo,
	"shipped":    BadgeInfo,
	"delivered":  BadgeSuccess,
	"cancelled":  BadgeDanger,
	"refunded":   BadgeNeutral,

	"completed": BadgeSuccess,
	"failed":    BadgeDanger,
}

// StatusBadge maps a status string to its badge, BadgeNeutral when unknown.
func StatusBadge(status string) Badge {
	if b, ok := statusBadges[status]; ok {
		return b
	}
	return BadgeNeutral
}

// Class returns the CSS class of the badge.
func (b Badge) Class() string {
	if b == BadgeNeutral {
		return "badge-gray"
	}
	return "badge-" + string(b)
}

func StatusClass(status string) string {
	return StatusBadge(status).Class()
}

// ActiveClass is the badge class for an active/inactive flag.
func ActiveClass(active bool) string {
	if active {
		return BadgeSuccess.Class()
	}
	return BadgeNeutral.Class()
}

// StockClass colors a stock level: plenty, low, or out.
func StockClass(stock int) string {
	switch {
	case stock > 10:
		return "text-green"
	case stock > 0:
		return "text-yellow"
	default:
		return "text-red"
	}
}
