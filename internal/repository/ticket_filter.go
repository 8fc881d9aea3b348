package repository

// TicketFilter narrows repair and request listings.
type TicketFilter struct {
	Status   string
	Category string
	Limit    int
	Offset   int
}

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// Normalize clamps Limit and Offset to sane bounds.
func (f TicketFilter) Normalize() TicketFilter {
	if f.Limit <= 0 || f.Limit > MaxLimit {
		f.Limit = DefaultLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
