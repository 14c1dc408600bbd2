package domain

// Order selects the sort field for task listings.
// Listings are always ascending; ties break on insertion order.
type Order int

const (
	// OrderByDoBy sorts soonest due first. Used by the home listing.
	OrderByDoBy Order = iota
	// OrderByName sorts lexicographically by name. Used by the list-all API.
	OrderByName
)

// String returns the string representation of the order.
func (o Order) String() string {
	switch o {
	case OrderByName:
		return "name"
	default:
		return "do_by"
	}
}
