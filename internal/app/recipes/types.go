package recipes

// SearchInput is an unvalidated search request.
type SearchInput struct {
	// Ingredients is nil when the caller omitted the field. A single string
	// is passed as a one-element slice.
	Ingredients []string
	// MinProtein and MaxTime are nil when unset; the sentinels 0 and 999 apply.
	MinProtein *float64
	MaxTime    *float64
}
