package search

// MatchResult represents a search match
type MatchResult struct {
	Index    int
	Text     string
	Selected bool
}

// SelectFunc selects option index and returns false when it could not
type SelectFunc func(index int, additive bool) bool
