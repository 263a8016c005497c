package search

import (
	"log"
	"strings"

	"pickgrip/internal/registry"
	"pickgrip/internal/ui/state"
)

// Service filters the visible options by a case-insensitive substring query.
// It only ever touches the search-hidden flag, never the selection.
type Service struct {
	state    *state.State
	selectFn SelectFunc
}

// NewService creates a new search service
func NewService(st *state.State) *Service {
	return &Service{state: st}
}

// SetSelectFunction sets the function used to select the single match on enter
func (s *Service) SetSelectFunction(fn SelectFunc) {
	s.selectFn = fn
}

// Apply filters the rows by query. An empty query shows everything.
func (s *Service) Apply(query string) {
	st := s.state
	st.Query = query

	needle := strings.ToLower(query)
	visible := 0
	for i, item := range st.Registry.Items {
		hide := needle != "" && !s.matches(i, needle)
		item.Set(registry.FlagSearchHidden, hide)
		// disabled rows are still shown
		if !item.Has(registry.FlagSearchHidden | registry.FlagHidden) {
			visible++
		}
	}

	st.Messages.NoResults = needle != "" && visible == 0
	if st.Messages.NoResults {
		st.Messages.NoMoreOptions = false
	}

	// Keep the hover cursor on something the user can still see
	if cur := st.Registry.Item(st.Cursor); cur != nil && !cur.Reachable() {
		cur.Remove(registry.FlagHover)
		st.Cursor = -1
	}
}

// Reset clears the query and every search-hidden flag
func (s *Service) Reset() {
	s.state.Query = ""
	s.state.Registry.ClearFlag(registry.FlagSearchHidden)
	s.state.Messages.NoResults = false
}

// Matches returns the selectable options whose text contains query
func (s *Service) Matches(query string) []MatchResult {
	st := s.state
	needle := strings.ToLower(query)
	if needle == "" {
		return nil
	}

	var results []MatchResult
	for i, item := range st.Registry.Items {
		if item.Has(registry.FlagHidden | registry.FlagDisabled) {
			continue
		}
		if !s.matches(i, needle) {
			continue
		}
		results = append(results, MatchResult{
			Index:    i,
			Text:     st.Registry.Options[i].Text,
			Selected: st.Select.IsSelected(i),
		})
	}
	return results
}

// CheckEnter selects the only unselected match of the current query. It
// returns the selected index, or -1 when the query was ambiguous.
func (s *Service) CheckEnter() int {
	st := s.state
	var unselected []MatchResult
	for _, m := range s.Matches(st.Query) {
		if !m.Selected {
			unselected = append(unselected, m)
		}
	}
	if len(unselected) != 1 || s.selectFn == nil {
		return -1
	}

	index := unselected[0].Index
	if !s.selectFn(index, st.Settings.Multiple) {
		log.Printf("search: enter on %q could not select option %d", st.Query, index)
		return -1
	}
	return index
}

func (s *Service) matches(i int, needle string) bool {
	return strings.Contains(strings.ToLower(s.state.Registry.Options[i].Text), needle)
}
