package bulkops

import "sort"

// SelectionSet tracks which user IDs are checked for a group action. It is
// owned by a single request/session context and is not safe for concurrent
// use; the dashboard only ever mutates it from one goroutine.
type SelectionSet struct {
	ids map[string]struct{}
}

func NewSelectionSet(ids ...string) *SelectionSet {
	s := &SelectionSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Toggle flips membership of id.
func (s *SelectionSet) Toggle(id string) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
}

// SelectAll implements "select all / deselect all": if the current
// selection is already exactly ids, it clears; otherwise it becomes ids.
func (s *SelectionSet) SelectAll(ids []string) {
	if s.equals(ids) {
		s.Clear()
		return
	}
	s.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Clear empties the selection.
func (s *SelectionSet) Clear() {
	s.ids = make(map[string]struct{})
}

// Prune drops members absent from valid, keeping the invariant that a
// selection is a subset of the currently filtered view.
func (s *SelectionSet) Prune(valid []string) {
	keep := make(map[string]struct{}, len(valid))
	for _, id := range valid {
		if _, ok := s.ids[id]; ok {
			keep[id] = struct{}{}
		}
	}
	s.ids = keep
}

func (s *SelectionSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *SelectionSet) Len() int { return len(s.ids) }

// IDs returns the selected IDs in sorted order.
func (s *SelectionSet) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *SelectionSet) equals(ids []string) bool {
	if len(s.ids) != len(ids) {
		return false
	}
	for _, id := range ids {
		if _, ok := s.ids[id]; !ok {
			return false
		}
	}
	return true
}
