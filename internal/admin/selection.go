package admin

import "sync"

// Selection tracks which messages an operator has marked for a bulk action
// such as an export. It holds ids only, the filtered list stays the source
// of truth for ordering.
type Selection struct {
	mu  sync.Mutex
	ids map[uint64]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[uint64]struct{})}
}

// Toggle flips one id and reports whether it is selected afterwards.
func (s *Selection) Toggle(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *Selection) Has(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// ToggleAll works over the currently filtered ids: if every one of them is
// already selected they all get deselected, otherwise the missing ones are
// added. Ids outside the filter are left alone.
func (s *Selection) ToggleAll(filtered []uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := true
	for _, id := range filtered {
		if _, ok := s.ids[id]; !ok {
			all = false
			break
		}
	}

	for _, id := range filtered {
		if all {
			delete(s.ids, id)
		} else {
			s.ids[id] = struct{}{}
		}
	}
}

// AllSelected reports whether every filtered id is currently selected.
func (s *Selection) AllSelected(filtered []uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(filtered) == 0 {
		return false
	}
	for _, id := range filtered {
		if _, ok := s.ids[id]; !ok {
			return false
		}
	}
	return true
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[uint64]struct{})
}
