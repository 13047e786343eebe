package selection

import (
	"sort"
	"strings"
	"sync"
)

// Service tracks which objects are selected in each named selection list.
// The related-item lookup panel and the submission form share one
// instance.
type Service struct {
	mu    sync.RWMutex
	lists map[string]map[string]struct{}
}

func New() *Service {
	return &Service{
		lists: make(map[string]map[string]struct{}),
	}
}

func (s *Service) Select(listID, objectID string) {
	if s == nil {
		return
	}
	listID, objectID = keyPair(listID, objectID)
	if listID == "" || objectID == "" {
		return
	}
	s.mu.Lock()
	if s.lists[listID] == nil {
		s.lists[listID] = make(map[string]struct{})
	}
	s.lists[listID][objectID] = struct{}{}
	s.mu.Unlock()
}

func (s *Service) Deselect(listID, objectID string) {
	if s == nil {
		return
	}
	listID, objectID = keyPair(listID, objectID)
	s.mu.Lock()
	if list, ok := s.lists[listID]; ok {
		delete(list, objectID)
		if len(list) == 0 {
			delete(s.lists, listID)
		}
	}
	s.mu.Unlock()
}

func (s *Service) IsSelected(listID, objectID string) bool {
	if s == nil {
		return false
	}
	listID, objectID = keyPair(listID, objectID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.lists[listID][objectID]
	return ok
}

// Selected returns the ids selected in a list, sorted.
func (s *Service) Selected(listID string) []string {
	if s == nil {
		return nil
	}
	listID = strings.TrimSpace(listID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.lists[listID]))
	for id := range s.lists[listID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clear empties one selection list.
func (s *Service) Clear(listID string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	delete(s.lists, strings.TrimSpace(listID))
	s.mu.Unlock()
}

func keyPair(listID, objectID string) (string, string) {
	return strings.TrimSpace(listID), strings.TrimSpace(objectID)
}
