package bitstream

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStore keeps bitstreams in memory. Used in tests and when no S3
// endpoint is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		files: make(map[string]map[string][]byte),
	}
}

func (s *MemoryStore) Put(_ context.Context, submissionID, name string, content []byte) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	submissionID = strings.TrimSpace(submissionID)
	name = strings.TrimSpace(name)
	if submissionID == "" || name == "" {
		return fmt.Errorf("submission id and file name are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files[submissionID] == nil {
		s.files[submissionID] = make(map[string][]byte)
	}
	buf := make([]byte, len(content))
	copy(buf, content)
	s.files[submissionID][name] = buf
	return nil
}

func (s *MemoryStore) Get(_ context.Context, submissionID, name string) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.files[strings.TrimSpace(submissionID)][strings.TrimSpace(name)]
	if !ok {
		return nil, ErrNotFound
	}
	buf := make([]byte, len(content))
	copy(buf, content)
	return buf, nil
}

func (s *MemoryStore) List(_ context.Context, submissionID string) ([]string, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.files[strings.TrimSpace(submissionID)]))
	for name := range s.files[strings.TrimSpace(submissionID)] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) URL(_ context.Context, submissionID, name string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("store is nil")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.files[strings.TrimSpace(submissionID)][strings.TrimSpace(name)]; !ok {
		return "", ErrNotFound
	}
	return fmt.Sprintf("memory://%s/%s", submissionID, name), nil
}
