// Package store holds the application state for active submissions and
// fans out change events to subscribers. Mutation goes through Dispatch
// only; reads return copies.
package store

import (
	"context"
	"sync"

	"reposit/internal/core"
)

type ActionType string

const (
	ActionSetSubmission       ActionType = "submission/set"
	ActionSetRelationship     ActionType = "relationship/set"
	ActionReorderRelationship ActionType = "relationship/reorder"
	ActionRemoveRelationship  ActionType = "relationship/remove"
)

// Action is one state mutation. Fields beyond Type are filled per action
// kind.
type Action struct {
	Type           ActionType
	SubmissionID   string
	Submission     core.Object
	RelationshipID string
	Relationship   *core.Relationship
	Side           core.Side
	Place          int
}

// Event is what subscribers receive after an action is applied.
type Event struct {
	Action  Action
	Version int64
}

// Store is the central application state store. It is thread-safe.
type Store struct {
	mu            sync.RWMutex
	version       int64
	submissions   map[string]core.Object
	relationships map[string]core.Relationship

	subMu   sync.Mutex
	subs    map[int64]chan Event
	nextSub int64
}

func New() *Store {
	return &Store{
		submissions:   make(map[string]core.Object),
		relationships: make(map[string]core.Relationship),
		subs:          make(map[int64]chan Event),
	}
}

// Dispatch applies one action and notifies subscribers. Unknown action
// types still produce an event so watchers see every dispatch.
func (s *Store) Dispatch(a Action) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.version++
	version := s.version
	switch a.Type {
	case ActionSetSubmission:
		if a.SubmissionID != "" && a.Submission != nil {
			s.submissions[a.SubmissionID] = a.Submission
		}
	case ActionSetRelationship:
		if a.Relationship != nil {
			s.relationships[a.Relationship.ID] = *a.Relationship
		}
	case ActionReorderRelationship:
		if rel, ok := s.relationships[a.RelationshipID]; ok {
			rel.SetPlace(a.Side, a.Place)
			s.relationships[a.RelationshipID] = rel
		}
	case ActionRemoveRelationship:
		delete(s.relationships, a.RelationshipID)
	}
	s.mu.Unlock()

	s.publish(Event{Action: a, Version: version})
}

// Submission returns the stored submission object for an id.
func (s *Store) Submission(id string) (core.Object, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.submissions[id]
	return obj, ok
}

// Relationship returns a copy of the stored relationship.
func (s *Store) Relationship(id string) (core.Relationship, bool) {
	if s == nil {
		return core.Relationship{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rel, ok := s.relationships[id]
	return rel, ok
}

// Version returns the current state version.
func (s *Store) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe registers a listener for state events. The channel is closed
// and the subscription released when ctx ends, so callers cannot leak
// callbacks. Slow subscribers miss events rather than block dispatch.
func (s *Store) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, 32)

	s.subMu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs[id] = ch
	s.subMu.Unlock()

	go func() {
		<-ctx.Done()
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
		close(ch)
	}()

	return ch
}

func (s *Store) publish(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
