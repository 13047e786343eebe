package store

import (
	"context"
	"testing"
	"time"

	"reposit/internal/core"
)

func TestStore_DispatchAndRead(t *testing.T) {
	s := New()

	s.Dispatch(Action{
		Type:         ActionSetSubmission,
		SubmissionID: "ws-1",
		Submission:   &core.WorkspaceItem{SubmissionObject: core.SubmissionObject{ID: "ws-1"}},
	})
	if _, ok := s.Submission("ws-1"); !ok {
		t.Fatalf("expected submission ws-1 to be stored")
	}

	s.Dispatch(Action{
		Type:         ActionSetRelationship,
		Relationship: &core.Relationship{ID: "rel-1", LeftPlace: 0, RightPlace: 3},
	})
	s.Dispatch(Action{
		Type:           ActionReorderRelationship,
		RelationshipID: "rel-1",
		Side:           core.SideLeft,
		Place:          5,
	})
	rel, ok := s.Relationship("rel-1")
	if !ok {
		t.Fatalf("expected relationship rel-1 to be stored")
	}
	if rel.LeftPlace != 5 || rel.RightPlace != 3 {
		t.Fatalf("unexpected places after reorder: left=%d right=%d", rel.LeftPlace, rel.RightPlace)
	}

	s.Dispatch(Action{Type: ActionRemoveRelationship, RelationshipID: "rel-1"})
	if _, ok := s.Relationship("rel-1"); ok {
		t.Fatalf("expected relationship rel-1 to be removed")
	}

	if got := s.Version(); got != 4 {
		t.Fatalf("expected version 4 after four dispatches, got %d", got)
	}
}

func TestStore_SubscribeReceivesEvents(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := s.Subscribe(ctx)
	s.Dispatch(Action{Type: ActionRemoveRelationship, RelationshipID: "rel-9"})

	select {
	case ev := <-events:
		if ev.Action.Type != ActionRemoveRelationship || ev.Action.RelationshipID != "rel-9" {
			t.Fatalf("unexpected event: %+v", ev)
		}
		if ev.Version != 1 {
			t.Fatalf("expected version 1, got %d", ev.Version)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for event")
	}
}

func TestStore_SubscriptionReleasedOnCancel(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())

	events := s.Subscribe(ctx)
	cancel()

	// The channel must close once the subscription is torn down.
	deadline := time.After(time.Second)
	for {
		select {
		case _, open := <-events:
			if !open {
				return
			}
		case <-deadline:
			t.Fatalf("subscription channel never closed after cancel")
		}
	}
}
