package selection

import (
	"reflect"
	"testing"
)

func TestService_SelectDeselect(t *testing.T) {
	s := New()

	s.Select("authors", "item-1")
	s.Select("authors", "item-2")
	s.Select("subjects", "item-1")

	if !s.IsSelected("authors", "item-1") {
		t.Fatalf("expected item-1 selected in authors")
	}
	if got := s.Selected("authors"); !reflect.DeepEqual(got, []string{"item-1", "item-2"}) {
		t.Fatalf("unexpected selection: %v", got)
	}

	s.Deselect("authors", "item-1")
	if s.IsSelected("authors", "item-1") {
		t.Fatalf("expected item-1 deselected")
	}
	if !s.IsSelected("subjects", "item-1") {
		t.Fatalf("deselect must only affect the named list")
	}
}

func TestService_ClearAndEmptyLists(t *testing.T) {
	s := New()

	s.Select("authors", "item-1")
	s.Clear("authors")
	if got := s.Selected("authors"); len(got) != 0 {
		t.Fatalf("expected empty selection after clear, got %v", got)
	}

	// Blank ids are ignored.
	s.Select("", "item-1")
	s.Select("authors", " ")
	if got := s.Selected("authors"); len(got) != 0 {
		t.Fatalf("expected blank ids to be ignored, got %v", got)
	}
}
