// Package submission holds the view-model layer of the submission form:
// reorderable metadata/relationship entries and the related-item list.
package submission

import (
	"context"
	"fmt"

	"reposit/internal/core"
	"reposit/internal/store"
)

// PlaceWriter persists the new ordinal place of one relationship endpoint.
type PlaceWriter interface {
	SetPlace(ctx context.Context, relationshipID string, side core.Side, place int) error
}

// Reorderable is a value with a position that can be moved and persisted.
// ID is stable across reorders; Place is the current ordinal; HasMoved
// reports whether the pending position differs from the last persisted
// one; Update persists the pending position and reconciles the indexes.
type Reorderable interface {
	ID() string
	Place() int
	HasMoved() bool
	Update(ctx context.Context) error
}

// indexes tracks the persisted and pending list positions shared by both
// variants.
type indexes struct {
	oldIndex int
	newIndex int
}

func (x *indexes) HasMoved() bool { return x.oldIndex != x.newIndex }

func (x *indexes) OldIndex() int { return x.oldIndex }

func (x *indexes) NewIndex() int { return x.newIndex }

// MoveTo records a pending position without persisting it.
func (x *indexes) MoveTo(index int) { x.newIndex = index }

// MetadataEntry is the plain metadata variant. Its position lives only in
// the submission form, so Update has nothing to persist.
type MetadataEntry struct {
	indexes
	value core.MetadataValue
}

func NewMetadataEntry(value core.MetadataValue, oldIndex, newIndex int) *MetadataEntry {
	return &MetadataEntry{
		indexes: indexes{oldIndex: oldIndex, newIndex: newIndex},
		value:   value,
	}
}

// ID returns the authority key when present, the literal value otherwise.
// Both survive a reorder, unlike the place.
func (m *MetadataEntry) ID() string {
	if m.value.HasAuthority() {
		return m.value.Authority
	}
	return m.value.Value
}

func (m *MetadataEntry) Place() int { return m.value.Place }

func (m *MetadataEntry) Value() core.MetadataValue { return m.value }

// Update reconciles the indexes locally; no call leaves the process.
func (m *MetadataEntry) Update(_ context.Context) error {
	m.oldIndex = m.newIndex
	return nil
}

// RelationshipEntry is the relationship variant: its position is the
// endpoint place of the side treated as primary, and moving it is written
// through the relationship service.
type RelationshipEntry struct {
	indexes
	rel          core.Relationship
	side         core.Side
	submissionID string
	state        *store.Store
	places       PlaceWriter
}

func NewRelationshipEntry(
	rel core.Relationship,
	side core.Side,
	submissionID string,
	state *store.Store,
	places PlaceWriter,
	oldIndex, newIndex int,
) *RelationshipEntry {
	return &RelationshipEntry{
		indexes:      indexes{oldIndex: oldIndex, newIndex: newIndex},
		rel:          rel,
		side:         side,
		submissionID: submissionID,
		state:        state,
		places:       places,
	}
}

func (r *RelationshipEntry) ID() string { return r.rel.ID }

func (r *RelationshipEntry) Place() int { return r.rel.PlaceFor(r.side) }

func (r *RelationshipEntry) Relationship() core.Relationship { return r.rel }

func (r *RelationshipEntry) Side() core.Side { return r.side }

// Update dispatches the reorder to the state store, persists the new
// place, and on success sets the persisted index to the pending one.
func (r *RelationshipEntry) Update(ctx context.Context) error {
	if r.places == nil {
		return fmt.Errorf("relationship entry has no place writer")
	}
	r.state.Dispatch(store.Action{
		Type:           store.ActionReorderRelationship,
		SubmissionID:   r.submissionID,
		RelationshipID: r.rel.ID,
		Side:           r.side,
		Place:          r.newIndex,
	})
	if err := r.places.SetPlace(ctx, r.rel.ID, r.side, r.newIndex); err != nil {
		return fmt.Errorf("persist place for relationship %s: %w", r.rel.ID, err)
	}
	r.rel.SetPlace(r.side, r.newIndex)
	r.oldIndex = r.newIndex
	return nil
}
