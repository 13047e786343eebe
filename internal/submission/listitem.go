package submission

import (
	"context"
	"fmt"

	"reposit/internal/core"
	"reposit/internal/store"
)

// ItemResolver resolves an item self link into the item, from cache or
// upstream.
type ItemResolver interface {
	ResolveItem(ctx context.Context, href string) (*core.Item, error)
}

// SelectionList is the shared selection list the related-item lookup
// panel and the submission form both talk to.
type SelectionList interface {
	Deselect(listID, itemUUID string)
}

// RelationshipRemover deletes a persisted relationship.
type RelationshipRemover interface {
	Delete(ctx context.Context, relationshipID string) error
}

// ListItem presents one related item inside the submission form: the
// relationship entry it belongs to, the submitting item that owns it, and
// the collaborators needed to display and remove it.
type ListItem struct {
	entry     *RelationshipEntry
	owner     *core.Item
	listID    string
	resolver  ItemResolver
	selection SelectionList
	remover   RelationshipRemover
	state     *store.Store
}

// Entry is the display representation: the virtual metadata value on the
// submitting item combined with the resolved related item.
type Entry struct {
	Metadata *core.MetadataValue
	Related  *core.Item
}

func NewListItem(
	entry *RelationshipEntry,
	owner *core.Item,
	listID string,
	resolver ItemResolver,
	selection SelectionList,
	remover RelationshipRemover,
	state *store.Store,
) *ListItem {
	return &ListItem{
		entry:     entry,
		owner:     owner,
		listID:    listID,
		resolver:  resolver,
		selection: selection,
		remover:   remover,
		state:     state,
	}
}

// RelatedLink returns the self link of the endpoint that is not the
// submitting item.
func (l *ListItem) RelatedLink() string {
	rel := l.entry.Relationship()
	if l.owner != nil {
		if side, ok := rel.SideOf(l.owner.Self); ok {
			return rel.ItemLink(side.Other())
		}
	}
	// Fall back on the side opposite the primary one.
	return rel.ItemLink(l.entry.Side().Other())
}

// Resolve builds the display representation: the related item plus the
// owner's metadata value whose authority points at this relationship.
func (l *ListItem) Resolve(ctx context.Context) (*Entry, error) {
	if l.resolver == nil {
		return nil, fmt.Errorf("list item has no item resolver")
	}
	href := l.RelatedLink()
	if href == "" {
		return nil, fmt.Errorf("relationship %s has no related item link", l.entry.ID())
	}
	related, err := l.resolver.ResolveItem(ctx, href)
	if err != nil {
		return nil, fmt.Errorf("resolve related item: %w", err)
	}
	return &Entry{
		Metadata: l.owner.MetadataByRelationship(l.entry.ID()),
		Related:  related,
	}, nil
}

// Remove takes the related item out of the list: it is deselected from
// the shared selection list, the removal is dispatched to the state
// store, and the relationship is deleted from persistence.
func (l *ListItem) Remove(ctx context.Context) error {
	if l.selection != nil {
		related, err := l.resolver.ResolveItem(ctx, l.RelatedLink())
		if err == nil && related != nil {
			l.selection.Deselect(l.listID, related.UUID)
		}
	}
	l.state.Dispatch(store.Action{
		Type:           store.ActionRemoveRelationship,
		RelationshipID: l.entry.ID(),
	})
	if l.remover == nil {
		return fmt.Errorf("list item has no relationship remover")
	}
	if err := l.remover.Delete(ctx, l.entry.ID()); err != nil {
		return fmt.Errorf("delete relationship %s: %w", l.entry.ID(), err)
	}
	return nil
}
