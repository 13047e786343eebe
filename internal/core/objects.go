package core

// ObjectType is the wire-level type discriminator carried by every
// repository object payload.
type ObjectType string

const (
	TypeItem                 ObjectType = "item"
	TypeWorkspaceItem        ObjectType = "workspaceitem"
	TypeWorkflowItem         ObjectType = "workflowitem"
	TypeRelationship         ObjectType = "relationship"
	TypeSubmissionDefinition ObjectType = "submissiondefinition"
	TypeBitstream            ObjectType = "bitstream"
)

// Object is any typed repository object materialized from a response
// payload.
type Object interface {
	ObjectType() ObjectType
	// Link returns the object's self link href, or "" when unknown.
	Link() string
}

// Item is an archived or in-progress repository item with its descriptive
// metadata, keyed by metadata field (e.g. "dc.title").
type Item struct {
	UUID     string                     `json:"uuid"`
	Handle   string                     `json:"handle,omitempty"`
	Self     string                     `json:"self,omitempty"`
	Metadata map[string][]MetadataValue `json:"metadata,omitempty"`
}

func (i *Item) ObjectType() ObjectType { return TypeItem }

func (i *Item) Link() string { return i.Self }

// FirstMetadata returns the first value of the given field, or nil.
func (i *Item) FirstMetadata(field string) *MetadataValue {
	if i == nil {
		return nil
	}
	values := i.Metadata[field]
	if len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

// MetadataByRelationship returns the metadata value backed by the given
// relationship, searching every field for the matching virtual authority.
func (i *Item) MetadataByRelationship(relationshipID string) *MetadataValue {
	if i == nil || relationshipID == "" {
		return nil
	}
	for _, values := range i.Metadata {
		for _, v := range values {
			if v.RelationshipID() == relationshipID {
				matched := v
				return &matched
			}
		}
	}
	return nil
}

// GenericObject carries a payload whose type has no dedicated decoder.
type GenericObject struct {
	Type ObjectType
	Self string
	Raw  map[string]any
}

func (g *GenericObject) ObjectType() ObjectType { return g.Type }

func (g *GenericObject) Link() string { return g.Self }
