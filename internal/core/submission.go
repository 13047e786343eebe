package core

// Section types with behavior the submission layer cares about. Other
// types pass through untouched.
const (
	SectionTypeForm   = "form"
	SectionTypeUpload = "upload"
)

// SectionFilesKey is the field under which an upload section lists its
// files.
const SectionFilesKey = "files"

// SectionConfig is the per-section configuration of a submission
// definition.
type SectionConfig struct {
	ID          string `json:"id"`
	SectionType string `json:"sectionType"`
	Mandatory   bool   `json:"mandatory,omitempty"`
}

// SubmissionDefinition shapes a submission: which sections it has and how
// each behaves.
type SubmissionDefinition struct {
	ID       string          `json:"id"`
	Self     string          `json:"self,omitempty"`
	Sections []SectionConfig `json:"sections,omitempty"`
}

func (d *SubmissionDefinition) ObjectType() ObjectType { return TypeSubmissionDefinition }

func (d *SubmissionDefinition) Link() string { return d.Self }

// SectionByID returns the configuration of the named section.
func (d *SubmissionDefinition) SectionByID(id string) (SectionConfig, bool) {
	if d == nil {
		return SectionConfig{}, false
	}
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return SectionConfig{}, false
}

// SectionData is the arbitrary nested payload of one section, shaped by
// that section's configuration.
type SectionData = map[string]any

// SubmissionObject is the shared shape of in-progress submission records:
// the submitting item, the governing definition and the per-section data.
type SubmissionObject struct {
	ID           string                 `json:"id"`
	Self         string                 `json:"self,omitempty"`
	Item         *Item                  `json:"item,omitempty"`
	DefinitionID string                 `json:"definitionId,omitempty"`
	Definition   *SubmissionDefinition  `json:"definition,omitempty"`
	Sections     map[string]SectionData `json:"sections,omitempty"`
}

func (s *SubmissionObject) Link() string { return s.Self }

// WorkspaceItem is a submission still being edited by the submitter.
type WorkspaceItem struct {
	SubmissionObject
}

func (w *WorkspaceItem) ObjectType() ObjectType { return TypeWorkspaceItem }

// WorkflowItem is a submission under review.
type WorkflowItem struct {
	SubmissionObject
}

func (w *WorkflowItem) ObjectType() ObjectType { return TypeWorkflowItem }
