// Package normalize reshapes raw submission section payloads into typed
// metadata values, applying the per-section rules of the submission
// definition.
package normalize

import (
	"reposit/internal/core"
)

// ProcessSections applies section normalization, in place, to every
// workspace/workflow item among the parsed objects. Other object types are
// left alone.
func ProcessSections(objs []core.Object) {
	for _, obj := range objs {
		switch x := obj.(type) {
		case *core.WorkspaceItem:
			processSubmission(&x.SubmissionObject)
		case *core.WorkflowItem:
			processSubmission(&x.SubmissionObject)
		}
	}
}

// processSubmission rebuilds the submission's section map. Per section:
// the definition config is looked up by section id; "form" sections take
// the item's own descriptive metadata as their data source; empty sections
// and upload sections without files are dropped; everything kept is walked
// field by field through NormalizeSectionData.
func processSubmission(s *core.SubmissionObject) {
	if s == nil || len(s.Sections) == 0 {
		return
	}
	processed := make(map[string]core.SectionData, len(s.Sections))
	for id, data := range s.Sections {
		cfg, known := s.Definition.SectionByID(id)
		if known && cfg.SectionType == core.SectionTypeForm && s.Item != nil {
			data = metadataAsSectionData(s.Item.Metadata)
		}
		if len(data) == 0 {
			continue
		}
		if files, ok := data[core.SectionFilesKey]; ok && !hasFiles(files) {
			continue
		}
		processed[id] = NormalizeSectionData(data)
	}
	s.Sections = processed
}

// NormalizeSectionData normalizes one section's fields. Array-valued
// fields are converted element by element, preserving order; non-array
// fields pass through unchanged.
func NormalizeSectionData(data core.SectionData) core.SectionData {
	out := make(core.SectionData, len(data))
	for field, value := range data {
		arr, ok := value.([]any)
		if !ok {
			out[field] = value
			continue
		}
		normalized := make([]any, 0, len(arr))
		for i, el := range arr {
			if nv, keep := NormalizeEntry(el, i); keep {
				normalized = append(normalized, nv)
			}
		}
		out[field] = normalized
	}
	return out
}

// hasFiles reports whether a "files" field actually lists anything.
func hasFiles(v any) bool {
	switch x := v.(type) {
	case []any:
		return len(x) > 0
	case []map[string]any:
		return len(x) > 0
	}
	return false
}

// metadataAsSectionData exposes an item's metadata in section-data form so
// a "form" section can be normalized like any other.
func metadataAsSectionData(md map[string][]core.MetadataValue) core.SectionData {
	data := make(core.SectionData, len(md))
	for field, values := range md {
		arr := make([]any, 0, len(values))
		for _, v := range values {
			arr = append(arr, v)
		}
		data[field] = arr
	}
	return data
}
