package normalize

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reposit/internal/core"
)

func TestNormalizeEntry_FormValueShape(t *testing.T) {
	raw := map[string]any{
		"value":      "Doe, Jane",
		"language":   "en",
		"authority":  "auth-1",
		"confidence": float64(600),
	}

	out, keep := NormalizeEntry(raw, 3)
	require.True(t, keep)

	mv, ok := out.(core.MetadataValue)
	require.True(t, ok, "expected a MetadataValue, got %T", out)
	assert.Equal(t, "Doe, Jane", mv.Value)
	assert.Equal(t, "en", mv.Language)
	assert.Equal(t, "auth-1", mv.Authority)
	assert.Equal(t, 600, mv.Confidence)
	assert.Equal(t, 3, mv.Place, "place must default to the array index")
	assert.Equal(t, "Doe, Jane", mv.Display, "display defaults to the value")
}

func TestNormalizeEntry_ExplicitPlaceWins(t *testing.T) {
	raw := map[string]any{
		"value":     "Doe, Jane",
		"authority": "auth-1",
		"place":     float64(7),
	}
	out, keep := NormalizeEntry(raw, 0)
	require.True(t, keep)
	assert.Equal(t, 7, out.(core.MetadataValue).Place)
}

func TestNormalizeEntry_Idempotent(t *testing.T) {
	raw := map[string]any{
		"value":      "Doe, Jane",
		"language":   "en",
		"authority":  "auth-1",
		"confidence": float64(400),
	}
	first, keep := NormalizeEntry(raw, 1)
	require.True(t, keep)

	second, keep := NormalizeEntry(first, 1)
	require.True(t, keep)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("re-normalizing changed the value (-first +second):\n%s", diff)
	}
}

func TestNormalizeEntry_MissingConfidenceDefaults(t *testing.T) {
	out, keep := NormalizeEntry(map[string]any{
		"value":    "title",
		"language": "",
	}, 0)
	require.True(t, keep)
	assert.Equal(t, core.ConfidenceNotSet, out.(core.MetadataValue).Confidence)
}

func TestNormalizeEntry_Passthrough(t *testing.T) {
	// No companion keys: not a form value, must come back untouched.
	raw := map[string]any{"value": "x", "unrelated": true}
	out, keep := NormalizeEntry(raw, 0)
	require.True(t, keep)
	assert.Equal(t, raw, out)

	out, keep = NormalizeEntry("plain string", 0)
	require.True(t, keep)
	assert.Equal(t, "plain string", out)
}

func TestNormalizeEntry_DropsEmpty(t *testing.T) {
	_, keep := NormalizeEntry(nil, 0)
	assert.False(t, keep)

	_, keep = NormalizeEntry(map[string]any{"value": "", "authority": "a"}, 0)
	assert.False(t, keep, "empty normalization results must be dropped")
}

func TestNormalizeSectionData_ArraysAndScalars(t *testing.T) {
	data := core.SectionData{
		"dc.contributor.author": []any{
			map[string]any{"value": "First", "authority": "a1", "confidence": float64(600)},
			map[string]any{"value": "Second", "authority": "", "confidence": float64(-1)},
		},
		"granted": "yes",
	}

	out := NormalizeSectionData(data)

	assert.Equal(t, "yes", out["granted"], "non-array fields pass through unchanged")

	values, ok := out["dc.contributor.author"].([]any)
	require.True(t, ok)
	require.Len(t, values, 2)
	first := values[0].(core.MetadataValue)
	second := values[1].(core.MetadataValue)
	assert.Equal(t, "First", first.Value)
	assert.Equal(t, 0, first.Place)
	assert.Equal(t, "Second", second.Value)
	assert.Equal(t, 1, second.Place, "array order must be preserved")
}

func newSubmission(sections map[string]core.SectionData) *core.WorkspaceItem {
	return &core.WorkspaceItem{
		SubmissionObject: core.SubmissionObject{
			ID:   "ws-1",
			Item: &core.Item{UUID: "item-1", Metadata: map[string][]core.MetadataValue{
				"dc.title": {{Value: "A title", Place: 0, Confidence: core.ConfidenceNotSet}},
			}},
			Definition: &core.SubmissionDefinition{
				ID: "traditional",
				Sections: []core.SectionConfig{
					{ID: "traditionalpageone", SectionType: core.SectionTypeForm},
					{ID: "upload", SectionType: core.SectionTypeUpload},
					{ID: "license", SectionType: "license"},
				},
			},
			Sections: sections,
		},
	}
}

func TestProcessSections_FilesRule(t *testing.T) {
	empty := newSubmission(map[string]core.SectionData{
		"upload": {"files": []any{}},
	})
	ProcessSections([]core.Object{empty})
	_, kept := empty.Sections["upload"]
	assert.False(t, kept, "upload section with no files must be dropped")

	oneFile := newSubmission(map[string]core.SectionData{
		"upload": {"files": []any{map[string]any{"name": "paper.pdf"}}},
	})
	ProcessSections([]core.Object{oneFile})
	_, kept = oneFile.Sections["upload"]
	assert.True(t, kept, "upload section with one file must be kept")
}

func TestProcessSections_EmptySectionDropped(t *testing.T) {
	sub := newSubmission(map[string]core.SectionData{
		"license": {},
	})
	ProcessSections([]core.Object{sub})
	assert.Empty(t, sub.Sections)
}

func TestProcessSections_FormUsesItemMetadata(t *testing.T) {
	sub := newSubmission(map[string]core.SectionData{
		"traditionalpageone": {"stale": "ignored"},
	})
	ProcessSections([]core.Object{sub})

	section, ok := sub.Sections["traditionalpageone"]
	require.True(t, ok)
	values, ok := section["dc.title"].([]any)
	require.True(t, ok, "form section data must come from the item metadata")
	require.Len(t, values, 1)
	assert.Equal(t, "A title", values[0].(core.MetadataValue).Value)
	_, stale := section["stale"]
	assert.False(t, stale)
}

func TestProcessSections_UnknownSectionKeptAsIs(t *testing.T) {
	sub := newSubmission(map[string]core.SectionData{
		"collection": {"uuid": "col-1"},
	})
	ProcessSections([]core.Object{sub})
	require.Contains(t, sub.Sections, "collection")
	assert.Equal(t, "col-1", sub.Sections["collection"]["uuid"])
}
