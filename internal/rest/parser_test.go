package rest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reposit/internal/core"
)

type fakePopulator struct {
	calls []Envelope
}

func (f *fakePopulator) Ingest(_ Request, env Envelope) {
	f.calls = append(f.calls, env)
}

func workspaceItemPayload() map[string]any {
	return map[string]any{
		"type": "workspaceitem",
		"id":   float64(42),
		"sections": map[string]any{
			"upload": map[string]any{
				"files": []any{},
			},
			"traditionalpagetwo": map[string]any{
				"dc.subject": []any{
					map[string]any{"value": "golang", "language": "", "authority": "", "confidence": float64(-1)},
				},
			},
		},
		"_links": map[string]any{
			"self": map[string]any{"href": "https://repo.example/api/submission/workspaceitems/42"},
		},
		"_embedded": map[string]any{
			"item": map[string]any{
				"type": "item",
				"uuid": "item-1",
				"_links": map[string]any{
					"self": map[string]any{"href": "https://repo.example/api/core/items/item-1"},
				},
			},
			"submissionDefinition": map[string]any{
				"type": "submissiondefinition",
				"id":   "traditional",
				"sections": []any{
					map[string]any{"id": "upload", "sectionType": "upload"},
					map[string]any{"id": "traditionalpagetwo", "sectionType": "submission-form"},
				},
			},
		},
	}
}

func collectionPayload() map[string]any {
	return map[string]any{
		"_links": map[string]any{
			"self": map[string]any{"href": "https://repo.example/api/submission/workspaceitems"},
		},
		"_embedded": map[string]any{
			"workspaceitems": []any{workspaceItemPayload()},
		},
		"page": map[string]any{
			"size":          float64(20),
			"totalElements": float64(1),
			"totalPages":    float64(1),
			"number":        float64(0),
		},
	}
}

func TestParse_SuccessWithPayload(t *testing.T) {
	populator := &fakePopulator{}
	parser := NewParser(populator)

	res, err := parser.Parse(Request{UUID: "r1", Method: "GET"}, Envelope{
		StatusCode: 200,
		StatusText: "OK",
		Payload:    collectionPayload(),
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Objects, 1)

	ws, ok := res.Objects[0].(*core.WorkspaceItem)
	require.True(t, ok, "expected a workspace item, got %T", res.Objects[0])
	assert.Equal(t, "42", ws.ID)
	require.NotNil(t, ws.Item)
	assert.Equal(t, "item-1", ws.Item.UUID)
	require.NotNil(t, ws.Definition)
	assert.Equal(t, "traditional", ws.DefinitionID)

	// Section normalization ran: the empty upload section is gone, the
	// metadata section is typed.
	_, hasUpload := ws.Sections["upload"]
	assert.False(t, hasUpload)
	subjects, ok := ws.Sections["traditionalpagetwo"]["dc.subject"].([]any)
	require.True(t, ok)
	require.Len(t, subjects, 1)
	assert.IsType(t, core.MetadataValue{}, subjects[0])

	require.NotNil(t, res.PageInfo)
	assert.Equal(t, 20, res.PageInfo.ElementsPerPage)
	assert.Equal(t, 1, res.PageInfo.TotalElements)

	assert.Len(t, populator.calls, 1, "cache populator must see every parse")
}

func TestParse_SuccessEmptyPayload(t *testing.T) {
	populator := &fakePopulator{}
	parser := NewParser(populator)

	res, err := parser.Parse(Request{UUID: "r2"}, Envelope{StatusCode: 204, StatusText: "No Content"})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Nil(t, res.Objects)
	assert.Nil(t, res.PageInfo)
	assert.Len(t, populator.calls, 1)
}

func TestParse_ErrorStatus(t *testing.T) {
	populator := &fakePopulator{}
	parser := NewParser(populator)

	_, err := parser.Parse(Request{UUID: "r3"}, Envelope{
		StatusCode: 404,
		StatusText: "Not Found",
		Payload:    map[string]any{"message": "no such workspace item"},
	})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 404, statusErr.Code)
	assert.Equal(t, "Not Found", statusErr.Text)
	assert.Len(t, populator.calls, 1, "cache populator runs on the error branch too")
}

func TestParse_SuccessWithoutLinksIsError(t *testing.T) {
	parser := NewParser(nil)

	_, err := parser.Parse(Request{UUID: "r4"}, Envelope{
		StatusCode: 200,
		StatusText: "OK",
		Payload:    map[string]any{"message": "no link metadata"},
	})
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 200, statusErr.Code)
}

func TestParse_PopulatorGetsDeepCopy(t *testing.T) {
	populator := &fakePopulator{}
	parser := NewParser(populator)

	payload := collectionPayload()
	_, err := parser.Parse(Request{UUID: "r5"}, Envelope{StatusCode: 200, StatusText: "OK", Payload: payload})
	require.NoError(t, err)

	payload["page"].(map[string]any)["size"] = float64(999)
	cached := populator.calls[0].Payload["page"].(map[string]any)["size"]
	assert.Equal(t, float64(20), cached, "populator must hold its own copy of the payload")
}

func TestDecodeRelationship(t *testing.T) {
	obj, err := DecodeObject(map[string]any{
		"type":       "relationship",
		"id":         float64(7),
		"leftPlace":  float64(2),
		"rightPlace": float64(0),
		"_links": map[string]any{
			"self":      map[string]any{"href": "https://repo.example/api/core/relationships/7"},
			"leftItem":  map[string]any{"href": "https://repo.example/api/core/items/left"},
			"rightItem": map[string]any{"href": "https://repo.example/api/core/items/right"},
		},
	})
	require.NoError(t, err)

	rel, ok := obj.(*core.Relationship)
	require.True(t, ok)
	assert.Equal(t, "7", rel.ID)
	assert.Equal(t, 2, rel.PlaceFor(core.SideLeft))
	assert.Equal(t, 0, rel.PlaceFor(core.SideRight))
	assert.Equal(t, "https://repo.example/api/core/items/left", rel.ItemLink(core.SideLeft))
}

func TestDecodeUnknownTypeFallsBack(t *testing.T) {
	obj, err := DecodeObject(map[string]any{
		"type": "community",
		"_links": map[string]any{
			"self": map[string]any{"href": "https://repo.example/api/core/communities/c1"},
		},
	})
	require.NoError(t, err)
	gen, ok := obj.(*core.GenericObject)
	require.True(t, ok)
	assert.Equal(t, core.ObjectType("community"), gen.ObjectType())
	assert.Equal(t, "https://repo.example/api/core/communities/c1", gen.Link())
}
