package rest

import (
	"fmt"
	"sort"
	"strconv"

	"reposit/internal/core"
	"reposit/internal/util/jsonutil"
)

// decoders maps the payload type discriminator to its object decoder.
// Types without an entry fall back to GenericObject.
var decoders = map[core.ObjectType]func(map[string]any) (core.Object, error){
	core.TypeItem:                 decodeItem,
	core.TypeRelationship:         decodeRelationship,
	core.TypeSubmissionDefinition: decodeDefinition,
	core.TypeWorkspaceItem:        decodeWorkspaceItem,
	core.TypeWorkflowItem:         decodeWorkflowItem,
}

// DecodeObject materializes one typed object from its raw payload map.
func DecodeObject(m map[string]any) (core.Object, error) {
	t, _ := m["type"].(string)
	if t == "" {
		return nil, fmt.Errorf("object has no type discriminator")
	}
	if decode, ok := decoders[core.ObjectType(t)]; ok {
		return decode(m)
	}
	return &core.GenericObject{
		Type: core.ObjectType(t),
		Self: selfLink(m),
		Raw:  m,
	}, nil
}

// EmbeddedObjects walks a payload and materializes every object it
// carries: either the payload itself, or the collections under _embedded.
// Collection keys are visited in sorted order so output order is stable;
// order inside each collection is preserved.
func EmbeddedObjects(payload map[string]any) ([]core.Object, error) {
	if _, ok := payload["type"].(string); ok {
		obj, err := DecodeObject(payload)
		if err != nil {
			return nil, err
		}
		return []core.Object{obj}, nil
	}
	embedded, ok := payload["_embedded"].(map[string]any)
	if !ok {
		return nil, nil
	}
	keys := make([]string, 0, len(embedded))
	for k := range embedded {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var objs []core.Object
	for _, k := range keys {
		switch entry := embedded[k].(type) {
		case []any:
			for _, el := range entry {
				m, ok := el.(map[string]any)
				if !ok {
					continue
				}
				obj, err := DecodeObject(m)
				if err != nil {
					return nil, err
				}
				objs = append(objs, obj)
			}
		case map[string]any:
			if _, typed := entry["type"].(string); typed {
				obj, err := DecodeObject(entry)
				if err != nil {
					return nil, err
				}
				objs = append(objs, obj)
				continue
			}
			// One level of indirection, e.g. a search result wrapper.
			nested, err := EmbeddedObjects(entry)
			if err != nil {
				return nil, err
			}
			objs = append(objs, nested...)
		}
	}
	return objs, nil
}

func decodeItem(m map[string]any) (core.Object, error) {
	item := &core.Item{Self: selfLink(m)}
	item.UUID, _ = m["uuid"].(string)
	item.Handle, _ = m["handle"].(string)
	if md, ok := m["metadata"]; ok {
		if err := jsonutil.Decode(md, &item.Metadata); err != nil {
			return nil, fmt.Errorf("decode item metadata: %w", err)
		}
	}
	return item, nil
}

func decodeRelationship(m map[string]any) (core.Object, error) {
	rel := &core.Relationship{
		ID:            idString(m["id"]),
		Self:          selfLink(m),
		LeftItemLink:  linkHref(m, "leftItem"),
		RightItemLink: linkHref(m, "rightItem"),
		LeftPlace:     intField(m, "leftPlace"),
		RightPlace:    intField(m, "rightPlace"),
	}
	if embedded, ok := m["_embedded"].(map[string]any); ok {
		if rt, ok := embedded["relationshipType"].(map[string]any); ok {
			rel.TypeID = idString(rt["id"])
		}
	}
	if rel.ID == "" {
		return nil, fmt.Errorf("relationship has no id")
	}
	return rel, nil
}

func decodeDefinition(m map[string]any) (core.Object, error) {
	def := &core.SubmissionDefinition{Self: selfLink(m)}
	def.ID = idString(m["id"])
	sections := m["sections"]
	if sections == nil {
		if embedded, ok := m["_embedded"].(map[string]any); ok {
			sections = embedded["sections"]
		}
	}
	if sections != nil {
		if err := jsonutil.Decode(sections, &def.Sections); err != nil {
			return nil, fmt.Errorf("decode definition sections: %w", err)
		}
	}
	return def, nil
}

func decodeWorkspaceItem(m map[string]any) (core.Object, error) {
	sub, err := decodeSubmission(m)
	if err != nil {
		return nil, err
	}
	return &core.WorkspaceItem{SubmissionObject: *sub}, nil
}

func decodeWorkflowItem(m map[string]any) (core.Object, error) {
	sub, err := decodeSubmission(m)
	if err != nil {
		return nil, err
	}
	return &core.WorkflowItem{SubmissionObject: *sub}, nil
}

func decodeSubmission(m map[string]any) (*core.SubmissionObject, error) {
	sub := &core.SubmissionObject{
		ID:   idString(m["id"]),
		Self: selfLink(m),
	}
	if sub.ID == "" {
		return nil, fmt.Errorf("submission has no id")
	}
	if raw, ok := m["sections"].(map[string]any); ok {
		sub.Sections = make(map[string]core.SectionData, len(raw))
		for id, data := range raw {
			if section, ok := data.(map[string]any); ok {
				sub.Sections[id] = section
			}
		}
	}
	embedded, _ := m["_embedded"].(map[string]any)
	if itemRaw, ok := embedded["item"].(map[string]any); ok {
		obj, err := decodeItem(itemRaw)
		if err != nil {
			return nil, err
		}
		sub.Item = obj.(*core.Item)
	}
	if defRaw, ok := embedded["submissionDefinition"].(map[string]any); ok {
		obj, err := decodeDefinition(defRaw)
		if err != nil {
			return nil, err
		}
		sub.Definition = obj.(*core.SubmissionDefinition)
		sub.DefinitionID = sub.Definition.ID
	}
	if sub.DefinitionID == "" {
		sub.DefinitionID = linkHref(m, "submissionDefinition")
	}
	return sub, nil
}

func selfLink(m map[string]any) string {
	return linkHref(m, "self")
}

func linkHref(m map[string]any, name string) string {
	links, ok := m["_links"].(map[string]any)
	if !ok {
		return ""
	}
	link, ok := links[name].(map[string]any)
	if !ok {
		return ""
	}
	href, _ := link["href"].(string)
	return href
}

func idString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatInt(int64(x), 10)
	case int:
		return strconv.Itoa(x)
	}
	return ""
}

func intField(m map[string]any, key string) int {
	switch x := m[key].(type) {
	case float64:
		return int(x)
	case int:
		return x
	}
	return 0
}
