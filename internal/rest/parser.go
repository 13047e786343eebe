// Package rest turns raw upstream response envelopes into typed domain
// objects.
package rest

import (
	"reposit/internal/core"
	"reposit/internal/normalize"
	"reposit/internal/util/jsonutil"
)

// CachePopulator receives a copy of every request/response pair that goes
// through the parser, whatever the outcome, so the object cache can be
// kept warm as a side effect.
type CachePopulator interface {
	Ingest(req Request, env Envelope)
}

// Result is the success outcome of parsing one envelope. Objects is nil
// for an empty-payload success.
type Result struct {
	Objects  []core.Object
	PageInfo *PageInfo
}

// Parser normalizes response envelopes into Results.
type Parser struct {
	cache CachePopulator
}

// NewParser returns a parser. cache may be nil when no object cache is
// wired in.
func NewParser(cache CachePopulator) *Parser {
	return &Parser{cache: cache}
}

// Parse turns one envelope into a Result or a *StatusError.
//
// A 2xx envelope whose payload carries link metadata is materialized into
// typed objects and run through section normalization; a 2xx envelope with
// an empty payload succeeds with a nil body; anything else fails with the
// original status line. In every branch a deep copy of the pair is handed
// to the cache populator first.
func (p *Parser) Parse(req Request, env Envelope) (*Result, error) {
	if p.cache != nil {
		p.cache.Ingest(req, env.Clone())
	}

	switch {
	case len(env.Payload) > 0 && hasLinks(env.Payload) && env.Success():
		objs, err := EmbeddedObjects(env.Payload)
		if err != nil {
			return nil, &StatusError{Code: env.StatusCode, Text: env.StatusText, cause: err}
		}
		normalize.ProcessSections(objs)
		return &Result{Objects: objs, PageInfo: pageInfo(env.Payload)}, nil
	case len(env.Payload) == 0 && env.Success():
		return &Result{}, nil
	default:
		return nil, &StatusError{Code: env.StatusCode, Text: env.StatusText}
	}
}

func hasLinks(payload map[string]any) bool {
	_, ok := payload["_links"].(map[string]any)
	return ok
}

func pageInfo(payload map[string]any) *PageInfo {
	raw, ok := payload["page"].(map[string]any)
	if !ok {
		return nil
	}
	var info PageInfo
	if err := jsonutil.Decode(raw, &info); err != nil {
		return nil
	}
	return &info
}
