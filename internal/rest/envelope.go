package rest

import (
	"fmt"

	"reposit/internal/util/jsonutil"
)

// Request describes one request to the upstream repository API.
type Request struct {
	UUID   string
	Method string
	Href   string
}

// Envelope is the raw outcome of one upstream request: status line plus
// the decoded JSON payload. Ephemeral, one per request.
type Envelope struct {
	StatusCode int
	StatusText string
	Payload    map[string]any
}

// Success reports whether the status code is in the 2xx range.
func (e Envelope) Success() bool {
	return e.StatusCode >= 200 && e.StatusCode < 300
}

// Clone returns a deep copy of the envelope. Consumers on the cache side
// channel must never share payload state with the caller.
func (e Envelope) Clone() Envelope {
	return Envelope{
		StatusCode: e.StatusCode,
		StatusText: e.StatusText,
		Payload:    jsonutil.DeepCopyMap(e.Payload),
	}
}

// PageInfo is the pagination block of a collection payload.
type PageInfo struct {
	ElementsPerPage int `json:"size"`
	TotalElements   int `json:"totalElements"`
	TotalPages      int `json:"totalPages"`
	CurrentPage     int `json:"number"`
}

// StatusError is the error result for a response that could not be turned
// into domain objects. It carries the original status line.
type StatusError struct {
	Code  int
	Text  string
	cause error
}

func (e *StatusError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("unexpected response %d %s: %v", e.Code, e.Text, e.cause)
	}
	return fmt.Sprintf("unexpected response %d %s", e.Code, e.Text)
}

func (e *StatusError) Unwrap() error { return e.cause }
