package apiclient

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/umoja/portal/core"
)

type (
	// Envelope is the normalized response shape. The backend sometimes
	// answers `{success, data, pagination}` and sometimes a bare array;
	// both are folded into this one shape so callers never branch on it.
	Envelope struct {
		OK         bool
		Data       json.RawMessage
		Pagination *Pagination
		Message    string
	}

	Pagination struct {
		CurrentPage int  `json:"currentPage"`
		TotalPages  int  `json:"totalPages"`
		TotalItems  int  `json:"totalItems"`
		HasNextPage bool `json:"hasNextPage"`
		HasPrevPage bool `json:"hasPrevPage"`
	}
)

// Err reports a failure the server declared inside a 2xx body, the
// `{"success": false, "message": ...}` case. Nil when the envelope is ok.
func (e *Envelope) Err() error {
	if e.OK {
		return nil
	}
	msg := e.Message
	if msg == "" {
		msg = "the server rejected the request"
	}
	return core.NewBusinessError(http.StatusOK, msg)
}

// Decode unmarshals the envelope's data into v.
func (e *Envelope) Decode(v interface{}) error {
	if len(e.Data) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(e.Data, v), "decoding envelope data")
}

func parseEnvelope(body []byte, contentType string) (*Envelope, error) {
	// an empty body or a non-JSON content type on a 2xx is a soft success
	if len(body) == 0 || !strings.Contains(contentType, "json") {
		return &Envelope{OK: true}, nil
	}

	trimmed := json.RawMessage(bytes.TrimSpace(body))
	if len(trimmed) > 0 && trimmed[0] == '[' {
		// bare array: simpler resources skip the wrapper entirely
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, errors.Wrap(err, "parsing array body")
		}
		return &Envelope{OK: true, Data: trimmed}, nil
	}

	var wrapped struct {
		Success    *bool           `json:"success"`
		Data       json.RawMessage `json:"data"`
		Pagination *Pagination     `json:"pagination"`
		Message    string          `json:"message"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, errors.Wrap(err, "parsing body")
	}

	env := &Envelope{OK: true, Pagination: wrapped.Pagination, Message: wrapped.Message}
	if wrapped.Success != nil {
		env.OK = *wrapped.Success
	}
	if wrapped.Data != nil {
		env.Data = wrapped.Data
	} else if wrapped.Success == nil {
		// no wrapper at all: the whole object is the payload
		env.Data = trimmed
	}
	return env, nil
}
