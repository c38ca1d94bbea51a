// Package serialize renders a certainty.Answer as the canonical JSON form
// described in spec §6: {"certainity": ..., "kind": ..., "data": ...}.
// The "certainity" key name is a deliberate, stable misspelling carried
// over from the original system — it is part of the stable output, not a
// typo to fix.
package serialize

import (
	"bytes"
	"encoding/json"

	"github.com/reporef/reporef/internal/certainty"
)

// envelope mirrors the field order of the canonical JSON form.
type envelope struct {
	Certainity string          `json:"certainity"`
	Kind       string          `json:"kind"`
	Data       json.RawMessage `json:"data"`
}

// notFoundData is the "data" payload for a DoesNotExist answer.
type notFoundData struct {
	Message string `json:"message"`
}

// ToJSON renders answer as canonical JSON, matching the descriptor's own
// declared field order (Go's encoding/json preserves struct field
// declaration order, the equivalent of Python's dataclasses.asdict()
// behavior the original relies on).
func ToJSON(a *certainty.Answer) ([]byte, error) {
	env := envelope{Certainity: string(a.Level)}

	switch a.Level {
	case certainty.DoesNotExist:
		env.Kind = string(a.NotFoundKind)
		data, err := json.Marshal(notFoundData{Message: a.Message})
		if err != nil {
			return nil, err
		}
		env.Data = data
	default:
		env.Kind = string(a.Descriptor.Kind())
		data, err := json.Marshal(a.Descriptor)
		if err != nil {
			return nil, err
		}
		env.Data = data
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
