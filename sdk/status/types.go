// Package status is a Go client for the resinfo status endpoint.
package status

import (
	"encoding/json"
	"errors"
)

// ErrNoItems is returned by DecodeFirst when the envelope carries no data.
var ErrNoItems = errors.New("envelope has no data")

// Envelope is one topic's result as returned by the endpoint.
type Envelope struct {
	Status bool              `json:"status"`
	Data   []json.RawMessage `json:"data"`
	Error  *string           `json:"error"`
}

// Reason returns the error text, or "" when the envelope has none.
func (e Envelope) Reason() string {
	if e.Error == nil {
		return ""
	}
	return *e.Error
}

// OK reports a successful envelope without an error reason.
func (e Envelope) OK() bool {
	return e.Status && e.Error == nil
}

// DecodeFirst unmarshals the first data item into v.
func (e Envelope) DecodeFirst(v any) error {
	if len(e.Data) == 0 {
		return ErrNoItems
	}
	return json.Unmarshal(e.Data[0], v)
}

// DecodeAll unmarshals the data array into v, which must point to a slice.
func (e Envelope) DecodeAll(v any) error {
	raw, err := json.Marshal(e.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// Document is the aggregate response keyed by topic name.
type Document map[string]Envelope

// Topic returns the envelope for name.
func (d Document) Topic(name string) (Envelope, bool) {
	env, ok := d[name]
	return env, ok
}
