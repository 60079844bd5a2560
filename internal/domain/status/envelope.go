package status

import "encoding/json"

// Envelope is the uniform wrapper around one topic's result.
// Data always serializes as an array; Error serializes as null when unset.
type Envelope struct {
	Status bool    `json:"status"`
	Data   []any   `json:"data"`
	Error  *Reason `json:"error" swaggertype:"string" example:"no data"`
}

type envelopeJSON struct {
	Status bool    `json:"status"`
	Data   []any   `json:"data"`
	Error  *Reason `json:"error"`
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	data := e.Data
	if data == nil {
		data = []any{}
	}
	return json.Marshal(envelopeJSON{Status: e.Status, Data: data, Error: e.Error})
}

// OK is a successful envelope. Nil items are dropped so an empty result
// still serializes as [].
func OK(items ...any) Envelope {
	return Envelope{Status: true, Data: compact(items)}
}

// NoData is the envelope of a topic that was not requested.
func NoData() Envelope {
	return Fail(ReasonNoData)
}

// Fail is a failed envelope with empty data.
func Fail(reason Reason) Envelope {
	r := reason
	return Envelope{Status: false, Data: []any{}, Error: &r}
}

// FailWith is a failed envelope that still carries data.
func FailWith(reason Reason, items ...any) Envelope {
	r := reason
	return Envelope{Status: false, Data: compact(items), Error: &r}
}

// Flagged reports success together with an error reason. Upstream-empty
// passthrough topics have always answered this way and the dashboard
// depends on it.
func Flagged(reason Reason, items ...any) Envelope {
	r := reason
	return Envelope{Status: true, Data: compact(items), Error: &r}
}

// Strict turns any envelope carrying an error into a failure.
func (e Envelope) Strict() Envelope {
	if e.Error != nil {
		e.Status = false
	}
	return e
}

// Reason returns the error reason, or "" on success.
func (e Envelope) Reason() Reason {
	if e.Error == nil {
		return ""
	}
	return *e.Error
}

func compact(items []any) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if raw, ok := it.(json.RawMessage); ok && len(raw) == 0 {
			continue
		}
		out = append(out, it)
	}
	return out
}
