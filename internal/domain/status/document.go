package status

import (
	"bytes"
	"encoding/json"
)

// Document holds exactly one envelope per topic. Distinct topics may be set
// from different goroutines; setting the same topic concurrently is not
// supported.
type Document struct {
	envelopes [len(topicOrder)]Envelope
}

// NewDocument returns a document where every topic reports "no data".
func NewDocument() *Document {
	d := &Document{}
	for i := range d.envelopes {
		d.envelopes[i] = NoData()
	}
	return d
}

// Set stores e for t. Unknown topics are ignored.
func (d *Document) Set(t Topic, e Envelope) {
	if i, ok := topicIndex[t]; ok {
		d.envelopes[i] = e
	}
}

func (d *Document) Get(t Topic) Envelope {
	if i, ok := topicIndex[t]; ok {
		return d.envelopes[i]
	}
	return NoData()
}

// MarshalJSON writes the topics in document order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, t := range topicOrder {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(string(t))
		buf.WriteString(`":`)
		env, err := json.Marshal(d.envelopes[i])
		if err != nil {
			return nil, err
		}
		buf.Write(env)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
