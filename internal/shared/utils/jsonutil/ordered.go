// Package jsonutil provides order-preserving JSON helpers for documents that
// are passed through from upstream tools and lightly edited.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value json.RawMessage
}

// Object is a JSON object that remembers key order. Setting an existing key
// replaces its value in place; new keys are appended.
type Object struct {
	members []Member
	index   map[string]int
}

func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// ParseObject decodes a JSON object keeping member order. Duplicate keys keep
// the position of the first occurrence and the value of the last.
func ParseObject(raw []byte) (*Object, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("jsonutil: expected object, got %v", tok)
	}

	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("jsonutil: expected key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		obj.SetRaw(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func (o *Object) Len() int { return len(o.members) }

func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

func (o *Object) Get(key string) (json.RawMessage, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Members returns the pairs in order. The slice must not be modified.
func (o *Object) Members() []Member { return o.members }

func (o *Object) SetRaw(key string, value json.RawMessage) {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = value
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: value})
}

// Set marshals value and stores it under key.
func (o *Object) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("jsonutil: marshal %q: %w", key, err)
	}
	o.SetRaw(key, raw)
	return nil
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o.members {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(m.Value) == 0 {
			buf.WriteString("null")
			continue
		}
		buf.Write(m.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Embed turns tool output into a value that can be placed inside a larger
// document. Well-formed JSON is compacted; anything else becomes a JSON
// string. Blank input returns nil.
func Embed(raw []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	if json.Valid(trimmed) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err == nil {
			return buf.Bytes()
		}
	}
	quoted, _ := json.Marshal(string(trimmed))
	return quoted
}
