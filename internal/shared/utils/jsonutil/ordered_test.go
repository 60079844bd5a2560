package jsonutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObject_PreservesOrder(t *testing.T) {
	obj, err := ParseObject([]byte(`{"zeta":1,"alpha":{"b":2,"a":1},"mid":[1,2]}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())

	out, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":{"b":2,"a":1},"mid":[1,2]}`, string(out))
}

func TestObject_SetReplacesInPlace(t *testing.T) {
	obj, err := ParseObject([]byte(`{"up":true,"speed":"1000F","carrier":true}`))
	require.NoError(t, err)

	require.NoError(t, obj.Set("speed", "100F"))
	require.NoError(t, obj.Set("ipv4_address", "192.168.1.1"))

	out, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"up":true,"speed":"100F","carrier":true,"ipv4_address":"192.168.1.1"}`, string(out))
}

func TestParseObject_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "array", input: `[1,2]`},
		{name: "scalar", input: `"text"`},
		{name: "truncated", input: `{"a":1`},
		{name: "empty", input: ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseObject([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestObject_GetAndEmpty(t *testing.T) {
	obj := NewObject()
	out, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))

	obj.SetRaw("a", json.RawMessage(`1`))
	v, ok := obj.Get("a")
	assert.True(t, ok)
	assert.Equal(t, json.RawMessage(`1`), v)
	_, ok = obj.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 1, obj.Len())
}

func TestEmbed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "object is compacted", input: "{\n  \"uptime\": 12\n}\n", want: `{"uptime":12}`},
		{name: "non json becomes string", input: "Failed to connect to ubus\n", want: `"Failed to connect to ubus"`},
		{name: "blank is nil", input: " \n\t", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Embed([]byte(tt.input))))
		})
	}
}
