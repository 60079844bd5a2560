package fetch

import (
	"bytes"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/resinfo/internal/domain/status"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    url.Values
		wantErr bool
	}{
		{name: "none", args: nil, want: url.Values{}},
		{
			name: "pairs",
			args: []string{"users=online", "ping=time", "host=1.1.1.1"},
			want: url.Values{"users": {"online"}, "ping": {"time"}, "host": {"1.1.1.1"}},
		},
		{name: "bare name", args: []string{"luci"}, want: url.Values{"luci": {""}}},
		{name: "value keeps equals", args: []string{"network=a=b"}, want: url.Values{"network": {"a=b"}}},
		{name: "missing name", args: []string{"=online"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWrite(t *testing.T) {
	doc := status.NewDocument()
	doc.Set(status.TopicUsers, status.OK(map[string]int{"online": 3}))

	var buf bytes.Buffer
	require.NoError(t, write(&buf, doc))

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, `"users":{"status":true,"data":[{"online":3}],"error":null}`)
}
