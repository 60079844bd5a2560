package status

import (
	"encoding/json"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument_AllTopicsNoData(t *testing.T) {
	out, err := json.Marshal(NewDocument())
	require.NoError(t, err)

	var parts []string
	for _, topic := range Topics() {
		parts = append(parts, `"`+topic.String()+`":{"status":false,"data":[],"error":"no data"}`)
	}
	assert.Equal(t, "{"+strings.Join(parts, ",")+"}", string(out))
}

func TestDocument_FixedOrder(t *testing.T) {
	doc := NewDocument()
	doc.Set(TopicNetdata, OK(json.RawMessage(`{"version":"v1"}`)))
	doc.Set(TopicNetwork, OK())

	out, err := json.Marshal(doc)
	require.NoError(t, err)

	s := string(out)
	prev := -1
	for _, topic := range Topics() {
		idx := strings.Index(s, `"`+topic.String()+`":`)
		require.GreaterOrEqual(t, idx, 0, topic)
		assert.Greater(t, idx, prev, "topic %s out of order", topic)
		prev = idx
	}
	assert.Contains(t, s, `"netdata":{"status":true,"data":[{"version":"v1"}],"error":null}`)
	assert.Contains(t, s, `"network":{"status":true,"data":[],"error":null}`)
}

func TestDocument_ConcurrentDistinctTopics(t *testing.T) {
	doc := NewDocument()
	var wg sync.WaitGroup
	for _, topic := range Topics() {
		wg.Add(1)
		go func(topic Topic) {
			defer wg.Done()
			doc.Set(topic, OK(map[string]string{"topic": topic.String()}))
		}(topic)
	}
	wg.Wait()

	for _, topic := range Topics() {
		assert.True(t, doc.Get(topic).Status, topic)
	}
}

func TestDocument_IgnoresUnknownTopic(t *testing.T) {
	doc := NewDocument()
	doc.Set(Topic("weather"), OK())
	assert.Equal(t, ReasonNoData, doc.Get(Topic("weather")).Reason())
	assert.False(t, Topic("weather").IsValid())
	assert.True(t, TopicPing.IsValid())
}

func TestEnvelopeConstructors(t *testing.T) {
	tests := []struct {
		name string
		env  Envelope
		want string
	}{
		{name: "ok", env: OK(map[string]int{"online": 5}), want: `{"status":true,"data":[{"online":5}],"error":null}`},
		{name: "ok drops empty raw", env: OK(json.RawMessage(nil)), want: `{"status":true,"data":[],"error":null}`},
		{name: "fail", env: Fail(ReasonInvalidParameter), want: `{"status":false,"data":[],"error":"invalid parameter"}`},
		{name: "flagged", env: Flagged(ReasonParameterNotFound), want: `{"status":true,"data":[],"error":"parameter not found"}`},
		{name: "strict flagged", env: Flagged(ReasonQueryError).Strict(), want: `{"status":false,"data":[],"error":"query error"}`},
		{name: "strict ok untouched", env: OK("x").Strict(), want: `{"status":true,"data":["x"],"error":null}`},
		{name: "zero value", env: Envelope{}, want: `{"status":false,"data":[],"error":null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestQuery_PresenceAndLastValue(t *testing.T) {
	q := NewQuery(url.Values{
		"network": {""},
		"ping":    {"time"},
		"host":    {"a.example", "b.example"},
	})

	assert.True(t, q.Has(TopicNetwork))
	v, ok := q.Lookup("network")
	assert.True(t, ok)
	assert.Empty(t, v)

	assert.Equal(t, "b.example", q.Value("host", "google.com"))
	assert.Equal(t, "50", q.Value("lines", "50"))
	assert.False(t, q.Has(TopicUsers))
	assert.Equal(t, []Topic{TopicNetwork, TopicPing}, q.Selected())
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery("users=online&logs=system&lines=100")
	require.NoError(t, err)
	assert.Equal(t, []Topic{TopicUsers, TopicLogs}, q.Selected())
	assert.Equal(t, "100", q.Value("lines", ""))

	_, err = ParseQuery("bad=%zz")
	assert.Error(t, err)
}
