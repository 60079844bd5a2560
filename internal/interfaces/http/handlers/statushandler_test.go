package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/resinfo/internal/domain/status"
	"github.com/orris-inc/resinfo/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

type mockAggregator struct {
	got status.Query
}

func (m *mockAggregator) Execute(ctx context.Context, q status.Query) *status.Document {
	m.got = q
	doc := status.NewDocument()
	if v, ok := q.Lookup("users"); ok && v == "online" {
		doc.Set(status.TopicUsers, status.OK(map[string]int{"online": 5}))
	}
	return doc
}

func TestStatusHandler_GetStatus(t *testing.T) {
	agg := &mockAggregator{}
	h := NewStatusHandler(agg, logger.NewNop())

	c, w := testutil.NewTestContext(http.MethodGet, "/api.php?users=online&ping")
	h.GetStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	assert.True(t, agg.got.Has(status.TopicPing), "empty selector still counts as present")

	var doc map[string]testutil.Envelope
	require.NoError(t, testutil.ParseResponse(w, &doc))
	require.Len(t, doc, len(status.Topics()))

	users := doc["users"]
	assert.True(t, users.Status)
	assert.Nil(t, users.Error)
	assert.JSONEq(t, `{"online":5}`, string(users.Data[0]))

	netdata := doc["netdata"]
	assert.False(t, netdata.Status)
	require.NotNil(t, netdata.Error)
	assert.Equal(t, "no data", *netdata.Error)
	assert.Empty(t, netdata.Data)
}

func TestStatusHandler_KeyOrder(t *testing.T) {
	h := NewStatusHandler(&mockAggregator{}, logger.NewNop())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/status")
	h.GetStatus(c)

	body := w.Body.String()
	last := -1
	for _, topic := range status.Topics() {
		idx := strings.Index(body, `"`+string(topic)+`":`)
		require.Greater(t, idx, last, "topic %s out of order", topic)
		last = idx
	}
}

func TestStatusHandler_Health(t *testing.T) {
	h := NewStatusHandler(&mockAggregator{}, logger.NewNop())

	c, w := testutil.NewTestContext(http.MethodGet, "/health")
	h.Health(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
