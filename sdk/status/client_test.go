package status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"users":{"status":true,"data":[{"online":5}],"error":null},
			"ping":{"status":false,"data":[],"error":"no data"}
		}`))
	}))
	defer server.Close()

	c := NewClient(server.URL + "/api.php")
	doc, err := c.FetchQuery(context.Background(), "users=online")
	require.NoError(t, err)

	assert.Equal(t, "online", gotQuery.Get("users"))

	users, ok := doc.Topic("users")
	require.True(t, ok)
	assert.True(t, users.OK())

	var online struct {
		Online int `json:"online"`
	}
	require.NoError(t, users.DecodeFirst(&online))
	assert.Equal(t, 5, online.Online)

	ping := doc["ping"]
	assert.False(t, ping.OK())
	assert.Equal(t, "no data", ping.Reason())
	assert.ErrorIs(t, ping.DecodeFirst(&online), ErrNoItems)

	_, ok = doc.Topic("netdata")
	assert.False(t, ok)
}

func TestClient_FetchAppendsToExistingQuery(t *testing.T) {
	var rawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := NewClient(server.URL + "/?token=x")
	_, err := c.Fetch(context.Background(), url.Values{"logs": {"system"}})
	require.NoError(t, err)
	assert.Equal(t, "token=x&logs=system", rawQuery)
}

func TestClient_FetchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "non 2xx",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusBadGateway)
			},
			want: "status=502",
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
			want: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewClient(server.URL).Fetch(context.Background(), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestClient_WithTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, WithTimeout(20*time.Millisecond)).Fetch(context.Background(), nil)
	require.Error(t, err)
}

func TestEnvelope_DecodeAll(t *testing.T) {
	env := Envelope{Status: true, Data: []json.RawMessage{json.RawMessage(`{"name":"dnsmasq"}`), json.RawMessage(`{"name":"uhttpd"}`)}}

	var services []struct {
		Name string `json:"name"`
	}
	require.NoError(t, env.DecodeAll(&services))
	require.Len(t, services, 2)
	assert.Equal(t, "uhttpd", services[1].Name)
}
