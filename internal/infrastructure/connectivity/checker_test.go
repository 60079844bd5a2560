package connectivity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/orris-inc/resinfo/internal/shared/logger"
)

func TestChecker_Check(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		want    string
		wantTLS bool
	}{
		{name: "ok", status: http.StatusOK, want: "Connected"},
		{name: "redirect", status: http.StatusFound, want: "Connected"},
		{name: "client error", status: http.StatusNotFound, want: "Disconnected"},
		{name: "self-signed tls", status: http.StatusNoContent, want: "Connected", wantTLS: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status >= 300 && tt.status < 400 {
					w.Header().Set("Location", "/next")
				}
				w.WriteHeader(tt.status)
			})
			var server *httptest.Server
			if tt.wantTLS {
				server = httptest.NewTLSServer(handler)
			} else {
				server = httptest.NewServer(handler)
			}
			defer server.Close()

			got := NewChecker(server.URL, time.Second, logger.NewNop()).Check(context.Background())
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestChecker_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	got := NewChecker(url, 500*time.Millisecond, logger.NewNop()).Check(context.Background())
	assert.Equal(t, "Disconnected", got.Status)
	assert.Equal(t, "fa-times bg-gradient-danger", got.IconClass)
}
