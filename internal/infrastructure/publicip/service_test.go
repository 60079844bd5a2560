package publicip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/resinfo/internal/domain/router"
	"github.com/orris-inc/resinfo/internal/infrastructure/cache"
	"github.com/orris-inc/resinfo/internal/shared/clock"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

type fakeUpstream struct {
	server *httptest.Server
	hits   atomic.Int32
	body   atomic.Value
	status atomic.Int32
}

func newFakeUpstream(t *testing.T, body string) *fakeUpstream {
	u := &fakeUpstream{}
	u.body.Store(body)
	u.status.Store(http.StatusOK)
	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		w.WriteHeader(int(u.status.Load()))
		_, _ = w.Write([]byte(u.body.Load().(string)))
	}))
	t.Cleanup(u.server.Close)
	return u
}

type movableClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *movableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *movableClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestService(t *testing.T, url string, c clock.Clock) (*Service, cache.KVStore) {
	store := cache.NewFileStore(t.TempDir())
	svc := NewService(store, time.Second, logger.NewNop(), WithURL(url), WithClock(c))
	return svc, store
}

func TestLookup_FetchesAndCaches(t *testing.T) {
	up := newFakeUpstream(t, `{"status":"success","query":"203.0.113.7","isp":"Example Fiber"}`)
	clk := &movableClock{now: time.Unix(1_700_000_000, 0)}
	svc, store := newTestService(t, up.server.URL, clk)
	ctx := context.Background()

	first := svc.Lookup(ctx)
	assert.Equal(t, router.PublicIP{IP: "203.0.113.7", ISP: "Example Fiber", Timestamp: 1_700_000_000}, first)

	clk.Advance(299 * time.Second)
	up.body.Store(`{"query":"198.51.100.1","isp":"Other"}`)
	assert.Equal(t, first, svc.Lookup(ctx))
	assert.Equal(t, int32(1), up.hits.Load())

	var stored router.PublicIP
	found, err := cache.GetJSON(ctx, store, CacheKey, &stored)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, first, stored)
}

func TestLookup_CancelledCallerStillFillsCache(t *testing.T) {
	up := newFakeUpstream(t, `{"query":"203.0.113.7","isp":"Example Fiber"}`)
	svc, _ := newTestService(t, up.server.URL, &movableClock{now: time.Unix(1_700_000_000, 0)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	want := router.PublicIP{IP: "203.0.113.7", ISP: "Example Fiber", Timestamp: 1_700_000_000}
	assert.Equal(t, want, svc.Lookup(ctx))
	assert.Equal(t, want, svc.Lookup(context.Background()))
	assert.Equal(t, int32(1), up.hits.Load())
}

func TestLookup_StaleRecordIsReplaced(t *testing.T) {
	up := newFakeUpstream(t, `{"query":"198.51.100.1","isp":"Other"}`)
	clk := &movableClock{now: time.Unix(2_000, 0)}
	svc, store := newTestService(t, up.server.URL, clk)
	ctx := context.Background()
	require.NoError(t, cache.PutJSON(ctx, store, CacheKey, router.PublicIP{IP: "203.0.113.7", ISP: "Old", Timestamp: 1_700}))

	got := svc.Lookup(ctx)
	assert.Equal(t, router.PublicIP{IP: "198.51.100.1", ISP: "Other", Timestamp: 2_000}, got)

	clk.Advance(10 * time.Second)
	assert.Equal(t, got, svc.Lookup(ctx))
	assert.Equal(t, int32(1), up.hits.Load())
}

func TestLookup_UpstreamDownWithFreshCache(t *testing.T) {
	up := newFakeUpstream(t, ``)
	up.server.Close()
	clk := &movableClock{now: time.Unix(5_000, 0)}
	svc, store := newTestService(t, up.server.URL, clk)
	ctx := context.Background()
	cached := router.PublicIP{IP: "203.0.113.7", ISP: "Example", Timestamp: 4_900}
	require.NoError(t, cache.PutJSON(ctx, store, CacheKey, cached))

	assert.Equal(t, cached, svc.Lookup(ctx))
	clk.Advance(199 * time.Second)
	assert.Equal(t, cached, svc.Lookup(ctx))
}

func TestLookup_FailuresReturnUnknown(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"query":"1.2.3.4"}`},
		{name: "missing query", status: http.StatusOK, body: `{"status":"fail","message":"reserved range"}`},
		{name: "not json", status: http.StatusOK, body: `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := newFakeUpstream(t, tt.body)
			up.status.Store(int32(tt.status))
			svc, store := newTestService(t, up.server.URL, clock.Fixed(time.Unix(10, 0)))

			assert.Equal(t, router.UnknownPublicIP(), svc.Lookup(context.Background()))

			_, found, err := store.Get(context.Background(), CacheKey)
			require.NoError(t, err)
			assert.False(t, found, "cache must not be written on failure")
		})
	}
}

func TestLookup_MissingISPDefaultsToUnknown(t *testing.T) {
	up := newFakeUpstream(t, `{"query":"203.0.113.7"}`)
	svc, _ := newTestService(t, up.server.URL, clock.Fixed(time.Unix(10, 0)))

	assert.Equal(t, "Unknown", svc.Lookup(context.Background()).ISP)
}

func TestLookup_ConcurrentMissesShareOneRequest(t *testing.T) {
	release := make(chan struct{})
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"query":"203.0.113.7","isp":"Example"}`))
	}))
	t.Cleanup(server.Close)
	svc, _ := newTestService(t, server.URL, clock.Fixed(time.Unix(10, 0)))

	var wg sync.WaitGroup
	results := make([]router.PublicIP, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Lookup(context.Background())
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
	for _, r := range results {
		assert.Equal(t, "203.0.113.7", r.IP)
	}
}
