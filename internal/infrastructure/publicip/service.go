// Package publicip resolves the router's public address through ip-api.com
// and keeps the answer in a shared cache record.
package publicip

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/orris-inc/resinfo/internal/domain/router"
	"github.com/orris-inc/resinfo/internal/infrastructure/cache"
	"github.com/orris-inc/resinfo/internal/shared/clock"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

const (
	// CacheKey names the record in the KV store (public_ip_cache.json on disk).
	CacheKey = "public_ip_cache"

	DefaultURL       = "http://ip-api.com/json/"
	DefaultTimeout   = 5 * time.Second
	DefaultFreshness = 300 * time.Second

	maxResponseSize = 64 << 10
)

type ipAPIResponse struct {
	Query string `json:"query"`
	ISP   string `json:"isp"`
}

type Service struct {
	store      cache.KVStore
	httpClient *http.Client
	url        string
	freshness  time.Duration
	clock      clock.Clock
	logger     logger.Interface

	lookups singleflight.Group
}

type Option func(*Service)

func WithURL(url string) Option {
	return func(s *Service) { s.url = url }
}

func WithFreshness(d time.Duration) Option {
	return func(s *Service) { s.freshness = d }
}

func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithHTTPClient replaces the default client (timeout, TLS verification off).
func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) { s.httpClient = c }
}

func NewService(store cache.KVStore, timeout time.Duration, log logger.Interface, opts ...Option) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	s := &Service{
		store: store,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
			},
		},
		url:       DefaultURL,
		freshness: DefaultFreshness,
		clock:     clock.System,
		logger:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup returns the cached record while fresh, otherwise asks upstream and
// rewrites the cache. It never fails: when nothing is known the record is
// {Unknown, Unknown}. Concurrent misses share one upstream request.
func (s *Service) Lookup(ctx context.Context) router.PublicIP {
	if rec, ok := s.cached(ctx); ok {
		return rec
	}

	// the shared lookup outlives any single caller; the client timeout bounds it
	shared := context.WithoutCancel(ctx)
	v, _, _ := s.lookups.Do(CacheKey, func() (any, error) {
		// another caller may have refreshed it while we waited
		if rec, ok := s.cached(shared); ok {
			return rec, nil
		}
		return s.refresh(shared), nil
	})
	return v.(router.PublicIP)
}

func (s *Service) cached(ctx context.Context) (router.PublicIP, bool) {
	var rec router.PublicIP
	found, err := cache.GetJSON(ctx, s.store, CacheKey, &rec)
	if err != nil {
		s.logger.Warnw("failed to read public ip cache", "error", err)
		return router.PublicIP{}, false
	}
	if !found || rec.IP == "" || rec.Timestamp == 0 {
		return router.PublicIP{}, false
	}
	if !cache.IsFresh(time.Unix(rec.Timestamp, 0), s.clock.Now(), s.freshness) {
		return router.PublicIP{}, false
	}
	return rec, true
}

func (s *Service) refresh(ctx context.Context) router.PublicIP {
	resp, err := s.fetch(ctx)
	if err != nil {
		s.logger.Warnw("public ip lookup failed", "url", s.url, "error", err)
		return router.UnknownPublicIP()
	}

	rec := router.PublicIP{
		IP:        resp.Query,
		ISP:       resp.ISP,
		Timestamp: clock.Unix(s.clock),
	}
	if rec.ISP == "" {
		rec.ISP = router.UnknownValue
	}

	if err := cache.PutJSON(ctx, s.store, CacheKey, rec); err != nil {
		s.logger.Warnw("failed to write public ip cache", "error", err)
	}
	s.logger.Infow("public ip refreshed", "ip", rec.IP, "isp", rec.ISP)
	return rec
}

func (s *Service) fetch(ctx context.Context) (*ipAPIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var body ipAPIResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if body.Query == "" {
		return nil, fmt.Errorf("response has no query field")
	}
	return &body, nil
}
