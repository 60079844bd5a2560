// Package ping measures latency to a host: a primary probe (httping or
// ICMP) with an HTTP HEAD fallback.
package ping

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/orris-inc/resinfo/internal/domain/router"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

const (
	DefaultHost    = "google.com"
	DefaultTimeout = 2 * time.Second
)

// ErrNoTiming is returned by a probe that finished without a measurement.
var ErrNoTiming = errors.New("no timing")

// Probe measures one round trip to host.
type Probe interface {
	Measure(ctx context.Context, host string) (time.Duration, error)
}

// Prober runs the primary probe and falls back to an HTTP HEAD.
type Prober struct {
	primary  Probe
	fallback Probe
	logger   logger.Interface
}

func NewProber(primary, fallback Probe, log logger.Interface) *Prober {
	return &Prober{primary: primary, fallback: fallback, logger: log}
}

// FormatDuration renders a latency as milliseconds with one decimal.
func FormatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1f ms", float64(d)/float64(time.Millisecond))
}

// Time returns "<ms> ms" or "Timeout". The second value reports whether a
// measurement was obtained.
func (p *Prober) Time(ctx context.Context, host string) (string, bool) {
	if p.primary != nil {
		d, err := p.primary.Measure(ctx, host)
		if err == nil {
			return FormatDuration(d), true
		}
		p.logger.Debugw("primary ping failed, trying http fallback", "host", host, "error", err)
	}
	if p.fallback != nil {
		d, err := p.fallback.Measure(ctx, host)
		if err == nil {
			return FormatDuration(d), true
		}
		p.logger.Debugw("http ping fallback failed", "host", host, "error", err)
	}
	return router.PingTimeout, false
}

// HTTPProbe times a HEAD request to http://<host>. Any response counts,
// including redirects, which are not followed.
type HTTPProbe struct {
	client *http.Client
	now    func() time.Time
}

func NewHTTPProbe(timeout time.Duration) *HTTPProbe {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPProbe{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig:   &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
				DisableKeepAlives: true,
			},
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		now: time.Now,
	}
}

func (p *HTTPProbe) Measure(ctx context.Context, host string) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, "http://"+host, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	start := p.now()
	resp, err := p.client.Do(req)
	if err != nil {
		return 0, err
	}
	elapsed := p.now().Sub(start)
	resp.Body.Close()
	return elapsed, nil
}
