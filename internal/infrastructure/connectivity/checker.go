// Package connectivity reports whether the router can reach the internet.
package connectivity

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	"github.com/orris-inc/resinfo/internal/domain/router"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

const (
	DefaultURL     = "https://8.8.8.8"
	DefaultTimeout = 5 * time.Second
)

type Checker struct {
	url    string
	client *http.Client
	logger logger.Interface
}

func NewChecker(url string, timeout time.Duration, log logger.Interface) *Checker {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Checker{
		url: url,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec
			},
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: log,
	}
}

// Check is Connected for any 2xx or 3xx answer.
func (c *Checker) Check(ctx context.Context) router.Connectivity {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		c.logger.Warnw("invalid connectivity url", "url", c.url, "error", err)
		return router.NewConnectivity(false)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debugw("connectivity check failed", "url", c.url, "error", err)
		return router.NewConnectivity(false)
	}
	resp.Body.Close()
	return router.NewConnectivity(resp.StatusCode >= 200 && resp.StatusCode < 400)
}
