// Package netdata reads the local netdata agent and the SoC thermal zone.
package netdata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/orris-inc/resinfo/internal/domain/router"
	apperrors "github.com/orris-inc/resinfo/internal/shared/errors"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

const (
	DefaultBaseURL     = "http://127.0.0.1:19999"
	DefaultThermalPath = "/sys/class/thermal/thermal_zone0/temp"

	source          = "netdata"
	maxResponseSize = 8 << 20
)

type Client struct {
	baseURL     string
	thermalPath string
	httpClient  *http.Client
	logger      logger.Interface
}

func NewClient(baseURL, thermalPath string, timeout time.Duration, log logger.Interface) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if thermalPath == "" {
		thermalPath = DefaultThermalPath
	}
	return &Client{
		baseURL:     baseURL,
		thermalPath: thermalPath,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      log,
	}
}

// Info returns /api/v1/info verbatim.
func (c *Client) Info(ctx context.Context) ([]byte, error) {
	body, status, err := c.get(ctx, "/api/v1/info")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, apperrors.NewUnavailableError(source, fmt.Errorf("info returned %d", status))
	}
	return body, nil
}

// Chart returns the data of one chart: the whole series when all is set,
// otherwise only the latest point (after=-1). A chart unknown to netdata
// is reported as not found.
func (c *Client) Chart(ctx context.Context, chart string, all bool) ([]byte, error) {
	q := url.Values{"chart": {chart}}
	probe, _, err := c.get(ctx, "/api/v1/data?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if string(probe) == "Chart is not found: "+chart {
		return nil, apperrors.NewNotFoundError(source, chart)
	}
	if all {
		return probe, nil
	}

	q.Set("after", "-1")
	body, status, err := c.get(ctx, "/api/v1/data?"+q.Encode())
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, apperrors.NewUnavailableError(source, fmt.Errorf("chart %s returned %d", chart, status))
	}
	return body, nil
}

// Temperature reads the raw millidegree value of the thermal zone.
func (c *Client) Temperature() (router.Temperature, error) {
	data, err := os.ReadFile(c.thermalPath)
	if err != nil {
		return router.Temperature{}, apperrors.NewUnavailableError("thermal", err)
	}
	fields := bytes.Fields(data)
	if len(fields) == 0 {
		return router.Temperature{}, apperrors.NewEmptyError("thermal", c.thermalPath)
	}
	v, err := strconv.ParseInt(string(fields[0]), 10, 64)
	if err != nil {
		return router.Temperature{}, apperrors.NewMalformedError("thermal", err)
	}
	return router.Temperature{Temp: v}, nil
}

// get returns the trimmed body and status code. Transport failures are
// unavailable errors; non-2xx answers are returned to the caller.
func (c *Client) get(ctx context.Context, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, apperrors.NewUnavailableError(source, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debugw("netdata request failed", "path", path, "error", err)
		return nil, 0, apperrors.NewUnavailableError(source, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, resp.StatusCode, apperrors.NewUnavailableError(source, err)
	}
	return bytes.TrimSpace(body), resp.StatusCode, nil
}
