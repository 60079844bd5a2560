// Package vnstat reads per-interface traffic history from vnstat's JSON
// output.
package vnstat

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/orris-inc/resinfo/internal/infrastructure/shell"
	apperrors "github.com/orris-inc/resinfo/internal/shared/errors"
)

const source = "vnstat"

type report struct {
	Interfaces []struct {
		Name    string          `json:"name"`
		Traffic json.RawMessage `json:"traffic"`
	} `json:"interfaces"`
}

type Client struct {
	runner shell.Runner
	path   string
}

func NewClient(runner shell.Runner, path string) *Client {
	if path == "" {
		path = "vnstat"
	}
	return &Client{runner: runner, path: path}
}

// Traffic returns the traffic object of iface. Errors: empty output when
// vnstat knows nothing about iface, malformed output, or not found when the
// report does not list iface.
func (c *Client) Traffic(ctx context.Context, iface string) (json.RawMessage, error) {
	res, err := c.runner.Run(ctx, c.path, "--json", "-i", iface)
	if err != nil {
		return nil, apperrors.NewUnavailableError(source, err)
	}
	out := bytes.TrimSpace(res.Stdout)
	if len(out) == 0 {
		return nil, apperrors.NewEmptyError(source, iface)
	}
	return ExtractTraffic(out, iface)
}

// ExtractTraffic picks the traffic object of the named interface.
func ExtractTraffic(out []byte, iface string) (json.RawMessage, error) {
	var r report
	if err := json.Unmarshal(out, &r); err != nil {
		return nil, apperrors.NewMalformedError(source, err)
	}
	for _, it := range r.Interfaces {
		if it.Name == iface && len(it.Traffic) > 0 {
			return it.Traffic, nil
		}
	}
	return nil, apperrors.NewNotFoundError(source, iface)
}
