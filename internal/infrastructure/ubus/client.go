// Package ubus calls OpenWrt's ubus RPC bus through the ubus CLI.
package ubus

import (
	"bytes"
	"context"

	"github.com/orris-inc/resinfo/internal/infrastructure/shell"
	apperrors "github.com/orris-inc/resinfo/internal/shared/errors"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

const source = "ubus"

type Client struct {
	runner shell.Runner
	path   string
	logger logger.Interface
}

func NewClient(runner shell.Runner, path string, log logger.Interface) *Client {
	if path == "" {
		path = "ubus"
	}
	return &Client{runner: runner, path: path, logger: log}
}

// Call runs `ubus call <object> <method>` and returns its trimmed stdout.
// ubus reports unknown objects and methods on stderr, so empty stdout is
// returned as an empty-output error regardless of the exit status.
func (c *Client) Call(ctx context.Context, object, method string) ([]byte, error) {
	res, err := c.runner.Run(ctx, c.path, "call", object, method)
	if err != nil {
		c.logger.Warnw("ubus call failed", "object", object, "method", method, "error", err)
		return nil, apperrors.NewUnavailableError(source, err)
	}

	out := bytes.TrimSpace(res.Stdout)
	if len(out) == 0 {
		c.logger.Debugw("ubus call returned nothing",
			"object", object,
			"method", method,
			"exit_code", res.ExitCode,
			"stderr", string(bytes.TrimSpace(res.Stderr)),
		)
		return nil, apperrors.NewEmptyError(source, object+" "+method)
	}
	return out, nil
}

// DeviceStatus returns the network devices with their interface details
// merged in. When the interface dump is unusable the raw device status is
// returned unchanged.
func (c *Client) DeviceStatus(ctx context.Context) ([]byte, error) {
	devices, err := c.Call(ctx, "network.device", "status")
	if err != nil {
		return nil, err
	}

	dump, err := c.Call(ctx, "network.interface", "dump")
	if err != nil {
		return devices, nil
	}

	merged, ok := MergeDeviceInterfaces(devices, dump)
	if !ok {
		c.logger.Debugw("device enrichment skipped, returning raw device status")
		return devices, nil
	}
	return merged, nil
}

// InterfaceStatus runs `ubus call network.interface.<name> status`.
func (c *Client) InterfaceStatus(ctx context.Context, name string) ([]byte, error) {
	return c.Call(ctx, "network.interface."+name, "status")
}
