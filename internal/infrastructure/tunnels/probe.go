// Package tunnels reports which tunnel daemons are running.
package tunnels

import (
	"context"

	"github.com/orris-inc/resinfo/internal/domain/router"
	"github.com/orris-inc/resinfo/internal/infrastructure/shell"
	"github.com/orris-inc/resinfo/internal/shared/logger"
	"github.com/orris-inc/resinfo/internal/shared/utils/jsonutil"
)

// Daemon is one entry of the tunnel table.
type Daemon struct {
	Key        string
	Name       string
	Executable string
}

// Daemons is the fixed table in output order.
var Daemons = []Daemon{
	{Key: "xray", Name: "Xray", Executable: "xray"},
	{Key: "mihomo", Name: "Mihomo", Executable: "mihomo"},
	{Key: "sing-box", Name: "Sing-Box", Executable: "sing-box"},
	{Key: "tailscale", Name: "Tailscale", Executable: "tailscaled"},
	{Key: "cloudflared", Name: "Cloudflared", Executable: "cloudflared"},
	{Key: "ngrok", Name: "Ngrok", Executable: "ngrok"},
}

type Probe struct {
	runner shell.Runner
	pidof  string
	logger logger.Interface
}

func NewProbe(runner shell.Runner, pidofPath string, log logger.Interface) *Probe {
	if pidofPath == "" {
		pidofPath = "pidof"
	}
	return &Probe{runner: runner, pidof: pidofPath, logger: log}
}

// Status returns key -> {name, running} in table order. A daemon whose
// pidof check cannot run is reported as not running.
func (p *Probe) Status(ctx context.Context) *jsonutil.Object {
	out := jsonutil.NewObject()
	for _, d := range Daemons {
		_ = out.Set(d.Key, router.Tunnel{Name: d.Name, Running: p.running(ctx, d.Executable)})
	}
	return out
}

func (p *Probe) running(ctx context.Context, exe string) bool {
	res, err := p.runner.Run(ctx, p.pidof, exe)
	if err != nil {
		p.logger.Debugw("pidof failed", "executable", exe, "error", err)
		return false
	}
	return res.Success()
}
