package processes

import (
	"context"
	"strconv"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/orris-inc/resinfo/internal/infrastructure/shell"
	apperrors "github.com/orris-inc/resinfo/internal/shared/errors"
)

// Source lists the running processes.
type Source interface {
	List(ctx context.Context) ([]Process, error)
}

// PSSource shells out to ps.
type PSSource struct {
	runner shell.Runner
	path   string
}

func NewPSSource(runner shell.Runner, path string) *PSSource {
	if path == "" {
		path = "ps"
	}
	return &PSSource{runner: runner, path: path}
}

func (s *PSSource) List(ctx context.Context) ([]Process, error) {
	res, err := s.runner.Run(ctx, s.path)
	if err != nil {
		return nil, apperrors.NewUnavailableError("ps", err)
	}
	if len(res.Stdout) == 0 {
		return nil, apperrors.NewEmptyError("ps", "no process listing")
	}
	return ParsePS(res.Stdout), nil
}

// GopsutilSource reads the process table through gopsutil, which also
// provides resident memory without a second procfs read.
type GopsutilSource struct{}

func NewGopsutilSource() *GopsutilSource {
	return &GopsutilSource{}
}

func (s *GopsutilSource) List(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, apperrors.NewUnavailableError("gopsutil", err)
	}

	out := make([]Process, 0, len(procs))
	for _, p := range procs {
		cmd, err := p.CmdlineWithContext(ctx)
		if err != nil || cmd == "" {
			// kernel threads have no command line
			name, nerr := p.NameWithContext(ctx)
			if nerr != nil || name == "" {
				continue
			}
			cmd = "[" + name + "]"
		}
		if isSelf(cmd) {
			continue
		}
		proc := Process{PID: strconv.FormatInt(int64(p.Pid), 10), Command: cmd}
		if mem, err := p.MemoryInfoWithContext(ctx); err == nil && mem != nil {
			proc.RSSKB = int64(mem.RSS / 1024)
			proc.HasRSS = true
		}
		out = append(out, proc)
	}
	return out, nil
}
