// Package storage reports root filesystem capacity in kilobytes.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/orris-inc/resinfo/internal/domain/router"
	"github.com/orris-inc/resinfo/internal/infrastructure/shell"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

// UsageFunc returns total and available bytes of a mount point.
type UsageFunc func(ctx context.Context, path string) (total, free uint64, err error)

func gopsutilUsage(ctx context.Context, path string) (uint64, uint64, error) {
	u, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, 0, err
	}
	return u.Total, u.Free, nil
}

type Reader struct {
	usage  UsageFunc
	runner shell.Runner
	df     string
	mount  string
	logger logger.Interface
}

func NewReader(runner shell.Runner, dfPath string, log logger.Interface) *Reader {
	if dfPath == "" {
		dfPath = "df"
	}
	return &Reader{usage: gopsutilUsage, runner: runner, df: dfPath, mount: "/", logger: log}
}

// WithUsage replaces the statfs lookup, mainly for tests.
func (r *Reader) WithUsage(fn UsageFunc) *Reader {
	r.usage = fn
	return r
}

// Root returns {"root":{total,free}} in kB, falling back to `df -k /`.
// When neither works the record is empty.
func (r *Reader) Root(ctx context.Context) router.Storage {
	if total, free, err := r.usage(ctx, r.mount); err == nil && total > 0 {
		return router.Storage{Root: &router.FilesystemUsage{Total: total / 1024, Free: free / 1024}}
	} else if err != nil {
		r.logger.Debugw("statfs failed, falling back to df", "mount", r.mount, "error", err)
	}

	res, err := r.runner.Run(ctx, r.df, "-k", r.mount)
	if err != nil || !res.Success() {
		r.logger.Warnw("df failed", "mount", r.mount, "error", err, "exit_code", res.ExitCode)
		return router.Storage{}
	}
	usage, err := ParseDF(res.Stdout)
	if err != nil {
		r.logger.Warnw("failed to parse df output", "error", err)
		return router.Storage{}
	}
	return router.Storage{Root: usage}
}

// ParseDF reads the last line of `df -k` output: total in column 2 and
// available in column 4, both already in kB.
func ParseDF(out []byte) (*router.FilesystemUsage, error) {
	lines := strings.Split(string(bytes.TrimSpace(out)), "\n")
	fields := strings.Fields(lines[len(lines)-1])
	if len(fields) < 4 {
		return nil, fmt.Errorf("unexpected df line %q", lines[len(lines)-1])
	}
	total, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad df total: %w", err)
	}
	free, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad df available: %w", err)
	}
	return &router.FilesystemUsage{Total: total, Free: free}, nil
}
