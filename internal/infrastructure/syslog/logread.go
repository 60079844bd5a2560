// Package syslog tails the router's ring-buffer log via logread.
package syslog

import (
	"bytes"
	"context"
	"strings"

	"github.com/orris-inc/resinfo/internal/domain/router"
	"github.com/orris-inc/resinfo/internal/infrastructure/shell"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

type Reader struct {
	runner shell.Runner
	path   string
	logger logger.Interface
}

func NewReader(runner shell.Runner, path string, log logger.Interface) *Reader {
	if path == "" {
		path = "logread"
	}
	return &Reader{runner: runner, path: path, logger: log}
}

// Tail returns the last n lines of the system log, trimmed. An empty or
// unavailable log reads as "No logs available".
func (r *Reader) Tail(ctx context.Context, n int) router.LogContent {
	res, err := r.runner.Run(ctx, r.path)
	if err != nil {
		r.logger.Warnw("logread failed", "error", err)
		return router.LogContent{Content: router.LogsEmpty}
	}
	content := strings.TrimSpace(string(LastLines(res.Stdout, n)))
	if content == "" {
		return router.LogContent{Content: router.LogsEmpty}
	}
	return router.LogContent{Content: content}
}

// LastLines returns the final n lines of out, like `tail -n`.
func LastLines(out []byte, n int) []byte {
	if n <= 0 {
		return nil
	}
	out = bytes.TrimRight(out, "\n")
	end := len(out)
	for i := end - 1; i >= 0; i-- {
		if out[i] == '\n' {
			n--
			if n == 0 {
				return out[i+1 : end]
			}
		}
	}
	return out
}
