// Package ratelimit bounds how often one client may request the status
// document.
package ratelimit

import (
	"context"
	"time"
)

// Window is the period a limit applies to.
const Window = time.Minute

// Limiter reports whether the request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
