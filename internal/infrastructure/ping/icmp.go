package ping

import (
	"context"
	"time"

	goping "github.com/go-ping/ping"

	"github.com/orris-inc/resinfo/internal/shared/goroutine"
)

// ICMPProbe sends a single echo request. Unprivileged mode uses UDP
// sockets and needs net.ipv4.ping_group_range to include the process group.
type ICMPProbe struct {
	timeout    time.Duration
	privileged bool
}

func NewICMPProbe(timeout time.Duration, privileged bool) *ICMPProbe {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ICMPProbe{timeout: timeout, privileged: privileged}
}

func (p *ICMPProbe) Measure(ctx context.Context, host string) (time.Duration, error) {
	pinger, err := goping.NewPinger(host)
	if err != nil {
		return 0, err
	}
	pinger.Count = 1
	pinger.Timeout = p.timeout
	pinger.SetPrivileged(p.privileged)

	if err := await(ctx, pinger.Run, pinger.Stop); err != nil {
		return 0, err
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return 0, ErrNoTiming
	}
	return stats.AvgRtt, nil
}

// await runs run on its own goroutine until it returns or ctx ends, calling
// stop on cancellation. A panic inside run comes back as an error.
func await(ctx context.Context, run func() error, stop func()) error {
	done := make(chan error, 1)
	go func() { done <- goroutine.Run("icmp ping", run) }()

	select {
	case <-ctx.Done():
		stop()
		<-done
		return ctx.Err()
	case err := <-done:
		return err
	}
}
