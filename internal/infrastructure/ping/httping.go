package ping

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/orris-inc/resinfo/internal/infrastructure/shell"
)

var httpingTime = regexp.MustCompile(`(?i)time=([0-9.]+) ms`)

// HttpingProbe runs `httping -c 1 -t <s> -G -s <host>`.
type HttpingProbe struct {
	runner  shell.Runner
	path    string
	timeout time.Duration
}

func NewHttpingProbe(runner shell.Runner, path string, timeout time.Duration) *HttpingProbe {
	if path == "" {
		path = "httping"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HttpingProbe{runner: runner, path: path, timeout: timeout}
}

func (p *HttpingProbe) Measure(ctx context.Context, host string) (time.Duration, error) {
	secs := strconv.Itoa(max(1, int(p.timeout.Round(time.Second)/time.Second)))
	res, err := p.runner.Run(ctx, p.path, "-c", "1", "-t", secs, "-G", "-s", host)
	if err != nil {
		return 0, err
	}
	if !res.Success() {
		return 0, fmt.Errorf("httping exited with %d", res.ExitCode)
	}
	if d, ok := ParseHttping(res.Output()); ok {
		return d, nil
	}
	return 0, ErrNoTiming
}

// ParseHttping returns the first "time=<n> ms" value of httping output.
func ParseHttping(out []byte) (time.Duration, bool) {
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		m := httpingTime.FindSubmatch(sc.Bytes())
		if m == nil {
			continue
		}
		ms, err := strconv.ParseFloat(string(m[1]), 64)
		if err != nil {
			continue
		}
		return time.Duration(ms * float64(time.Millisecond)), true
	}
	return 0, false
}
