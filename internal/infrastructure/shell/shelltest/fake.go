// Package shelltest provides a canned shell.Runner for tests.
package shelltest

import (
	"context"
	"strings"
	"sync"

	"github.com/orris-inc/resinfo/internal/infrastructure/shell"
)

// FakeRunner answers commands from canned results keyed by the full command
// line. Unregistered commands exit 127.
type FakeRunner struct {
	mu        sync.Mutex
	Responses map[string]shell.Result
	Errors    map[string]error
	Calls     []string
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{Responses: map[string]shell.Result{}, Errors: map[string]error{}}
}

// On registers stdout for a command line and returns the runner.
func (f *FakeRunner) On(cmdline, stdout string) *FakeRunner {
	f.Responses[cmdline] = shell.Result{Stdout: []byte(stdout)}
	return f
}

// OnResult registers a full result for a command line.
func (f *FakeRunner) OnResult(cmdline string, res shell.Result) *FakeRunner {
	f.Responses[cmdline] = res
	return f
}

// OnError makes a command line fail to start.
func (f *FakeRunner) OnError(cmdline string, err error) *FakeRunner {
	f.Errors[cmdline] = err
	return f
}

func (f *FakeRunner) Run(_ context.Context, name string, args ...string) (shell.Result, error) {
	cmdline := strings.Join(append([]string{name}, args...), " ")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, cmdline)

	if err, ok := f.Errors[cmdline]; ok {
		return shell.Result{}, err
	}
	if res, ok := f.Responses[cmdline]; ok {
		return res, nil
	}
	return shell.Result{ExitCode: 127}, nil
}

// Called reports whether cmdline was run.
func (f *FakeRunner) Called(cmdline string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Calls {
		if c == cmdline {
			return true
		}
	}
	return false
}
