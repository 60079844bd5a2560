// Package goroutine provides panic-safe helpers for launching work.
package goroutine

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/orris-inc/resinfo/internal/shared/logger"
)

// PanicError is returned by Run when fn panicked.
type PanicError struct {
	Name  string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s panicked: %v", e.Name, e.Value)
}

// SafeGo launches fn in a goroutine. A panic is logged with its stack
// instead of crashing the process.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		if err := Run(name, func() error { fn(); return nil }); err != nil {
			var pe *PanicError
			if errors.As(err, &pe) {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", pe.Value),
					"stack", string(pe.Stack),
				)
			}
		}
	}()
}

// Run calls fn on the current goroutine and converts a panic into a
// *PanicError.
func Run(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Name: name, Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}
