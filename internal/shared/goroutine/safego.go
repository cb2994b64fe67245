// Package goroutine launches background goroutines that log panics instead of
// crashing the process.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/qreserve/qreserve/internal/shared/logger"
)

// Go runs fn in its own goroutine. A panic is logged with its stack under
// name. The returned channel is closed once fn has returned or panicked, so
// owners can wait for it during shutdown.
func Go(log logger.Interface, name string, fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("background goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprint(r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
	return done
}
