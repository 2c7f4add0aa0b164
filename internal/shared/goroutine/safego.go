// Package goroutine launches background work whose panics must not take the
// process down silently.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"annia/internal/shared/logger"
)

// Go runs fn in its own goroutine. Its result, or the recovered panic as an
// error, is delivered on the returned channel, which is then closed.
func Go(log logger.Interface, name string, fn func() error) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
				done <- fmt.Errorf("%s panicked: %v", name, r)
			}
		}()
		done <- fn()
	}()
	return done
}
