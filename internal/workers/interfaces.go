// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that starts and
// stops multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker and returns immediately; the work itself happens on
// goroutines owned by the worker. Stop waits for in-flight work to finish
// or for ctx to expire, whichever comes first.
type Worker interface {
	Run()
	Stop(ctx context.Context) error
}
