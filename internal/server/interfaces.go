package server

import "context"

// Server defines the lifecycle contract for the servers managed by this
// package.
//
// Implementations are expected to block in [RunServer] until shutdown is
// requested and to release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}

// BackgroundRunner is started together with the server and stopped after
// the listener has been closed.
type BackgroundRunner interface {
	Run()
	Stop(ctx context.Context) error
}
