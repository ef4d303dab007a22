// Package server wires and runs the application's HTTP server.
//
// It owns the server lifecycle: startup, signal handling and graceful
// shutdown of the listener together with the background workers started
// alongside it.
package server
