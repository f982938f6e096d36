package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
//
// Implementations are expected to block in [RunServer] until ctx is cancelled
// and to release resources in [Shutdown].
type Server interface {
	// RunServer starts serving requests and blocks until ctx is done and
	// every transport has stopped.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
