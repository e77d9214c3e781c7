package redis

import (
	"context"
	"io"
)

// Shutdown returns a function that closes the client.
// Use with zenith.ShutdownHook.
func Shutdown(client io.Closer) func(ctx context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}
