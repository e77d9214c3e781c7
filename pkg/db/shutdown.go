package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Shutdown returns a function that closes the connection pool.
// Use with zenith.ShutdownHook:
//
//	err := app.Run(":8080", zenith.ShutdownHook(db.Shutdown(pool)))
func Shutdown(pool *pgxpool.Pool) func(ctx context.Context) error {
	return func(context.Context) error {
		pool.Close()
		return nil
	}
}
