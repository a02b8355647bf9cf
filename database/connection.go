package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const (
	connectAttempts = 3
	connectDelay    = 3 * time.Second
)

// DB represents a database connection pool
type DB struct {
	*pgxpool.Pool
}

// NewConnection creates a new database connection pool, retrying a fixed
// number of times with a fixed delay so a slow-starting database does not
// kill the process. After the last attempt the error is fatal to startup.
func NewConnection(ctx context.Context, databaseURL string) (*DB, error) {
	var lastErr error

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		pool, err := pgxpool.New(ctx, databaseURL)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return &DB{Pool: pool}, nil
			}
			pool.Close()
		}
		lastErr = err

		log.WithFields(log.Fields{
			"attempt": attempt,
			"error":   err,
		}).Warn("Database connection failed")

		if attempt < connectAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(connectDelay):
			}
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", connectAttempts, lastErr)
}

// Close closes the database connection pool
func (db *DB) Close() {
	db.Pool.Close()
}
