// Package dbx provides the small database abstractions shared by
// repositories: the DBTX interface satisfied by *sql.DB and *sql.Tx, error
// mapping from driver errors to common sentinels, and a startup ping with
// retry.
package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/OscarDom1/community-resource-platform/internal/common"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
)

// DBTX is the subset of database/sql used by our repos.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// MapError translates a driver error into the common taxonomy:
//
//	sql.ErrNoRows                -> common.ErrNotFound
//	unique_violation (23505)     -> common.ErrAlreadyExists
//	context cancellation/timeout -> returned as is
//	anything else                -> wrapped with common.ErrStoreUnavailable
//
// The original error stays in the chain for logging. nil maps to nil.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%w: %s", common.ErrAlreadyExists, pgErr.ConstraintName)
	}

	return fmt.Errorf("db error: %w", errors.Join(common.ErrStoreUnavailable, err))
}

// Pinger is implemented by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingWithRetry waits for the database to accept connections, retrying
// with exponential backoff. It is meant for startup only; request paths
// never retry.
func PingWithRetry(ctx context.Context, db Pinger, attempts uint64, base time.Duration) error {
	backoff := retry.WithMaxRetries(attempts, retry.NewExponential(base))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}
