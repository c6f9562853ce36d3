package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OscarDom1/community-resource-platform/internal/common"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, MapError(nil))

	assert.ErrorIs(t, MapError(sql.ErrNoRows), common.ErrNotFound)
	assert.ErrorIs(t, MapError(fmt.Errorf("scan: %w", sql.ErrNoRows)), common.ErrNotFound)

	dup := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"}
	err := MapError(dup)
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
	assert.Contains(t, err.Error(), "users_email_key")

	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}
	assert.ErrorIs(t, MapError(fk), common.ErrStoreUnavailable)

	down := errors.New("connection refused")
	err = MapError(down)
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
	assert.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "db error:")

	assert.ErrorIs(t, MapError(context.Canceled), context.Canceled)
	assert.NotErrorIs(t, MapError(context.Canceled), common.ErrStoreUnavailable)
}

type flakyPinger struct {
	failures int
	calls    int
}

func (p *flakyPinger) PingContext(context.Context) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("not yet")
	}
	return nil
}

func TestPingWithRetry_EventuallySucceeds(t *testing.T) {
	p := &flakyPinger{failures: 2}
	require.NoError(t, PingWithRetry(context.Background(), p, 5, time.Millisecond))
	assert.Equal(t, 3, p.calls)
}

func TestPingWithRetry_GivesUp(t *testing.T) {
	p := &flakyPinger{failures: 100}
	err := PingWithRetry(context.Background(), p, 2, time.Millisecond)
	require.Error(t, err)
	assert.Equal(t, 3, p.calls)
}

func TestPingWithRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &flakyPinger{failures: 100}
	err := PingWithRetry(ctx, p, 10, time.Second)
	require.Error(t, err)
	assert.LessOrEqual(t, p.calls, 1)
}
