//go:build unit

package uow

import (
	"context"
	"testing"
	"time"

	"cinema-ticketing/internal/infra/pgstore"
	"cinema-ticketing/internal/pkg/errs"
	"cinema-ticketing/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx embeds pgx.Tx so only the methods the unit of work calls need bodies.
type fakeTx struct {
	pgx.Tx
	commitErr  error
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Commit(context.Context) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	if f.committed {
		return pgx.ErrTxClosed
	}
	f.rolledBack = true
	return nil
}

type fakePool struct {
	pgstore.DBTX
	commitErrs []error
	begun      []*fakeTx
}

func (p *fakePool) BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error) {
	tx := &fakeTx{}
	if i := len(p.begun); i < len(p.commitErrs) {
		tx.commitErr = p.commitErrs[i]
	}
	p.begun = append(p.begun, tx)
	return tx, nil
}

func TestWithin(t *testing.T) {
	serialization := &pgconn.PgError{Code: pgErrCodeSerializationFailure}
	uniqueViolation := &pgconn.PgError{Code: "23505", ConstraintName: "tickets_session_seat_key"}

	t.Run("commits on success and skips rollback hooks", func(t *testing.T) {
		pool := &fakePool{}
		u := newPostgresUoW(pool, pgstore.New(), nil)

		hookRan := false
		err := u.Within(context.Background(), func(_ context.Context, tx shared.Tx) error {
			tx.OnRollback(func(context.Context) { hookRan = true })
			return nil
		})

		require.NoError(t, err)
		require.Len(t, pool.begun, 1)
		assert.True(t, pool.begun[0].committed)
		assert.False(t, hookRan)
	})

	t.Run("function error rolls back and runs hooks newest first", func(t *testing.T) {
		pool := &fakePool{}
		u := newPostgresUoW(pool, pgstore.New(), nil)
		fnErr := errs.New("render failed")

		var order []string
		err := u.Within(context.Background(), func(_ context.Context, tx shared.Tx) error {
			tx.OnRollback(func(context.Context) { order = append(order, "first") })
			tx.OnRollback(func(context.Context) { order = append(order, "second") })
			return fnErr
		})

		assert.True(t, errs.Is(err, fnErr))
		require.Len(t, pool.begun, 1)
		assert.True(t, pool.begun[0].rolledBack)
		assert.Equal(t, []string{"second", "first"}, order)
	})

	t.Run("commit-time unique violation is returned without retry", func(t *testing.T) {
		pool := &fakePool{commitErrs: []error{uniqueViolation}}
		u := newPostgresUoW(pool, pgstore.New(), nil)

		hooks := 0
		err := u.Within(context.Background(), func(_ context.Context, tx shared.Tx) error {
			tx.OnRollback(func(context.Context) { hooks++ })
			return nil
		})

		require.Error(t, err)
		var pgErr *pgconn.PgError
		require.True(t, errs.As(err, &pgErr))
		assert.Equal(t, "tickets_session_seat_key", pgErr.ConstraintName)
		assert.Len(t, pool.begun, 1)
		assert.Equal(t, 1, hooks)
	})

	t.Run("serialization failure is retried", func(t *testing.T) {
		pool := &fakePool{commitErrs: []error{serialization}}
		u := newPostgresUoW(pool, pgstore.New(), nil)

		calls := 0
		err := u.Within(context.Background(), func(context.Context, shared.Tx) error {
			calls++
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		assert.True(t, pool.begun[1].committed)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		pool := &fakePool{commitErrs: []error{serialization, serialization, serialization, serialization}}
		u := newPostgresUoW(pool, pgstore.New(), nil)

		err := u.Within(context.Background(), func(context.Context, shared.Tx) error { return nil })

		assert.True(t, errs.Is(err, errMaxRetriesExceeded))
		assert.Len(t, pool.begun, maxRetries+1)
	})
}

func TestCalculateBackoff(t *testing.T) {
	for attempt := 0; attempt < 3; attempt++ {
		base := time.Duration(1<<attempt) * backoffBase
		got := calculateBackoff(attempt, backoffBase)
		assert.GreaterOrEqual(t, got, base)
		assert.Less(t, got, base+base/5+time.Nanosecond)
	}
}
