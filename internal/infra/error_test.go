//go:build unit

package infra_test

import (
	"testing"

	"cinema-ticketing/internal/infra"
	"cinema-ticketing/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		kind           []infra.RepositoryErrorKind
		wantKind       infra.RepositoryErrorKind
		wantConstraint string
	}{
		{
			name:     "no rows",
			err:      pgx.ErrNoRows,
			wantKind: infra.KindNotFound,
		},
		{
			name:           "unique violation",
			err:            &pgconn.PgError{Code: "23505", ConstraintName: "tickets_session_seat_key"},
			wantKind:       infra.KindDuplicateKey,
			wantConstraint: "tickets_session_seat_key",
		},
		{
			name:           "foreign key violation",
			err:            &pgconn.PgError{Code: "23503", ConstraintName: "tickets_customer_id_fkey"},
			wantKind:       infra.KindForeignKeyViolated,
			wantConstraint: "tickets_customer_id_fkey",
		},
		{
			name:           "check violation",
			err:            &pgconn.PgError{Code: "23514", ConstraintName: "sessions_time_range_check"},
			wantKind:       infra.KindCheckViolated,
			wantConstraint: "sessions_time_range_check",
		},
		{
			name:     "other driver error",
			err:      &pgconn.PgError{Code: "57014"},
			wantKind: infra.KindDBFailure,
		},
		{
			name:     "explicit kind wins",
			err:      assert.AnError,
			kind:     []infra.RepositoryErrorKind{infra.KindNotFound},
			wantKind: infra.KindNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := infra.WrapRepoErr("op", tt.err, tt.kind...)

			var re infra.RepositoryError
			if assert.True(t, errs.As(err, &re)) {
				assert.Equal(t, tt.wantKind, re.Kind)
				assert.Equal(t, tt.wantConstraint, re.Constraint)
			}
			assert.True(t, infra.IsKind(err, tt.wantKind))
		})
	}
}

func TestIsIntegrityViolation(t *testing.T) {
	t.Run("raw commit error", func(t *testing.T) {
		err := errs.Wrap(&pgconn.PgError{Code: "23505", ConstraintName: "customers_email_key"}, "commit")
		constraint, ok := infra.IsIntegrityViolation(err)
		assert.True(t, ok)
		assert.Equal(t, "customers_email_key", constraint)
	})

	t.Run("repository error", func(t *testing.T) {
		err := infra.WrapRepoErr("insert", &pgconn.PgError{Code: "23505", ConstraintName: "tickets_session_seat_key"})
		constraint, ok := infra.IsIntegrityViolation(errs.Wrap(err, "purchase"))
		assert.True(t, ok)
		assert.Equal(t, "tickets_session_seat_key", constraint)
	})

	t.Run("not an integrity error", func(t *testing.T) {
		_, ok := infra.IsIntegrityViolation(pgx.ErrNoRows)
		assert.False(t, ok)
		_, ok = infra.IsIntegrityViolation(nil)
		assert.False(t, ok)
	})
}
