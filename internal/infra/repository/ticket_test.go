//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"cinema-ticketing/internal/infra"
	"cinema-ticketing/internal/infra/pgstore"
	"cinema-ticketing/internal/pkg/pgconv"
	"cinema-ticketing/tests/common/builder"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTicketWriteQueries struct {
	mock.Mock
}

func (m *MockTicketWriteQueries) CreateTicket(ctx context.Context, db pgstore.DBTX, arg pgstore.CreateTicketParams) (pgstore.CreateTicketRow, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(pgstore.CreateTicketRow), args.Error(1)
}

func (m *MockTicketWriteQueries) SetTicketDocument(ctx context.Context, db pgstore.DBTX, id int64, documentPath pgtype.Text) (int64, error) {
	args := m.Called(ctx, db, id, documentPath)
	return args.Get(0).(int64), args.Error(1)
}

func TestTicketRepositoryCreate(t *testing.T) {
	purchasedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	wantParams := pgstore.CreateTicketParams{CustomerID: 1, SessionID: 1, SeatID: 5, Email: "a@b.com"}

	t.Run("success marks ticket persisted", func(t *testing.T) {
		q := new(MockTicketWriteQueries)
		q.On("CreateTicket", mock.Anything, mock.Anything, wantParams).
			Return(pgstore.CreateTicketRow{ID: 77, PurchasedAt: pgconv.TimeToPgtype(purchasedAt)}, nil)

		tk := builder.NewTicketBuilder().BuildNew()
		err := NewTicketRepository(q).Create(context.Background(), nil, tk)

		require.NoError(t, err)
		assert.Equal(t, int64(77), tk.ID())
		assert.Equal(t, purchasedAt, tk.PurchasedAt())
		q.AssertExpectations(t)
	})

	t.Run("unique violation keeps constraint name", func(t *testing.T) {
		q := new(MockTicketWriteQueries)
		q.On("CreateTicket", mock.Anything, mock.Anything, wantParams).
			Return(pgstore.CreateTicketRow{}, &pgconn.PgError{Code: "23505", ConstraintName: "tickets_session_seat_key"})

		tk := builder.NewTicketBuilder().BuildNew()
		err := NewTicketRepository(q).Create(context.Background(), nil, tk)

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
		constraint, ok := infra.IsIntegrityViolation(err)
		assert.True(t, ok)
		assert.Equal(t, "tickets_session_seat_key", constraint)
		assert.False(t, tk.IsPersisted())
	})
}

func TestTicketRepositoryAttachDocument(t *testing.T) {
	tests := []struct {
		name     string
		rows     int64
		mockErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success", rows: 1},
		{name: "ticket vanished", rows: 0, wantKind: infra.KindNotFound},
		{name: "database error", mockErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := new(MockTicketWriteQueries)
			q.On("SetTicketDocument", mock.Anything, mock.Anything, int64(42), pgconv.StringToPgtype("tickets/ticket_42.pdf")).
				Return(tt.rows, tt.mockErr)

			tk := builder.NewTicketBuilder().BuildDomain()
			err := NewTicketRepository(q).AttachDocument(context.Background(), nil, tk)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind))
			}
			q.AssertExpectations(t)
		})
	}

	t.Run("unsaved ticket is rejected", func(t *testing.T) {
		q := new(MockTicketWriteQueries)
		err := NewTicketRepository(q).AttachDocument(context.Background(), nil, builder.NewTicketBuilder().BuildNew())
		assert.Error(t, err)
		q.AssertNumberOfCalls(t, "SetTicketDocument", 0)
	})
}
