//go:build unit

package readstore

import (
	"context"
	"testing"

	"cinema-ticketing/internal/infra"
	"cinema-ticketing/internal/infra/pgstore"
	"cinema-ticketing/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTicketReadQueries struct {
	mock.Mock
}

func (m *MockTicketReadQueries) GetTicketDetail(ctx context.Context, db pgstore.DBTX, id int64) (pgstore.GetTicketDetailRow, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(pgstore.GetTicketDetailRow), args.Error(1)
}

func (m *MockTicketReadQueries) TicketExistsForSessionSeat(ctx context.Context, db pgstore.DBTX, sessionID, seatID int64) (bool, error) {
	args := m.Called(ctx, db, sessionID, seatID)
	return args.Bool(0), args.Error(1)
}

func TestTicketReadStoreFindByID(t *testing.T) {
	b := builder.NewTicketBuilder()

	t.Run("maps the joined row to a view", func(t *testing.T) {
		q := new(MockTicketReadQueries)
		q.On("GetTicketDetail", mock.Anything, mock.Anything, int64(42)).Return(b.BuildInfra(), nil)

		got, err := NewTicketReadStore(q, nil).FindByID(context.Background(), 42)

		require.NoError(t, err)
		if diff := cmp.Diff(b.BuildView(), got); diff != "" {
			t.Errorf("TicketView mismatch (-want +got):\n%s", diff)
		}
		assert.True(t, got.HasDocument())
	})

	t.Run("not found", func(t *testing.T) {
		q := new(MockTicketReadQueries)
		q.On("GetTicketDetail", mock.Anything, mock.Anything, int64(404)).Return(pgstore.GetTicketDetailRow{}, pgx.ErrNoRows)

		_, err := NewTicketReadStore(q, nil).FindByID(context.Background(), 404)

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestTicketReadStoreFindDomainByID(t *testing.T) {
	b := builder.NewTicketBuilder().WithoutDocument()
	q := new(MockTicketReadQueries)
	q.On("GetTicketDetail", mock.Anything, mock.Anything, int64(42)).Return(b.BuildInfra(), nil)

	tk, err := NewTicketReadStore(q, nil).FindDomainByID(context.Background(), nil, 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), tk.ID())
	assert.Equal(t, "Ivanov Ivan Ivanovich", tk.Customer().FullName())
	assert.Equal(t, "Solaris", tk.Session().FilmTitle())
	assert.Equal(t, 5, tk.Seat().Number())
	assert.Equal(t, "a@b.com", tk.RecipientEmail().Value())
	assert.False(t, tk.HasDocument())
}

func TestTicketReadStoreExistsForSessionSeat(t *testing.T) {
	q := new(MockTicketReadQueries)
	q.On("TicketExistsForSessionSeat", mock.Anything, mock.Anything, int64(1), int64(5)).Return(true, nil)
	q.On("TicketExistsForSessionSeat", mock.Anything, mock.Anything, int64(1), int64(6)).Return(false, assert.AnError)

	store := NewTicketReadStore(q, nil)

	exists, err := store.ExistsForSessionSeat(context.Background(), nil, 1, 5)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = store.ExistsForSessionSeat(context.Background(), nil, 1, 6)
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
}
