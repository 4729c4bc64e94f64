//go:build unit

package readstore

import (
	"context"
	"testing"

	"cinema-ticketing/internal/infra"
	"cinema-ticketing/internal/infra/pgstore"
	"cinema-ticketing/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCustomerReadQueries struct {
	mock.Mock
}

func (m *MockCustomerReadQueries) GetCustomerByID(ctx context.Context, db pgstore.DBTX, id int64) (pgstore.Customer, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(pgstore.Customer), args.Error(1)
}

func (m *MockCustomerReadQueries) FindCustomerIDByEmailExcluding(ctx context.Context, db pgstore.DBTX, email string, excludeID int64) (int64, error) {
	args := m.Called(ctx, db, email, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

func TestCustomerReadStore(t *testing.T) {
	t.Run("find by id", func(t *testing.T) {
		q := new(MockCustomerReadQueries)
		q.On("GetCustomerByID", mock.Anything, mock.Anything, int64(1)).Return(pgstore.Customer{
			ID:      1,
			Surname: "Petrova",
			Name:    "Anna",
			Phone:   "+79990000002",
			Email:   pgconv.StringToPgtype("anna@example.com"),
		}, nil)
		q.On("GetCustomerByID", mock.Anything, mock.Anything, int64(2)).Return(pgstore.Customer{}, pgx.ErrNoRows)

		store := NewCustomerReadStore(q)

		c, err := store.FindByID(context.Background(), nil, 1)
		require.NoError(t, err)
		assert.Equal(t, "Petrova Anna", c.FullName())
		assert.Equal(t, "anna@example.com", c.Email().Value())

		_, err = store.FindByID(context.Background(), nil, 2)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("email owned by other", func(t *testing.T) {
		q := new(MockCustomerReadQueries)
		q.On("FindCustomerIDByEmailExcluding", mock.Anything, mock.Anything, "taken@example.com", int64(1)).Return(int64(2), nil)
		q.On("FindCustomerIDByEmailExcluding", mock.Anything, mock.Anything, "free@example.com", int64(1)).Return(int64(0), pgx.ErrNoRows)

		store := NewCustomerReadStore(q)

		taken, err := store.EmailOwnedByOther(context.Background(), nil, "taken@example.com", 1)
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = store.EmailOwnedByOther(context.Background(), nil, "free@example.com", 1)
		require.NoError(t, err)
		assert.False(t, taken)
	})
}
