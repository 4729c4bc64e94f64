//go:build unit

package commands_test

import (
	"context"
	"testing"

	"cinema-ticketing/internal/domain/seat"
	"cinema-ticketing/internal/pkg/errs"
	"cinema-ticketing/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEnsureSeats(t *testing.T) {
	uow := newFakeUoW()
	uow.seats.On("EnsureRange", mock.Anything, mock.Anything, 1, 100).Return(int64(40), int64(100), nil)

	res, err := commands.NewSeatCommands(uow, discardLogger()).EnsureSeats(context.Background(), 1, 100)

	require.NoError(t, err)
	assert.Equal(t, &commands.EnsureSeatsResult{Created: 40, Total: 100}, res)
	assert.Equal(t, 1, uow.commits)
}

func TestEnsureSeatsRejectsBadRange(t *testing.T) {
	for _, r := range [][2]int{{0, 10}, {-1, 5}, {10, 9}} {
		uow := newFakeUoW()
		_, err := commands.NewSeatCommands(uow, discardLogger()).EnsureSeats(context.Background(), r[0], r[1])

		assert.True(t, errs.Is(err, seat.ErrInvalidSeatNumber))
		assert.True(t, errs.Is(err, errs.ErrValidation))
		uow.seats.AssertNotCalled(t, "EnsureRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	}
}
