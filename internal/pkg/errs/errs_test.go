//go:build unit

package errs_test

import (
	"testing"

	"cinema-ticketing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestKinded(t *testing.T) {
	seatTaken := errs.Kinded("seat taken", errs.ErrConflict)
	emailTaken := errs.Kinded("email taken", errs.ErrConflict)

	t.Run("sentinel matches its category only", func(t *testing.T) {
		assert.True(t, errs.Is(seatTaken, errs.ErrConflict))
		assert.False(t, errs.Is(seatTaken, errs.ErrNotFound))
		assert.False(t, errs.Is(seatTaken, emailTaken))
	})

	t.Run("wrapped sentinel keeps category", func(t *testing.T) {
		err := errs.Wrap(seatTaken, "purchase")
		assert.True(t, errs.Is(err, seatTaken))
		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.Equal(t, errs.ErrConflict, errs.CategoryOf(err))
	})

	t.Run("marked cause gains sentinel and category", func(t *testing.T) {
		cause := errs.New("duplicate key value violates unique constraint")
		err := errs.Mark(cause, seatTaken)
		assert.True(t, errs.Is(err, seatTaken))
		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.False(t, errs.Is(err, emailTaken))
	})

	t.Run("uncategorised", func(t *testing.T) {
		assert.Nil(t, errs.CategoryOf(errs.New("boom")))
	})
}
