//go:build unit

package customer_test

import (
	"testing"
	"time"

	"cinema-ticketing/internal/domain/customer"
	"cinema-ticketing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		errIs error
	}{
		{name: "valid", input: "a@b.com", want: "a@b.com"},
		{name: "trimmed", input: "  viewer@cinema.ru ", want: "viewer@cinema.ru"},
		{name: "empty", input: "", errIs: customer.ErrInvalidEmail},
		{name: "no at sign", input: "invalidemail.com", errIs: customer.ErrInvalidEmail},
		{name: "no domain", input: "user@", errIs: customer.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := customer.NewEmail(tt.input)
			if tt.errIs != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tt.errIs))
				assert.True(t, errs.Is(err, errs.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, email.Value())
		})
	}
}

func TestCustomer(t *testing.T) {
	birth := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)

	t.Run("full name joins and trims parts", func(t *testing.T) {
		withPatronymic := customer.Reconstruct(1, "Ivanov", "Ivan", "Ivanovich", "+70000000001", birth, customer.Email{})
		assert.Equal(t, "Ivanov Ivan Ivanovich", withPatronymic.FullName())

		withoutPatronymic := customer.Reconstruct(2, "Petrova", "Anna", "", "+70000000002", birth, customer.Email{})
		assert.Equal(t, "Petrova Anna", withoutPatronymic.FullName())
	})

	t.Run("email reconciliation", func(t *testing.T) {
		stored, err := customer.NewEmail("old@example.com")
		require.NoError(t, err)
		same, _ := customer.NewEmail("old@example.com")
		other, _ := customer.NewEmail("new@example.com")

		noEmail := customer.Reconstruct(1, "Ivanov", "Ivan", "", "+70000000001", birth, customer.Email{})
		assert.True(t, noEmail.NeedsEmailUpdate(same))

		c := customer.Reconstruct(1, "Ivanov", "Ivan", "", "+70000000001", birth, stored)
		assert.False(t, c.NeedsEmailUpdate(same))
		assert.True(t, c.NeedsEmailUpdate(other))

		c.ChangeEmail(other)
		assert.Equal(t, "new@example.com", c.Email().Value())
		assert.False(t, c.NeedsEmailUpdate(other))
	})
}
