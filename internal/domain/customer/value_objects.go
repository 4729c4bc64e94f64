package customer

import (
	"strings"

	"cinema-ticketing/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidEmail = errs.Kinded("invalid email format", errs.ErrValidation)

var validate = validator.New()

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if err := validate.Var(s, "required,email,max=254"); err != nil {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

func (e Email) IsZero() bool {
	return e.value == ""
}
