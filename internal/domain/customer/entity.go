package customer

import (
	"strings"
	"time"
)

// Customer is shared reference data. Only the email is ever changed by a
// purchase.
type Customer struct {
	id         int64
	surname    string
	name       string
	patronymic string
	phone      string
	birthDate  time.Time
	email      Email
}

// Reconstruct rebuilds a persisted customer. An empty email means none is on
// file.
func Reconstruct(id int64, surname, name, patronymic, phone string, birthDate time.Time, email Email) *Customer {
	return &Customer{
		id:         id,
		surname:    surname,
		name:       name,
		patronymic: patronymic,
		phone:      phone,
		birthDate:  birthDate,
		email:      email,
	}
}

func (c *Customer) ID() int64            { return c.id }
func (c *Customer) Surname() string      { return c.surname }
func (c *Customer) Name() string         { return c.name }
func (c *Customer) Patronymic() string   { return c.patronymic }
func (c *Customer) Phone() string        { return c.phone }
func (c *Customer) BirthDate() time.Time { return c.birthDate }
func (c *Customer) Email() Email         { return c.email }

func (c *Customer) FullName() string {
	return strings.TrimSpace(strings.Join([]string{c.surname, c.name, c.patronymic}, " "))
}

// NeedsEmailUpdate is true when no email is on file or it differs from e.
func (c *Customer) NeedsEmailUpdate(e Email) bool {
	return c.email.IsZero() || c.email.Value() != e.Value()
}

func (c *Customer) ChangeEmail(e Email) {
	c.email = e
}
