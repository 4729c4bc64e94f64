//go:build unit || e2e

package builder

import (
	"time"

	"cinema-ticketing/internal/domain/customer"
	"cinema-ticketing/internal/domain/seat"
	"cinema-ticketing/internal/domain/session"
	"cinema-ticketing/internal/domain/ticket"
	reqdto "cinema-ticketing/internal/handler/dto/request"
	"cinema-ticketing/internal/infra/pgstore"
	"cinema-ticketing/internal/pkg/pgconv"
	"cinema-ticketing/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type TicketBuilder struct {
	TicketID       int64
	PurchasedAt    time.Time
	DocumentPath   string
	RecipientEmail string

	CustomerID    int64
	Surname       string
	Name          string
	Patronymic    string
	Phone         string
	BirthDate     time.Time
	CustomerEmail string

	SessionID int64
	FilmTitle string
	StartsAt  time.Time
	EndsAt    time.Time

	SeatID     int64
	SeatNumber int
}

func NewTicketBuilder() *TicketBuilder {
	startsAt := time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)
	return &TicketBuilder{
		TicketID:       42,
		PurchasedAt:    time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC),
		DocumentPath:   "tickets/ticket_42.pdf",
		RecipientEmail: "a@b.com",

		CustomerID:    1,
		Surname:       "Ivanov",
		Name:          "Ivan",
		Patronymic:    "Ivanovich",
		Phone:         "+79990000001",
		BirthDate:     time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
		CustomerEmail: "a@b.com",

		SessionID: 1,
		FilmTitle: "Solaris",
		StartsAt:  startsAt,
		EndsAt:    startsAt.Add(2*time.Hour + 47*time.Minute),

		SeatID:     5,
		SeatNumber: 5,
	}
}

func (b *TicketBuilder) With(mutate func(*TicketBuilder)) *TicketBuilder {
	mutate(b)
	return b
}

func (b *TicketBuilder) WithTicketID(id int64) *TicketBuilder {
	b.TicketID = id
	return b
}

func (b *TicketBuilder) WithoutDocument() *TicketBuilder {
	b.DocumentPath = ""
	return b
}

func (b *TicketBuilder) WithCustomerEmail(email string) *TicketBuilder {
	b.CustomerEmail = email
	return b
}

func (b *TicketBuilder) WithRecipientEmail(email string) *TicketBuilder {
	b.RecipientEmail = email
	return b
}

func (b *TicketBuilder) WithSeatNumber(n int) *TicketBuilder {
	b.SeatNumber = n
	return b
}

func (b *TicketBuilder) WithFilmTitle(title string) *TicketBuilder {
	b.FilmTitle = title
	return b
}

// Build methods
func (b *TicketBuilder) BuildCustomer() *customer.Customer {
	var email customer.Email
	if b.CustomerEmail != "" {
		email, _ = customer.NewEmail(b.CustomerEmail)
	}
	return customer.Reconstruct(b.CustomerID, b.Surname, b.Name, b.Patronymic, b.Phone, b.BirthDate, email)
}

func (b *TicketBuilder) BuildSession() *session.Session {
	s, err := session.NewSession(b.SessionID, b.FilmTitle, b.StartsAt, b.EndsAt)
	if err != nil {
		panic(err)
	}
	return s
}

func (b *TicketBuilder) BuildSeat() *seat.Seat {
	s, err := seat.NewSeat(b.SeatID, b.SeatNumber)
	if err != nil {
		panic(err)
	}
	return s
}

func (b *TicketBuilder) BuildRecipient() customer.Email {
	if b.RecipientEmail == "" {
		return customer.Email{}
	}
	email, err := customer.NewEmail(b.RecipientEmail)
	if err != nil {
		panic(err)
	}
	return email
}

// BuildDomain returns a persisted ticket.
func (b *TicketBuilder) BuildDomain() *ticket.Ticket {
	return ticket.Reconstruct(
		b.TicketID,
		b.BuildCustomer(),
		b.BuildSession(),
		b.BuildSeat(),
		b.BuildRecipient(),
		b.PurchasedAt,
		b.DocumentPath,
	)
}

// BuildNew returns an unsaved ticket.
func (b *TicketBuilder) BuildNew() *ticket.Ticket {
	return ticket.New(b.BuildCustomer(), b.BuildSession(), b.BuildSeat(), b.BuildRecipient())
}

func (b *TicketBuilder) BuildPurchaseRequestDTO() reqdto.PurchaseTicketRequest {
	return reqdto.PurchaseTicketRequest{
		ClientID:    b.CustomerID,
		SessionID:   b.SessionID,
		SeatNumber:  b.SeatNumber,
		ClientEmail: b.RecipientEmail,
	}
}

func (b *TicketBuilder) BuildView() *queries.TicketView {
	fullName := b.BuildCustomer().FullName()
	return &queries.TicketView{
		ID:              b.TicketID,
		CustomerID:      b.CustomerID,
		CustomerName:    fullName,
		FilmTitle:       b.FilmTitle,
		SessionStartsAt: b.StartsAt,
		SessionEndsAt:   b.EndsAt,
		SeatNumber:      b.SeatNumber,
		RecipientEmail:  b.RecipientEmail,
		PurchasedAt:     b.PurchasedAt,
		DocumentPath:    b.DocumentPath,
	}
}

func (b *TicketBuilder) BuildInfra() pgstore.GetTicketDetailRow {
	var customerEmail pgtype.Text
	if b.CustomerEmail != "" {
		customerEmail = pgconv.StringToPgtype(b.CustomerEmail)
	}
	return pgstore.GetTicketDetailRow{
		ID:           b.TicketID,
		PurchasedAt:  pgconv.TimeToPgtype(b.PurchasedAt),
		DocumentPath: pgconv.OptionalStringToPgtype(b.DocumentPath),
		Email:        b.RecipientEmail,
		Customer: pgstore.Customer{
			ID:         b.CustomerID,
			Surname:    b.Surname,
			Name:       b.Name,
			Patronymic: pgconv.OptionalStringToPgtype(b.Patronymic),
			Phone:      b.Phone,
			BirthDate:  pgtype.Date{Time: b.BirthDate, Valid: true},
			Email:      customerEmail,
		},
		Session: pgstore.Session{
			ID:        b.SessionID,
			FilmTitle: b.FilmTitle,
			StartsAt:  pgconv.TimeToPgtype(b.StartsAt),
			EndsAt:    pgconv.TimeToPgtype(b.EndsAt),
		},
		Seat: pgstore.Seat{
			ID: b.SeatID,
			// #nosec G115 -- test data
			Number: int32(b.SeatNumber),
		},
	}
}
