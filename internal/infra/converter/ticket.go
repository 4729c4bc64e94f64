package converter

import (
	"cinema-ticketing/internal/domain/customer"
	"cinema-ticketing/internal/domain/seat"
	"cinema-ticketing/internal/domain/session"
	"cinema-ticketing/internal/domain/ticket"
	"cinema-ticketing/internal/infra/pgstore"
	"cinema-ticketing/internal/pkg/errs"
	"cinema-ticketing/internal/pkg/pgconv"
	"cinema-ticketing/internal/usecase/queries"
)

// CustomerToDomain tolerates a malformed stored email by treating it as
// absent, so reconciliation overwrites it.
func CustomerToDomain(row pgstore.Customer) *customer.Customer {
	var email customer.Email
	if row.Email.Valid {
		email, _ = customer.NewEmail(row.Email.String)
	}
	return customer.Reconstruct(
		row.ID,
		row.Surname,
		row.Name,
		row.Patronymic.String,
		row.Phone,
		pgconv.DateFromPgtype(row.BirthDate),
		email,
	)
}

func SessionToDomain(row pgstore.Session) (*session.Session, error) {
	s, err := session.NewSession(
		row.ID,
		row.FilmTitle,
		pgconv.TimeFromPgtype(row.StartsAt),
		pgconv.TimeFromPgtype(row.EndsAt),
	)
	if err != nil {
		return nil, errs.Wrapf(err, "stored session %d", row.ID)
	}
	return s, nil
}

func SeatToDomain(row pgstore.Seat) (*seat.Seat, error) {
	s, err := seat.NewSeat(row.ID, int(row.Number))
	if err != nil {
		return nil, errs.Wrapf(err, "stored seat %d", row.ID)
	}
	return s, nil
}

func TicketDetailToDomain(row pgstore.GetTicketDetailRow) (*ticket.Ticket, error) {
	s, err := SessionToDomain(row.Session)
	if err != nil {
		return nil, err
	}
	st, err := SeatToDomain(row.Seat)
	if err != nil {
		return nil, err
	}
	recipient, _ := customer.NewEmail(row.Email)

	return ticket.Reconstruct(
		row.ID,
		CustomerToDomain(row.Customer),
		s,
		st,
		recipient,
		pgconv.TimeFromPgtype(row.PurchasedAt),
		row.DocumentPath.String,
	), nil
}

func TicketDetailToView(row pgstore.GetTicketDetailRow) *queries.TicketView {
	return &queries.TicketView{
		ID:              row.ID,
		CustomerID:      row.Customer.ID,
		CustomerName:    CustomerToDomain(row.Customer).FullName(),
		FilmTitle:       row.Session.FilmTitle,
		SessionStartsAt: pgconv.TimeFromPgtype(row.Session.StartsAt),
		SessionEndsAt:   pgconv.TimeFromPgtype(row.Session.EndsAt),
		SeatNumber:      int(row.Seat.Number),
		RecipientEmail:  row.Email,
		PurchasedAt:     pgconv.TimeFromPgtype(row.PurchasedAt),
		DocumentPath:    row.DocumentPath.String,
	}
}
