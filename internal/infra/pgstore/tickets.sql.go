package pgstore

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const ticketExistsForSessionSeat = `-- name: TicketExistsForSessionSeat :one
SELECT EXISTS (
    SELECT 1 FROM tickets WHERE session_id = $1 AND seat_id = $2
)
`

func (q *Queries) TicketExistsForSessionSeat(ctx context.Context, db DBTX, sessionID, seatID int64) (bool, error) {
	row := db.QueryRow(ctx, ticketExistsForSessionSeat, sessionID, seatID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const createTicket = `-- name: CreateTicket :one
INSERT INTO tickets (customer_id, session_id, seat_id, email)
VALUES ($1, $2, $3, $4)
RETURNING id, purchased_at
`

type CreateTicketParams struct {
	CustomerID int64
	SessionID  int64
	SeatID     int64
	Email      string
}

type CreateTicketRow struct {
	ID          int64
	PurchasedAt pgtype.Timestamptz
}

func (q *Queries) CreateTicket(ctx context.Context, db DBTX, arg CreateTicketParams) (CreateTicketRow, error) {
	row := db.QueryRow(ctx, createTicket,
		arg.CustomerID,
		arg.SessionID,
		arg.SeatID,
		arg.Email,
	)
	var i CreateTicketRow
	err := row.Scan(&i.ID, &i.PurchasedAt)
	return i, err
}

const setTicketDocument = `-- name: SetTicketDocument :execrows
UPDATE tickets
SET document_path = $2
WHERE id = $1
`

func (q *Queries) SetTicketDocument(ctx context.Context, db DBTX, id int64, documentPath pgtype.Text) (int64, error) {
	result, err := db.Exec(ctx, setTicketDocument, id, documentPath)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getTicketDetail = `-- name: GetTicketDetail :one
SELECT
    t.id, t.purchased_at, t.document_path, t.email,
    c.id, c.surname, c.name, c.patronymic, c.phone, c.birth_date, c.email,
    s.id, s.film_title, s.starts_at, s.ends_at,
    st.id, st.number
FROM tickets t
JOIN customers c ON c.id = t.customer_id
JOIN sessions s ON s.id = t.session_id
JOIN seats st ON st.id = t.seat_id
WHERE t.id = $1
`

type GetTicketDetailRow struct {
	ID           int64
	PurchasedAt  pgtype.Timestamptz
	DocumentPath pgtype.Text
	Email        string
	Customer     Customer
	Session      Session
	Seat         Seat
}

func (q *Queries) GetTicketDetail(ctx context.Context, db DBTX, id int64) (GetTicketDetailRow, error) {
	row := db.QueryRow(ctx, getTicketDetail, id)
	var i GetTicketDetailRow
	err := row.Scan(
		&i.ID,
		&i.PurchasedAt,
		&i.DocumentPath,
		&i.Email,
		&i.Customer.ID,
		&i.Customer.Surname,
		&i.Customer.Name,
		&i.Customer.Patronymic,
		&i.Customer.Phone,
		&i.Customer.BirthDate,
		&i.Customer.Email,
		&i.Session.ID,
		&i.Session.FilmTitle,
		&i.Session.StartsAt,
		&i.Session.EndsAt,
		&i.Seat.ID,
		&i.Seat.Number,
	)
	return i, err
}
