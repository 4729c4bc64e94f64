package pgstore

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Customer struct {
	ID         int64
	Surname    string
	Name       string
	Patronymic pgtype.Text
	Phone      string
	BirthDate  pgtype.Date
	Email      pgtype.Text
}

type Session struct {
	ID        int64
	FilmTitle string
	StartsAt  pgtype.Timestamptz
	EndsAt    pgtype.Timestamptz
}

type Seat struct {
	ID     int64
	Number int32
}

type Ticket struct {
	ID           int64
	CustomerID   int64
	SessionID    int64
	SeatID       int64
	PurchasedAt  pgtype.Timestamptz
	DocumentPath pgtype.Text
	Email        string
}
