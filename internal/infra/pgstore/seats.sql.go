package pgstore

import (
	"context"
)

const getSeatByNumber = `-- name: GetSeatByNumber :one
SELECT id, number
FROM seats
WHERE number = $1
`

func (q *Queries) GetSeatByNumber(ctx context.Context, db DBTX, number int32) (Seat, error) {
	row := db.QueryRow(ctx, getSeatByNumber, number)
	var i Seat
	err := row.Scan(&i.ID, &i.Number)
	return i, err
}

const insertSeatIfMissing = `-- name: InsertSeatIfMissing :execrows
INSERT INTO seats (number)
VALUES ($1)
ON CONFLICT (number) DO NOTHING
`

func (q *Queries) InsertSeatIfMissing(ctx context.Context, db DBTX, number int32) (int64, error) {
	result, err := db.Exec(ctx, insertSeatIfMissing, number)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const countSeats = `-- name: CountSeats :one
SELECT count(*) FROM seats
`

func (q *Queries) CountSeats(ctx context.Context, db DBTX) (int64, error) {
	row := db.QueryRow(ctx, countSeats)
	var count int64
	err := row.Scan(&count)
	return count, err
}
