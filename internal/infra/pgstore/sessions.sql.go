package pgstore

import (
	"context"
)

const getSessionByID = `-- name: GetSessionByID :one
SELECT id, film_title, starts_at, ends_at
FROM sessions
WHERE id = $1
`

func (q *Queries) GetSessionByID(ctx context.Context, db DBTX, id int64) (Session, error) {
	row := db.QueryRow(ctx, getSessionByID, id)
	var i Session
	err := row.Scan(
		&i.ID,
		&i.FilmTitle,
		&i.StartsAt,
		&i.EndsAt,
	)
	return i, err
}
