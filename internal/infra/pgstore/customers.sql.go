package pgstore

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getCustomerByID = `-- name: GetCustomerByID :one
SELECT id, surname, name, patronymic, phone, birth_date, email
FROM customers
WHERE id = $1
`

func (q *Queries) GetCustomerByID(ctx context.Context, db DBTX, id int64) (Customer, error) {
	row := db.QueryRow(ctx, getCustomerByID, id)
	var i Customer
	err := row.Scan(
		&i.ID,
		&i.Surname,
		&i.Name,
		&i.Patronymic,
		&i.Phone,
		&i.BirthDate,
		&i.Email,
	)
	return i, err
}

const findCustomerIDByEmailExcluding = `-- name: FindCustomerIDByEmailExcluding :one
SELECT id
FROM customers
WHERE email = $1 AND id <> $2
LIMIT 1
`

func (q *Queries) FindCustomerIDByEmailExcluding(ctx context.Context, db DBTX, email string, excludeID int64) (int64, error) {
	row := db.QueryRow(ctx, findCustomerIDByEmailExcluding, email, excludeID)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const updateCustomerEmail = `-- name: UpdateCustomerEmail :execrows
UPDATE customers
SET email = $2
WHERE id = $1
`

func (q *Queries) UpdateCustomerEmail(ctx context.Context, db DBTX, id int64, email pgtype.Text) (int64, error) {
	result, err := db.Exec(ctx, updateCustomerEmail, id, email)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
