// Package pgstore holds the SQL for every table, one method per statement.
// Methods take the executor explicitly so the same Queries value serves the
// pool and open transactions.
package pgstore

import "cinema-ticketing/internal/infra/db"

type Queries struct{}

func New() *Queries {
	return &Queries{}
}

type DBTX = db.DBTX
