package repository

import (
	"context"

	"cinema-ticketing/internal/infra"
	"cinema-ticketing/internal/infra/pgstore"
)

type SeatWriteQueries interface {
	InsertSeatIfMissing(ctx context.Context, db pgstore.DBTX, number int32) (int64, error)
	CountSeats(ctx context.Context, db pgstore.DBTX) (int64, error)
}

type SeatRepository struct {
	queries SeatWriteQueries
}

func NewSeatRepository(queries SeatWriteQueries) *SeatRepository {
	return &SeatRepository{queries: queries}
}

// EnsureRange inserts any missing seats numbered from..to inclusive.
func (r *SeatRepository) EnsureRange(ctx context.Context, tx pgstore.DBTX, from, to int) (created, total int64, err error) {
	for n := from; n <= to; n++ {
		// #nosec G115 -- seat numbers are validated positive and small
		inserted, err := r.queries.InsertSeatIfMissing(ctx, tx, int32(n))
		if err != nil {
			return created, 0, infra.WrapRepoErr("failed to insert seat", err)
		}
		created += inserted
	}

	total, err = r.queries.CountSeats(ctx, tx)
	if err != nil {
		return created, 0, infra.WrapRepoErr("failed to count seats", err)
	}
	return created, total, nil
}
