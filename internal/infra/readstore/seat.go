package readstore

import (
	"context"

	"cinema-ticketing/internal/domain/seat"
	"cinema-ticketing/internal/infra"
	"cinema-ticketing/internal/infra/converter"
	"cinema-ticketing/internal/infra/pgstore"
	"cinema-ticketing/internal/pkg/pgconv"
)

type SeatReadQueries interface {
	GetSeatByNumber(ctx context.Context, db pgstore.DBTX, number int32) (pgstore.Seat, error)
}

type SeatReadStore struct {
	queries SeatReadQueries
}

func NewSeatReadStore(queries SeatReadQueries) *SeatReadStore {
	return &SeatReadStore{queries: queries}
}

func (r *SeatReadStore) FindByNumber(ctx context.Context, db pgstore.DBTX, number int) (*seat.Seat, error) {
	// #nosec G115 -- seat numbers are validated positive before lookup
	row, err := r.queries.GetSeatByNumber(ctx, db, int32(number))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("seat not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find seat by number", err)
	}
	s, err := converter.SeatToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("stored seat is inconsistent", err, infra.KindDBFailure)
	}
	return s, nil
}
