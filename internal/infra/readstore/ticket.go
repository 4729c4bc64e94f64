package readstore

import (
	"context"

	"cinema-ticketing/internal/domain/ticket"
	"cinema-ticketing/internal/infra"
	"cinema-ticketing/internal/infra/converter"
	"cinema-ticketing/internal/infra/pgstore"
	"cinema-ticketing/internal/pkg/pgconv"
	"cinema-ticketing/internal/usecase/queries"
)

type TicketReadQueries interface {
	GetTicketDetail(ctx context.Context, db pgstore.DBTX, id int64) (pgstore.GetTicketDetailRow, error)
	TicketExistsForSessionSeat(ctx context.Context, db pgstore.DBTX, sessionID, seatID int64) (bool, error)
}

type TicketReadStore struct {
	queries TicketReadQueries
	db      pgstore.DBTX
}

func NewTicketReadStore(queries TicketReadQueries, db pgstore.DBTX) *TicketReadStore {
	return &TicketReadStore{
		queries: queries,
		db:      db,
	}
}

// FindByID serves the query side.
func (r *TicketReadStore) FindByID(ctx context.Context, id int64) (*queries.TicketView, error) {
	row, err := r.detail(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return converter.TicketDetailToView(row), nil
}

// FindDomainByID loads the ticket with everything rendering needs.
func (r *TicketReadStore) FindDomainByID(ctx context.Context, db pgstore.DBTX, id int64) (*ticket.Ticket, error) {
	row, err := r.detail(ctx, db, id)
	if err != nil {
		return nil, err
	}
	t, err := converter.TicketDetailToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("stored ticket is inconsistent", err, infra.KindDBFailure)
	}
	return t, nil
}

func (r *TicketReadStore) ExistsForSessionSeat(ctx context.Context, db pgstore.DBTX, sessionID, seatID int64) (bool, error) {
	exists, err := r.queries.TicketExistsForSessionSeat(ctx, db, sessionID, seatID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check seat availability", err)
	}
	return exists, nil
}

func (r *TicketReadStore) detail(ctx context.Context, db pgstore.DBTX, id int64) (pgstore.GetTicketDetailRow, error) {
	row, err := r.queries.GetTicketDetail(ctx, db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return row, infra.WrapRepoErr("ticket not found", err, infra.KindNotFound)
		}
		return row, infra.WrapRepoErr("failed to find ticket by ID", err)
	}
	return row, nil
}
