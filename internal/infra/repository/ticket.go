package repository

import (
	"context"

	"cinema-ticketing/internal/domain/ticket"
	"cinema-ticketing/internal/infra"
	"cinema-ticketing/internal/infra/pgstore"
	"cinema-ticketing/internal/pkg/errs"
	"cinema-ticketing/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type TicketWriteQueries interface {
	CreateTicket(ctx context.Context, db pgstore.DBTX, arg pgstore.CreateTicketParams) (pgstore.CreateTicketRow, error)
	SetTicketDocument(ctx context.Context, db pgstore.DBTX, id int64, documentPath pgtype.Text) (int64, error)
}

type TicketRepository struct {
	queries TicketWriteQueries
}

func NewTicketRepository(queries TicketWriteQueries) *TicketRepository {
	return &TicketRepository{queries: queries}
}

func (r *TicketRepository) Create(ctx context.Context, tx pgstore.DBTX, t *ticket.Ticket) error {
	row, err := r.queries.CreateTicket(ctx, tx, pgstore.CreateTicketParams{
		CustomerID: t.Customer().ID(),
		SessionID:  t.Session().ID(),
		SeatID:     t.Seat().ID(),
		Email:      t.RecipientEmail().Value(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to create ticket", err)
	}

	t.MarkPersisted(row.ID, pgconv.TimeFromPgtype(row.PurchasedAt))
	return nil
}

func (r *TicketRepository) AttachDocument(ctx context.Context, tx pgstore.DBTX, t *ticket.Ticket) error {
	if !t.IsPersisted() {
		return infra.WrapRepoErr("failed to attach document", ticket.ErrNotPersisted)
	}
	n, err := r.queries.SetTicketDocument(ctx, tx, t.ID(), pgconv.OptionalStringToPgtype(t.DocumentPath()))
	if err != nil {
		return infra.WrapRepoErr("failed to attach ticket document", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("ticket not found", errs.Newf("ticket %d", t.ID()), infra.KindNotFound)
	}
	return nil
}
