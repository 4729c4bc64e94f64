package commands

import (
	"context"
	"log/slog"

	"cinema-ticketing/internal/domain/ticket"
	"cinema-ticketing/internal/infra"
	"cinema-ticketing/internal/pkg/errs"
	"cinema-ticketing/internal/usecase/shared"
)

var (
	ErrDocumentGeneration = errs.Kinded("failed to generate ticket document", errs.ErrGeneration)
	ErrTicketNotFound     = errs.Kinded("ticket not found", errs.ErrNotFound)
)

//go:generate mockgen -source=document.go -destination=../../../tests/mock/commands/document_mock.go -package=mock_commands
type DocumentCommands interface {
	// Regenerate renders and stores the document again and updates the
	// reference in one transaction.
	Regenerate(ctx context.Context, ticketID int64) (*ticket.Ticket, error)
}

type documentCommandsImpl struct {
	uow      shared.UnitOfWork
	pipeline *documentPipeline
}

func NewDocumentCommands(
	uow shared.UnitOfWork,
	renderer shared.DocumentRenderer,
	store shared.DocumentStore,
	logger *slog.Logger,
) DocumentCommands {
	return &documentCommandsImpl{
		uow:      uow,
		pipeline: newDocumentPipeline(renderer, store, logger),
	}
}

func (uc *documentCommandsImpl) Regenerate(ctx context.Context, ticketID int64) (*ticket.Ticket, error) {
	var out *ticket.Ticket
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := tx.Reads().TicketByID(ctx, ticketID)
		if err != nil {
			return lookupError(err, ErrTicketNotFound)
		}
		if err := uc.pipeline.generate(ctx, tx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// documentPipeline renders, stores and attaches a ticket document inside a
// caller's transaction. If that transaction does not commit, the stored file
// is removed again, or the previous version restored.
type documentPipeline struct {
	renderer shared.DocumentRenderer
	store    shared.DocumentStore
	logger   *slog.Logger
}

func newDocumentPipeline(renderer shared.DocumentRenderer, store shared.DocumentStore, logger *slog.Logger) *documentPipeline {
	return &documentPipeline{
		renderer: renderer,
		store:    store,
		logger:   logger,
	}
}

func (p *documentPipeline) generate(ctx context.Context, tx shared.Tx, t *ticket.Ticket) error {
	data, err := p.renderer.Render(ctx, t)
	if err != nil {
		return errs.Mark(errs.Wrapf(err, "render ticket %d", t.ID()), ErrDocumentGeneration)
	}

	previousRef := t.DocumentPath()
	var previous []byte
	if previousRef != "" {
		b, openErr := p.store.Open(ctx, previousRef)
		switch {
		case openErr == nil:
			previous = b
		case !errs.Is(openErr, shared.ErrDocumentMissing):
			// Without the old bytes a rollback could not put them back.
			return errs.Mark(errs.Wrapf(openErr, "read ticket %d document", t.ID()), ErrDocumentGeneration)
		}
	}

	ref, err := p.store.Save(ctx, t.DocumentName(), data)
	if err != nil {
		return errs.Mark(errs.Wrapf(err, "store ticket %d document", t.ID()), ErrDocumentGeneration)
	}
	tx.OnRollback(func(ctx context.Context) {
		p.discard(ctx, t.ID(), t.DocumentName(), ref, previousRef, previous)
	})

	t.AttachDocument(ref)
	if err := tx.Tickets().AttachDocument(ctx, tx.DB(), t); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrTicketNotFound)
		}
		return errs.Mark(errs.Wrapf(err, "attach ticket %d document", t.ID()), ErrDocumentGeneration)
	}

	p.logger.Info("ticket document stored", "ticket_id", t.ID(), "ref", ref, "bytes", len(data))
	return nil
}

func (p *documentPipeline) discard(ctx context.Context, ticketID int64, name, ref, previousRef string, previous []byte) {
	if previous != nil && previousRef == ref {
		if _, err := p.store.Save(ctx, name, previous); err != nil {
			p.logger.Error("failed to restore previous ticket document", "ticket_id", ticketID, "ref", ref, "error", err.Error())
		}
		return
	}
	if err := p.store.Delete(ctx, ref); err != nil {
		p.logger.Error("failed to remove orphaned ticket document", "ticket_id", ticketID, "ref", ref, "error", err.Error())
		return
	}
	p.logger.Info("orphaned ticket document removed", "ticket_id", ticketID, "ref", ref)
}

// lookupError marks a repository not-found with the given sentinel.
func lookupError(err error, notFound error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, notFound)
	}
	return errs.Wrap(err, "lookup failed")
}
