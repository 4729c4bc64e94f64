package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cinema-ticketing/internal/domain/ticket"
	"cinema-ticketing/internal/pkg/errs"
	"cinema-ticketing/internal/usecase/shared"
)

// TicketNotifier mails the ticket document. It reports success as a bool
// and never returns an error; every failure is logged.
type TicketNotifier interface {
	Notify(ctx context.Context, ticketID int64, recipient string) bool
}

type ticketNotifierImpl struct {
	uow       shared.UnitOfWork
	store     shared.DocumentStore
	documents DocumentCommands
	mailer    shared.Mailer
	logger    *slog.Logger
}

func NewTicketNotifier(
	uow shared.UnitOfWork,
	store shared.DocumentStore,
	documents DocumentCommands,
	mailer shared.Mailer,
	logger *slog.Logger,
) TicketNotifier {
	return &ticketNotifierImpl{
		uow:       uow,
		store:     store,
		documents: documents,
		mailer:    mailer,
		logger:    logger,
	}
}

func (n *ticketNotifierImpl) Notify(ctx context.Context, ticketID int64, recipient string) bool {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		n.logger.Warn("ticket mail skipped: no recipient", "ticket_id", ticketID)
		return false
	}

	t, err := n.uow.CommandReads().TicketByID(ctx, ticketID)
	if err != nil {
		n.logger.Error("ticket mail skipped: ticket lookup failed", "ticket_id", ticketID, "error", err.Error())
		return false
	}

	t, document, err := n.loadDocument(ctx, t)
	if err != nil {
		n.logger.Error("ticket mail skipped: document unavailable", "ticket_id", ticketID, "error", err.Error())
		return false
	}

	if err := n.mailer.Send(ctx, composeTicketMail(t, recipient, document)); err != nil {
		n.logger.Error("ticket mail failed", "ticket_id", ticketID, "to", recipient, "error", err.Error())
		return false
	}
	return true
}

// loadDocument returns the stored document, regenerating it once when the
// reference or the file is missing.
func (n *ticketNotifierImpl) loadDocument(ctx context.Context, t *ticket.Ticket) (*ticket.Ticket, []byte, error) {
	if t.HasDocument() {
		data, err := n.store.Open(ctx, t.DocumentPath())
		if err == nil {
			return t, data, nil
		}
		if !errs.Is(err, shared.ErrDocumentMissing) {
			return nil, nil, err
		}
	}

	n.logger.Warn("ticket document missing, regenerating before mail", "ticket_id", t.ID())
	regenerated, err := n.documents.Regenerate(ctx, t.ID())
	if err != nil {
		return nil, nil, errs.Wrap(err, "regeneration failed")
	}
	data, err := n.store.Open(ctx, regenerated.DocumentPath())
	if err != nil {
		return nil, nil, errs.Wrap(err, "regenerated document unreadable")
	}
	return regenerated, data, nil
}

func composeTicketMail(t *ticket.Ticket, recipient string, document []byte) shared.MailMessage {
	film := t.Session().FilmTitle()

	var body strings.Builder
	fmt.Fprintf(&body, "Hello, %s!\n\n", t.Customer().FullName())
	fmt.Fprintf(&body, "You have successfully purchased a ticket for \"%s\".\n\n", film)
	body.WriteString("Session details:\n")
	fmt.Fprintf(&body, "Date and time: %s\n", t.SessionTime())
	fmt.Fprintf(&body, "Seat: %d\n\n", t.Seat().Number())
	body.WriteString("Your e-ticket is attached to this email as a PDF.\n")
	body.WriteString("Please keep it or print it out and show it at the hall entrance.\n\n")
	body.WriteString("Enjoy the show!\n\nBest regards,\nYour Cinema\n")

	return shared.MailMessage{
		To:             recipient,
		Subject:        fmt.Sprintf("Your cinema ticket: %s (ticket #%d)", film, t.ID()),
		Body:           body.String(),
		AttachmentName: t.DocumentName(),
		Attachment:     document,
	}
}
