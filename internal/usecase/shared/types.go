package shared

import (
	"context"

	"cinema-ticketing/internal/domain/ticket"
	"cinema-ticketing/internal/pkg/errs"
)

// ErrDocumentMissing is returned by a DocumentStore for an unknown reference.
var ErrDocumentMissing = errs.Kinded("document file not found", errs.ErrNotFound)

type DocumentRenderer interface {
	Render(ctx context.Context, t *ticket.Ticket) ([]byte, error)
}

// DocumentStore persists rendered documents. References returned by Save are
// what gets stored on the ticket.
type DocumentStore interface {
	Save(ctx context.Context, name string, data []byte) (ref string, err error)
	Open(ctx context.Context, ref string) ([]byte, error)
	Exists(ctx context.Context, ref string) (bool, error)
	Delete(ctx context.Context, ref string) error
}

type MailMessage struct {
	To             string
	Subject        string
	Body           string
	AttachmentName string
	Attachment     []byte
}

type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}
