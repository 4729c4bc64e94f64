package queries

import (
	"context"
	"time"

	"cinema-ticketing/internal/domain/ticket"
	"cinema-ticketing/internal/infra"
	"cinema-ticketing/internal/pkg/errs"
	"cinema-ticketing/internal/usecase/shared"
)

var (
	ErrTicketNotFound   = errs.Kinded("ticket not found", errs.ErrNotFound)
	ErrDocumentNotFound = errs.Kinded("ticket document not found", errs.ErrNotFound)
)

// Read models (DTO for read side)
type TicketView struct {
	ID              int64     `json:"id"`
	CustomerID      int64     `json:"customer_id"`
	CustomerName    string    `json:"customer_name"`
	FilmTitle       string    `json:"film_title"`
	SessionStartsAt time.Time `json:"session_starts_at"`
	SessionEndsAt   time.Time `json:"session_ends_at"`
	SeatNumber      int       `json:"seat_number"`
	RecipientEmail  string    `json:"recipient_email"`
	PurchasedAt     time.Time `json:"purchased_at"`
	DocumentPath    string    `json:"document_path"`
}

func (v *TicketView) HasDocument() bool {
	return v.DocumentPath != ""
}

type DocumentFile struct {
	Name    string
	Content []byte
}

//go:generate mockgen -source=ticket.go -destination=../../../tests/mock/queries/ticket_mock.go -package=mock_queries
type TicketReadStore interface {
	FindByID(ctx context.Context, id int64) (*TicketView, error)
}

type TicketQueries interface {
	GetByID(ctx context.Context, id int64) (*TicketView, error)
	Document(ctx context.Context, id int64) (*DocumentFile, error)
}

type ticketQueriesImpl struct {
	readStore TicketReadStore
	documents shared.DocumentStore
}

func NewTicketQueries(readStore TicketReadStore, documents shared.DocumentStore) TicketQueries {
	return &ticketQueriesImpl{
		readStore: readStore,
		documents: documents,
	}
}

func (q *ticketQueriesImpl) GetByID(ctx context.Context, id int64) (*TicketView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrTicketNotFound)
		}
		return nil, errs.Wrap(err, "failed to load ticket")
	}
	return view, nil
}

// Document returns the stored bytes. A ticket without a reference and a
// reference whose file is gone both yield ErrDocumentNotFound.
func (q *ticketQueriesImpl) Document(ctx context.Context, id int64) (*DocumentFile, error) {
	view, err := q.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !view.HasDocument() {
		return nil, ErrDocumentNotFound
	}

	content, err := q.documents.Open(ctx, view.DocumentPath)
	if err != nil {
		if errs.Is(err, shared.ErrDocumentMissing) {
			return nil, errs.Mark(err, ErrDocumentNotFound)
		}
		return nil, errs.Wrap(err, "failed to open ticket document")
	}

	return &DocumentFile{
		Name:    ticket.DocumentName(view.ID),
		Content: content,
	}, nil
}
