package ticket

import (
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/internal/domain/customer"
	"cinema-ticketing/internal/domain/seat"
	"cinema-ticketing/internal/domain/session"
	"cinema-ticketing/internal/pkg/errs"
)

const DocumentDir = "tickets"

var ErrNotPersisted = errs.New("ticket has no id yet")

// Ticket binds one customer to one seat on one session. After creation only
// the document reference changes.
type Ticket struct {
	id           int64
	customer     *customer.Customer
	session      *session.Session
	seat         *seat.Seat
	email        customer.Email
	purchasedAt  time.Time
	documentPath string
}

// New builds an unsaved ticket. The recipient email is captured as given and
// does not follow later customer changes.
func New(c *customer.Customer, s *session.Session, st *seat.Seat, recipient customer.Email) *Ticket {
	return &Ticket{
		customer: c,
		session:  s,
		seat:     st,
		email:    recipient,
	}
}

func Reconstruct(
	id int64,
	c *customer.Customer,
	s *session.Session,
	st *seat.Seat,
	recipient customer.Email,
	purchasedAt time.Time,
	documentPath string,
) *Ticket {
	return &Ticket{
		id:           id,
		customer:     c,
		session:      s,
		seat:         st,
		email:        recipient,
		purchasedAt:  purchasedAt,
		documentPath: documentPath,
	}
}

func (t *Ticket) ID() int64                    { return t.id }
func (t *Ticket) Customer() *customer.Customer { return t.customer }
func (t *Ticket) Session() *session.Session    { return t.session }
func (t *Ticket) Seat() *seat.Seat             { return t.seat }
func (t *Ticket) RecipientEmail() customer.Email {
	return t.email
}
func (t *Ticket) PurchasedAt() time.Time { return t.purchasedAt }
func (t *Ticket) DocumentPath() string   { return t.documentPath }
func (t *Ticket) HasDocument() bool      { return t.documentPath != "" }
func (t *Ticket) IsPersisted() bool      { return t.id > 0 }

// MarkPersisted records the storage-assigned id and purchase time.
func (t *Ticket) MarkPersisted(id int64, purchasedAt time.Time) {
	t.id = id
	t.purchasedAt = purchasedAt
}

func (t *Ticket) AttachDocument(path string) {
	t.documentPath = path
}

// DocumentName is the stored file name, keyed by ticket id.
func (t *Ticket) DocumentName() string {
	return DocumentName(t.id)
}

func DocumentName(id int64) string {
	return fmt.Sprintf("ticket_%d.pdf", id)
}

func (t *Ticket) SessionTime() string {
	return t.session.StartsAt().Format(session.StartLayout)
}

// QRPayload is the human-readable summary encoded into the QR code.
func (t *Ticket) QRPayload() string {
	return strings.Join([]string{
		fmt.Sprintf("Ticket #: %d", t.id),
		fmt.Sprintf("Film: %s", t.session.FilmTitle()),
		fmt.Sprintf("Session: %s", t.SessionTime()),
		fmt.Sprintf("Seat: %d", t.seat.Number()),
		fmt.Sprintf("Customer: %s", t.customer.FullName()),
	}, "\n")
}

// BarcodePayload identifies the ticket in Code 128, so only ASCII survives.
func (t *Ticket) BarcodePayload() string {
	return asciiOnly(fmt.Sprintf("TICKET-%d", t.id))
}

func asciiOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
