//go:build unit

package ticket_test

import (
	"testing"
	"time"

	"cinema-ticketing/internal/domain/ticket"
	"cinema-ticketing/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestTicket(t *testing.T) {
	t.Run("new ticket is unsaved until marked persisted", func(t *testing.T) {
		tk := builder.NewTicketBuilder().BuildNew()
		assert.False(t, tk.IsPersisted())
		assert.False(t, tk.HasDocument())

		purchasedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		tk.MarkPersisted(9, purchasedAt)
		assert.True(t, tk.IsPersisted())
		assert.Equal(t, int64(9), tk.ID())
		assert.Equal(t, purchasedAt, tk.PurchasedAt())

		tk.AttachDocument("tickets/ticket_9.pdf")
		assert.True(t, tk.HasDocument())
		assert.Equal(t, "ticket_9.pdf", tk.DocumentName())
	})

	t.Run("recipient email is independent of the customer", func(t *testing.T) {
		tk := builder.NewTicketBuilder().
			WithCustomerEmail("old@example.com").
			WithRecipientEmail("new@example.com").
			BuildDomain()
		assert.Equal(t, "new@example.com", tk.RecipientEmail().Value())
		assert.Equal(t, "old@example.com", tk.Customer().Email().Value())
	})

	t.Run("qr payload", func(t *testing.T) {
		tk := builder.NewTicketBuilder().BuildDomain()
		want := "Ticket #: 42\n" +
			"Film: Solaris\n" +
			"Session: 14.03.2026 19:30\n" +
			"Seat: 5\n" +
			"Customer: Ivanov Ivan Ivanovich"
		if diff := cmp.Diff(want, tk.QRPayload()); diff != "" {
			t.Errorf("QR payload mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("barcode payload", func(t *testing.T) {
		tk := builder.NewTicketBuilder().WithTicketID(1234).BuildDomain()
		assert.Equal(t, "TICKET-1234", tk.BarcodePayload())
	})

	t.Run("document name", func(t *testing.T) {
		assert.Equal(t, "ticket_7.pdf", ticket.DocumentName(7))
	})
}
