package response

import (
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/internal/usecase/commands"
	"cinema-ticketing/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type PurchaseResponse struct {
	Message     string `json:"message"`
	TicketID    int64  `json:"ticket_id"`
	Client      string `json:"client"`
	Movie       string `json:"movie"`
	SessionTime string `json:"session_time"`
	Seat        int    `json:"seat"`
	PDFURL      string `json:"pdf_url"`
}

func FromPurchaseResult(r *commands.PurchaseResult, baseURL string) *PurchaseResponse {
	t := r.Ticket
	return &PurchaseResponse{
		Message:     r.Message(),
		TicketID:    t.ID(),
		Client:      t.Customer().FullName(),
		Movie:       t.Session().FilmTitle(),
		SessionTime: t.Session().StartsAt().Format(time.RFC3339),
		Seat:        t.Seat().Number(),
		PDFURL:      DocumentURL(baseURL, t.ID()),
	}
}

type TicketResponse struct {
	ID              int64     `json:"id"`
	CustomerID      int64     `json:"customer_id"`
	CustomerName    string    `json:"customer_name"`
	FilmTitle       string    `json:"film_title"`
	SessionStartsAt time.Time `json:"session_starts_at"`
	SessionEndsAt   time.Time `json:"session_ends_at"`
	SeatNumber      int       `json:"seat_number"`
	RecipientEmail  string    `json:"recipient_email"`
	PurchasedAt     time.Time `json:"purchased_at"`
	HasDocument     bool      `json:"has_document"`
	PDFURL          string    `json:"pdf_url,omitempty"`
}

func FromTicketView(v *queries.TicketView, baseURL string) (*TicketResponse, error) {
	var res TicketResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	res.HasDocument = v.HasDocument()
	if res.HasDocument {
		res.PDFURL = DocumentURL(baseURL, v.ID)
	}
	return &res, nil
}

func DocumentURL(baseURL string, ticketID int64) string {
	return fmt.Sprintf("%s/api/tickets/%d/pdf", strings.TrimRight(baseURL, "/"), ticketID)
}
