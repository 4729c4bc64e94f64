package request

import "cinema-ticketing/internal/usecase/commands"

// PurchaseTicketRequest carries no binding rules; the purchase command
// validates every field and reports all missing ones at once.
type PurchaseTicketRequest struct {
	ClientID    int64  `json:"client_id" example:"1"`
	SessionID   int64  `json:"session_id" example:"1"`
	SeatNumber  int    `json:"seat_number" example:"5"`
	ClientEmail string `json:"client_email" example:"a@b.com"`
}

func (r *PurchaseTicketRequest) ToInput() commands.PurchaseInput {
	return commands.PurchaseInput{
		CustomerID: r.ClientID,
		SessionID:  r.SessionID,
		SeatNumber: r.SeatNumber,
		Email:      r.ClientEmail,
	}
}
