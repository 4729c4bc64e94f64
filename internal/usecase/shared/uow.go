package shared

import (
	"context"

	"cinema-ticketing/internal/domain/customer"
	"cinema-ticketing/internal/domain/seat"
	"cinema-ticketing/internal/domain/session"
	"cinema-ticketing/internal/domain/ticket"
	"cinema-ticketing/internal/infra/db"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Customers() CustomerRepository
	Tickets() TicketRepository
	Seats() SeatRepository
	Reads() CommandReads
	// OnRollback registers cleanup for side effects outside the database.
	// Hooks run when the attempt that registered them does not commit.
	OnRollback(fn func(ctx context.Context))
	DB() db.DBTX
}

type CommandReads interface {
	CustomerByID(ctx context.Context, id int64) (*customer.Customer, error)
	SessionByID(ctx context.Context, id int64) (*session.Session, error)
	SeatByNumber(ctx context.Context, number int) (*seat.Seat, error)
	TicketByID(ctx context.Context, id int64) (*ticket.Ticket, error)
	EmailOwnedByOther(ctx context.Context, email string, customerID int64) (bool, error)
	TicketExists(ctx context.Context, sessionID, seatID int64) (bool, error)
}

type CustomerRepository interface {
	UpdateEmail(ctx context.Context, tx db.DBTX, c *customer.Customer) error
}

type TicketRepository interface {
	// Create inserts the ticket and marks it persisted.
	Create(ctx context.Context, tx db.DBTX, t *ticket.Ticket) error
	AttachDocument(ctx context.Context, tx db.DBTX, t *ticket.Ticket) error
}

type SeatRepository interface {
	EnsureRange(ctx context.Context, tx db.DBTX, from, to int) (created, total int64, err error)
}
