package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"cinema-ticketing/internal/domain/customer"
	"cinema-ticketing/internal/domain/seat"
	"cinema-ticketing/internal/domain/session"
	"cinema-ticketing/internal/domain/ticket"
	"cinema-ticketing/internal/infra/pgstore"
	"cinema-ticketing/internal/infra/readstore"
	"cinema-ticketing/internal/infra/repository"
	"cinema-ticketing/internal/pkg/errs"
	"cinema-ticketing/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"

	maxRetries  = 3
	backoffBase = 100 * time.Millisecond
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

// Beginner is the part of *pgxpool.Pool the unit of work needs.
type Beginner interface {
	pgstore.DBTX
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type PostgresUoW struct {
	pool   Beginner
	q      *pgstore.Queries
	logger *slog.Logger
}

func NewPostgresUoW(pool *pgxpool.Pool, q *pgstore.Queries, logger *slog.Logger) shared.UnitOfWork {
	return newPostgresUoW(pool, q, logger)
}

func newPostgresUoW(pool Beginner, q *pgstore.Queries, logger *slog.Logger) *PostgresUoW {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUoW{
		pool:   pool,
		q:      q,
		logger: logger,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes;
// uniqueness is enforced by constraints, not isolation.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return newCommandReads(u.q, u.pool)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{
			dbtx: pgxTx,
			q:    u.q,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				u.logger.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}
		tx.runRollbackHooks(ctx)

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries && isRetryableError(err) {
				u.logger.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, backoffBase)

		u.logger.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errs.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx pgstore.DBTX
	q    *pgstore.Queries

	onRollback []func(ctx context.Context)

	// Lazy-initialized repositories
	customerRepo shared.CustomerRepository
	ticketRepo   shared.TicketRepository
	seatRepo     shared.SeatRepository
	commandReads shared.CommandReads
}

func (t *pgTx) DB() pgstore.DBTX {
	return t.dbtx
}

func (t *pgTx) OnRollback(fn func(ctx context.Context)) {
	t.onRollback = append(t.onRollback, fn)
}

// Hooks run newest first, on a context that survives request cancellation.
func (t *pgTx) runRollbackHooks(ctx context.Context) {
	cleanupCtx := context.WithoutCancel(ctx)
	for i := len(t.onRollback) - 1; i >= 0; i-- {
		t.onRollback[i](cleanupCtx)
	}
	t.onRollback = nil
}

func (t *pgTx) Customers() shared.CustomerRepository {
	if t.customerRepo == nil {
		t.customerRepo = repository.NewCustomerRepository(t.q)
	}
	return t.customerRepo
}

func (t *pgTx) Tickets() shared.TicketRepository {
	if t.ticketRepo == nil {
		t.ticketRepo = repository.NewTicketRepository(t.q)
	}
	return t.ticketRepo
}

func (t *pgTx) Seats() shared.SeatRepository {
	if t.seatRepo == nil {
		t.seatRepo = repository.NewSeatRepository(t.q)
	}
	return t.seatRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = newCommandReads(t.q, t.dbtx)
	}
	return t.commandReads
}

type commandReads struct {
	dbtx pgstore.DBTX

	customers *readstore.CustomerReadStore
	sessions  *readstore.SessionReadStore
	seats     *readstore.SeatReadStore
	tickets   *readstore.TicketReadStore
}

func newCommandReads(q *pgstore.Queries, dbtx pgstore.DBTX) *commandReads {
	return &commandReads{
		dbtx:      dbtx,
		customers: readstore.NewCustomerReadStore(q),
		sessions:  readstore.NewSessionReadStore(q),
		seats:     readstore.NewSeatReadStore(q),
		tickets:   readstore.NewTicketReadStore(q, dbtx),
	}
}

func (r *commandReads) CustomerByID(ctx context.Context, id int64) (*customer.Customer, error) {
	return r.customers.FindByID(ctx, r.dbtx, id)
}

func (r *commandReads) SessionByID(ctx context.Context, id int64) (*session.Session, error) {
	return r.sessions.FindByID(ctx, r.dbtx, id)
}

func (r *commandReads) SeatByNumber(ctx context.Context, number int) (*seat.Seat, error) {
	return r.seats.FindByNumber(ctx, r.dbtx, number)
}

func (r *commandReads) TicketByID(ctx context.Context, id int64) (*ticket.Ticket, error) {
	return r.tickets.FindDomainByID(ctx, r.dbtx, id)
}

func (r *commandReads) EmailOwnedByOther(ctx context.Context, email string, customerID int64) (bool, error) {
	return r.customers.EmailOwnedByOther(ctx, r.dbtx, email, customerID)
}

func (r *commandReads) TicketExists(ctx context.Context, sessionID, seatID int64) (bool, error) {
	return r.tickets.ExistsForSessionSeat(ctx, r.dbtx, sessionID, seatID)
}
