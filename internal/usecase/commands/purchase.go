package commands

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"cinema-ticketing/internal/domain/customer"
	"cinema-ticketing/internal/domain/ticket"
	"cinema-ticketing/internal/infra"
	"cinema-ticketing/internal/pkg/errs"
	"cinema-ticketing/internal/usecase/shared"

	"github.com/go-playground/validator/v10"
)

var (
	ErrCustomerNotFound  = errs.Kinded("customer not found", errs.ErrNotFound)
	ErrSessionNotFound   = errs.Kinded("session not found", errs.ErrNotFound)
	ErrSeatNotFound      = errs.Kinded("seat not found", errs.ErrNotFound)
	ErrEmailTaken        = errs.Kinded("email is already used by another customer", errs.ErrConflict)
	ErrSeatTaken         = errs.Kinded("seat is already taken for this session", errs.ErrConflict)
	ErrIntegrityConflict = errs.Kinded("data integrity conflict", errs.ErrConflict)
)

// Constraint names from migrations/001_initial_schema.sql.
const (
	constraintSessionSeat   = "tickets_session_seat_key"
	constraintCustomerEmail = "customers_email_key"
)

type PurchaseInput struct {
	CustomerID int64  `json:"client_id" validate:"required"`
	SessionID  int64  `json:"session_id" validate:"required"`
	SeatNumber int    `json:"seat_number" validate:"required,gt=0"`
	Email      string `json:"client_email" validate:"required,email,max=254"`
}

// ValidationError lists offending fields by their wire names.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == errs.ErrValidation }

type PurchaseResult struct {
	Ticket            *ticket.Ticket
	DocumentGenerated bool
	EmailSent         bool
}

// Message summarizes the outcome for the client.
func (r *PurchaseResult) Message() string {
	msg := "Ticket purchased successfully."
	if r.DocumentGenerated {
		msg += " PDF generated."
	}
	if r.EmailSent {
		msg += fmt.Sprintf(" A copy was sent to %s.", r.Ticket.RecipientEmail().Value())
	} else {
		msg += " Could not send a copy by email."
	}
	return msg
}

//go:generate mockgen -source=purchase.go -destination=../../../tests/mock/commands/purchase_mock.go -package=mock_commands
type PurchaseCommands interface {
	Purchase(ctx context.Context, in PurchaseInput) (*PurchaseResult, error)
}

type purchaseCommandsImpl struct {
	uow      shared.UnitOfWork
	pipeline *documentPipeline
	notifier TicketNotifier
	validate *validator.Validate
	logger   *slog.Logger
}

func NewPurchaseCommands(
	uow shared.UnitOfWork,
	renderer shared.DocumentRenderer,
	store shared.DocumentStore,
	notifier TicketNotifier,
	logger *slog.Logger,
) PurchaseCommands {
	return &purchaseCommandsImpl{
		uow:      uow,
		pipeline: newDocumentPipeline(renderer, store, logger),
		notifier: notifier,
		validate: newInputValidator(),
		logger:   logger,
	}
}

func newInputValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Purchase runs the whole sale in one transaction: email reconciliation,
// ticket insert and document generation commit together or not at all.
// Mail goes out only after commit and never fails the purchase.
func (uc *purchaseCommandsImpl) Purchase(ctx context.Context, in PurchaseInput) (*PurchaseResult, error) {
	if err := uc.validateInput(in); err != nil {
		return nil, err
	}
	recipient, err := customer.NewEmail(in.Email)
	if err != nil {
		return nil, &ValidationError{Invalid: []string{"client_email"}}
	}

	var t *ticket.Ticket
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t = nil
		reads := tx.Reads()

		c, err := reads.CustomerByID(ctx, in.CustomerID)
		if err != nil {
			return lookupError(err, ErrCustomerNotFound)
		}
		s, err := reads.SessionByID(ctx, in.SessionID)
		if err != nil {
			return lookupError(err, ErrSessionNotFound)
		}
		st, err := reads.SeatByNumber(ctx, in.SeatNumber)
		if err != nil {
			return lookupError(err, ErrSeatNotFound)
		}

		if c.NeedsEmailUpdate(recipient) {
			taken, err := reads.EmailOwnedByOther(ctx, recipient.Value(), c.ID())
			if err != nil {
				return errs.Wrap(err, "email ownership check failed")
			}
			if taken {
				return ErrEmailTaken
			}
			c.ChangeEmail(recipient)
			if err := tx.Customers().UpdateEmail(ctx, tx.DB(), c); err != nil {
				return err
			}
		}

		exists, err := reads.TicketExists(ctx, s.ID(), st.ID())
		if err != nil {
			return errs.Wrap(err, "seat availability check failed")
		}
		if exists {
			return ErrSeatTaken
		}

		created := ticket.New(c, s, st, recipient)
		if err := tx.Tickets().Create(ctx, tx.DB(), created); err != nil {
			return err
		}
		if err := uc.pipeline.generate(ctx, tx, created); err != nil {
			return err
		}
		t = created
		return nil
	})
	if err != nil {
		err = classifyWriteError(err)
		uc.logger.Warn("ticket purchase failed",
			"customer_id", in.CustomerID,
			"session_id", in.SessionID,
			"seat_number", in.SeatNumber,
			"error", err.Error())
		return nil, err
	}

	uc.logger.Info("ticket purchased",
		"ticket_id", t.ID(),
		"customer_id", in.CustomerID,
		"session_id", in.SessionID,
		"seat_number", in.SeatNumber)

	sent := uc.notifier.Notify(ctx, t.ID(), recipient.Value())
	return &PurchaseResult{
		Ticket:            t,
		DocumentGenerated: t.HasDocument(),
		EmailSent:         sent,
	}, nil
}

func (uc *purchaseCommandsImpl) validateInput(in PurchaseInput) error {
	err := uc.validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errs.As(err, &fieldErrs) {
		return errs.Mark(err, errs.ErrValidation)
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			verr.Missing = append(verr.Missing, fe.Field())
		} else {
			verr.Invalid = append(verr.Invalid, fe.Field())
		}
	}
	return verr
}

// classifyWriteError turns constraint violations raised at insert or commit
// time into the same conflicts the pre-checks report. The constraint name
// decides, never the message text.
func classifyWriteError(err error) error {
	if errs.CategoryOf(err) != nil {
		return err
	}
	constraint, ok := infra.IsIntegrityViolation(err)
	if !ok {
		return err
	}
	switch constraint {
	case constraintSessionSeat:
		return errs.Mark(err, ErrSeatTaken)
	case constraintCustomerEmail:
		return errs.Mark(err, ErrEmailTaken)
	default:
		return errs.Mark(err, ErrIntegrityConflict)
	}
}
