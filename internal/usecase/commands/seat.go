package commands

import (
	"context"
	"log/slog"

	"cinema-ticketing/internal/domain/seat"
	"cinema-ticketing/internal/pkg/errs"
	"cinema-ticketing/internal/usecase/shared"
)

type EnsureSeatsResult struct {
	Created int64
	Total   int64
}

type SeatCommands interface {
	// EnsureSeats creates the missing seats numbered from..to. Existing
	// seats are left alone, so repeated runs are harmless.
	EnsureSeats(ctx context.Context, from, to int) (*EnsureSeatsResult, error)
}

type seatCommandsImpl struct {
	uow    shared.UnitOfWork
	logger *slog.Logger
}

func NewSeatCommands(uow shared.UnitOfWork, logger *slog.Logger) SeatCommands {
	return &seatCommandsImpl{uow: uow, logger: logger}
}

func (uc *seatCommandsImpl) EnsureSeats(ctx context.Context, from, to int) (*EnsureSeatsResult, error) {
	if from <= 0 || to < from {
		return nil, errs.Wrapf(seat.ErrInvalidSeatNumber, "range %d..%d", from, to)
	}

	var res EnsureSeatsResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, total, err := tx.Seats().EnsureRange(ctx, tx.DB(), from, to)
		if err != nil {
			return err
		}
		res = EnsureSeatsResult{Created: created, Total: total}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("seats ensured", "from", from, "to", to, "created", res.Created, "total", res.Total)
	return &res, nil
}
