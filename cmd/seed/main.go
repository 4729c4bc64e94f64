// seed makes sure the hall has seats numbered --from..--to. Existing seats
// are left alone, so it is safe to run repeatedly.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cinema-ticketing/cmd/bootstrap"
	"cinema-ticketing/cmd/bootstrap/components"
	"cinema-ticketing/internal/usecase/commands"

	"github.com/spf13/pflag"
	"go.uber.org/fx"
)

const seedTimeout = time.Minute

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var from, to int

	flagSet := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	flagSet.IntVar(&from, "from", 1, "first seat number")
	flagSet.IntVar(&to, "to", 100, "last seat number")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	var seats commands.SeatCommands
	var logger *slog.Logger
	app := fx.New(
		fx.NopLogger,
		bootstrap.ConfigModule,
		bootstrap.LoggerModule,
		bootstrap.DBModule,
		components.PersistenceModule,
		fx.Provide(commands.NewSeatCommands),
		fx.Populate(&seats, &logger),
	)

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := app.Stop(context.Background()); err != nil {
			logger.Warn("failed to stop seed application", "error", err)
		}
	}()

	result, err := seats.EnsureSeats(ctx, from, to)
	if err != nil {
		return err
	}

	fmt.Printf("seats %d..%d: created %d, total %d\n", from, to, result.Created, result.Total)
	return nil
}
