package components

import (
	"cinema-ticketing/internal/usecase/commands"
	"cinema-ticketing/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	commandsModule,
	queriesModule,
)

var commandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewDocumentCommands,
		commands.NewTicketNotifier,
		commands.NewPurchaseCommands,
		commands.NewSeatCommands,
	),
)

var queriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewTicketQueries,
	),
)
