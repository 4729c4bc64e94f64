package components

import (
	"cinema-ticketing/internal/handler"
	"cinema-ticketing/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewTicketHandler,
	),
	fx.Invoke(handler.NewRouter),
)
