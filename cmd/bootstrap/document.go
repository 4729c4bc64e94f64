package bootstrap

import (
	"cinema-ticketing/internal/infra/document"
	"cinema-ticketing/internal/infra/mail"
	"cinema-ticketing/internal/usecase/shared"

	"go.uber.org/fx"
)

var DocumentModule = fx.Module("document",
	fx.Provide(
		document.NewQRGenerator,
		document.NewBarcodeGenerator,
		fx.Annotate(
			document.NewRenderer,
			fx.As(new(shared.DocumentRenderer)),
		),
	),
)

var MailModule = fx.Module("mail",
	fx.Provide(
		fx.Annotate(
			mail.NewSMTPMailer,
			fx.As(new(shared.Mailer)),
		),
	),
)
