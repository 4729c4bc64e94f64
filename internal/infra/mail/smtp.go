package mail

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"cinema-ticketing/internal/pkg/config"
	"cinema-ticketing/internal/pkg/errs"
	"cinema-ticketing/internal/usecase/shared"

	"gopkg.in/gomail.v2"
)

var ErrNoRecipient = errs.New("mail recipient is empty")

// Dialer opens one SMTP connection per call.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	dialer Dialer
	from   string
	logger *slog.Logger
}

func NewSMTPMailer(cfg config.Config, logger *slog.Logger) *SMTPMailer {
	d := gomail.NewDialer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password)
	return newSMTPMailer(d, cfg.Mail.From, logger)
}

func newSMTPMailer(d Dialer, from string, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: d,
		from:   from,
		logger: logger,
	}
}

// Send blocks until the server accepts or rejects the message. gomail has no
// context support, so cancellation is only checked before dialing.
func (m *SMTPMailer) Send(ctx context.Context, msg shared.MailMessage) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	if len(msg.Attachment) > 0 {
		attachment := msg.Attachment
		gm.Attach(msg.AttachmentName,
			gomail.Rename(msg.AttachmentName),
			gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(attachment))
				return err
			}))
	}

	if err := m.dialer.DialAndSend(gm); err != nil {
		return errs.Mark(errs.Wrapf(err, "failed to send mail to %s", msg.To), errs.ErrTransport)
	}
	m.logger.Info("mail sent", "to", msg.To, "subject", msg.Subject)
	return nil
}
