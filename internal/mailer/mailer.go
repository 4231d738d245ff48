// Package mailer отправляет письма участникам через SMTP.
package mailer

//go:generate mockgen -source=mailer.go -destination=mocks/mocks.go -package=mocks Sender

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Message одно исходящее письмо
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender отправляет одно письмо одному получателю
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig параметры подключения к SMTP серверу
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender реализует Sender через go-mail.
// Соединение открывается на каждое письмо, чтобы отказ одного получателя не ломал остальных.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender создает SMTPSender; пустой хост означает что отправка не настроена
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is not configured")
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &SMTPSender{cfg: cfg}, nil
}

// Send отправляет письмо
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

func (s *SMTPSender) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return opts
}
