package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/PierreClouet/WorkEat/internal/core/ports"
)

// Config captures the outbound SMTP account. Username and Password are
// supplied via environment and must never be logged or echoed.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer implements ports.Mailer over an authenticated SMTP connection.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

func NewSMTPMailer(cfg Config) (*SMTPMailer, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.From}, nil
}

// SendWelcome delivers the account-created notification.
func (m *SMTPMailer) SendWelcome(ctx context.Context, msg ports.WelcomeEmail) error {
	mail := gomail.NewMsg()
	if err := mail.From(m.from); err != nil {
		return fmt.Errorf("welcome mail from: %w", err)
	}
	if err := mail.To(msg.To); err != nil {
		return fmt.Errorf("welcome mail to: %w", err)
	}

	mail.Subject("WorkEat - Votre compte a été créé !")
	mail.SetBodyString(gomail.TypeTextPlain,
		fmt.Sprintf("Hello %s ! Ton compte a bien été créé ! (login avec l'email %s)", msg.Surname, msg.To))
	mail.AddAlternativeString(gomail.TypeTextHTML,
		fmt.Sprintf("Hello <b>%s</b> ! Ton compte a bien été créé !<br/><br/><p>Tu peux donc te connecter avec l'email %s ! ;)</p>", msg.Surname, msg.To))

	if err := m.client.DialAndSendWithContext(ctx, mail); err != nil {
		return fmt.Errorf("send welcome mail: %w", err)
	}
	return nil
}
