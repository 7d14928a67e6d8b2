package newsletter

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/ayush/vibrant-blog/internal/logger"
)

// Welcome mail sent to every new subscriber.
const (
	WelcomeSubject = "Welcome to Vibrant Blog!"
	WelcomeBody    = "Welcome to the Vibrant Blog! Thanks for subscribing."
)

const smtpTimeout = 15 * time.Second

// SMTPMailer sends plain-text mail through an authenticated SMTP relay.
// A go-mail Client holds a single connection, so Send builds a fresh one per
// message and SMTPMailer itself is safe for concurrent use.
type SMTPMailer struct {
	host string
	opts []mail.Option
	from string
}

// NewSMTPMailer builds a mailer that authenticates as user and sends from that address.
func NewSMTPMailer(host string, port int, user, password string) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(user),
		mail.WithPassword(password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(smtpTimeout),
	}
	if _, err := mail.NewClient(host, opts...); err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{host: host, opts: opts, from: user}, nil
}

// Send delivers one message and blocks until the relay accepts or rejects it.
// The connection is closed on every path, including a rejected transaction.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg, err := buildMessage(m.from, to, subject, body)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(m.host, m.opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("dial smtp %s: %w", m.host, err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Log.Debugw("smtp close failed", "host", m.host, "err", err)
		}
	}()

	if err := client.Send(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}
