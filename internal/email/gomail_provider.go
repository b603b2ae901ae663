package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// GomailProvider отправляет письма по SMTP через gomail
type GomailProvider struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
}

func NewGomailProvider(host string, port int, username, password, fromEmail, fromName string) *GomailProvider {
	return &GomailProvider{
		dialer:    gomail.NewDialer(host, port, username, password),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (p *GomailProvider) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.fromEmail, p.fromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)

	if msg.HTML != "" {
		m.SetBody("text/html", msg.HTML)
		if msg.Text != "" {
			m.AddAlternative("text/plain", msg.Text)
		}
	} else {
		m.SetBody("text/plain", msg.Text)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}
	return nil
}
