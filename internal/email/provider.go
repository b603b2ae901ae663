package email

import "context"

// Provider - отправка писем. Реализации: SMTP через gomail, noop для тестов.
type Provider interface {
	Send(ctx context.Context, msg *Message) error
}

// NoopProvider ничего не отправляет. Используется в тестах и локальной
// разработке без SMTP.
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) Send(ctx context.Context, msg *Message) error {
	return nil
}
