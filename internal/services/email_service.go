package services

import (
	"context"
	"fmt"
	"net/url"

	"learnhub_backend/internal/email"
	"learnhub_backend/internal/models"
)

// EmailService отправляет транзакционные письма
type EmailService interface {
	SendVerificationEmail(ctx context.Context, user *models.User, token string) error
	SendPasswordResetEmail(ctx context.Context, user *models.User, token string, ttlMinutes int) error
	SendWelcomeEmail(ctx context.Context, user *models.User) error
	SendContactNotification(ctx context.Context, name, fromEmail, message string) error
}

type EmailServiceImpl struct {
	provider    email.Provider
	templates   *email.TemplateManager
	frontendURL string
	adminEmail  string
}

func NewEmailService(provider email.Provider, templates *email.TemplateManager, frontendURL, adminEmail string) EmailService {
	return &EmailServiceImpl{
		provider:    provider,
		templates:   templates,
		frontendURL: frontendURL,
		adminEmail:  adminEmail,
	}
}

func (s *EmailServiceImpl) SendVerificationEmail(ctx context.Context, user *models.User, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", s.frontendURL, url.QueryEscape(token))

	html, err := s.templates.Render(email.TemplateVerification, email.VerificationData{
		Name:      user.FullName(),
		VerifyURL: verifyURL,
	})
	if err != nil {
		return err
	}

	return s.provider.Send(ctx, &email.Message{
		To:      user.Email,
		Subject: "Подтверждение email",
		HTML:    html,
	})
}

func (s *EmailServiceImpl) SendPasswordResetEmail(ctx context.Context, user *models.User, token string, ttlMinutes int) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, url.QueryEscape(token))

	html, err := s.templates.Render(email.TemplatePasswordReset, email.PasswordResetData{
		Name:       user.FullName(),
		ResetURL:   resetURL,
		TTLMinutes: ttlMinutes,
	})
	if err != nil {
		return err
	}

	return s.provider.Send(ctx, &email.Message{
		To:      user.Email,
		Subject: "Сброс пароля",
		HTML:    html,
	})
}

func (s *EmailServiceImpl) SendWelcomeEmail(ctx context.Context, user *models.User) error {
	html, err := s.templates.Render(email.TemplateWelcome, email.WelcomeData{
		Name:     user.FullName(),
		LoginURL: s.frontendURL + "/login",
	})
	if err != nil {
		return err
	}

	return s.provider.Send(ctx, &email.Message{
		To:      user.Email,
		Subject: "Добро пожаловать!",
		HTML:    html,
	})
}

func (s *EmailServiceImpl) SendContactNotification(ctx context.Context, name, fromEmail, message string) error {
	if s.adminEmail == "" {
		return nil
	}

	html, err := s.templates.Render(email.TemplateContactNotification, email.ContactNotificationData{
		Name:    name,
		Email:   fromEmail,
		Message: message,
	})
	if err != nil {
		return err
	}

	return s.provider.Send(ctx, &email.Message{
		To:      s.adminEmail,
		Subject: "Новое сообщение с формы обратной связи",
		HTML:    html,
	})
}
