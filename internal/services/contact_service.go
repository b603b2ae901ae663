package services

import (
	"context"

	"learnhub_backend/internal/logger"
	"learnhub_backend/internal/models"
	"learnhub_backend/internal/repositories"
	"learnhub_backend/internal/services/dto"
	"learnhub_backend/pkg/apperrors"
)

// ContactService - прием сообщений с формы обратной связи
type ContactService interface {
	Submit(ctx context.Context, req *dto.ContactRequest) error
}

type ContactServiceImpl struct {
	contactRepo  repositories.ContactRepository
	emailService EmailService
}

func NewContactService(contactRepo repositories.ContactRepository, emailService EmailService) ContactService {
	return &ContactServiceImpl{
		contactRepo:  contactRepo,
		emailService: emailService,
	}
}

// Submit сохраняет сообщение и уведомляет администратора.
// Ошибка отправки письма не отменяет прием сообщения.
func (s *ContactServiceImpl) Submit(ctx context.Context, req *dto.ContactRequest) error {
	message := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := s.contactRepo.Create(ctx, message); err != nil {
		return apperrors.InternalError(err)
	}

	go func(name, email, body string) {
		if err := s.emailService.SendContactNotification(context.Background(), name, email, body); err != nil {
			logger.WithError(err).Error("failed to send contact notification", "from", email)
		}
	}(req.Name, req.Email, req.Message)

	logger.CtxInfo(ctx, "contact message received", "email", req.Email)
	return nil
}
