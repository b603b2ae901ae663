package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub_backend/internal/services/dto"
)

func TestContactSubmit(t *testing.T) {
	t.Parallel()

	contactRepo := newFakeContactRepo()
	emails := newFakeEmailService()
	svc := NewContactService(contactRepo, emails)

	err := svc.Submit(context.Background(), &dto.ContactRequest{
		Name:    "Иван",
		Email:   "ivan@test.com",
		Message: "Здравствуйте, есть вопрос по курсу.",
	})
	require.NoError(t, err)

	messages, total, err := contactRepo.List(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "ivan@test.com", messages[0].Email)

	// Уведомление администратору уходит асинхронно
	assert.Eventually(t, func() bool {
		emails.mu.Lock()
		defer emails.mu.Unlock()
		return emails.contacts == 1
	}, time.Second, 10*time.Millisecond)
}
