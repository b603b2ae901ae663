package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"learnhub_backend/internal/models"
	"learnhub_backend/internal/repositories"
)

// In-memory реализации репозиториев для юнит-тестов сервисов

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.EmailVerificationToken != nil && *u.EmailVerificationToken == token {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.PasswordResetToken != nil && *u.PasswordResetToken == token {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		now := time.Now()
		u.LastLoginAt = &now
	}
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, offset, limit int) ([]models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []models.User
	for _, u := range r.users {
		all = append(all, *u)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type fakeRoleRepo struct {
	mu          sync.Mutex
	roles       map[string]*models.Role
	assignments []*models.UserRole
}

func newFakeRoleRepo(levels map[string]int) *fakeRoleRepo {
	r := &fakeRoleRepo{roles: make(map[string]*models.Role)}
	for name, level := range levels {
		r.roles[name] = &models.Role{
			BaseModel:      models.BaseModel{ID: uuid.New()},
			Name:           name,
			DisplayName:    name,
			HierarchyLevel: level,
			IsActive:       true,
		}
	}
	return r
}

func (r *fakeRoleRepo) FindByName(ctx context.Context, name string) (*models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[name]
	if !ok {
		return nil, repositories.ErrRoleNotFound
	}
	return role, nil
}

func (r *fakeRoleRepo) FindByNames(ctx context.Context, names []string) ([]models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Role
	for _, n := range names {
		if role, ok := r.roles[n]; ok {
			result = append(result, *role)
		}
	}
	return result, nil
}

func (r *fakeRoleRepo) FindAllActive(ctx context.Context) ([]models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Role
	for _, role := range r.roles {
		if role.IsActive {
			result = append(result, *role)
		}
	}
	return result, nil
}

func (r *fakeRoleRepo) LevelsByName(ctx context.Context) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	levels := make(map[string]int)
	for name, role := range r.roles {
		if role.IsActive {
			levels[name] = role.HierarchyLevel
		}
	}
	return levels, nil
}

func (r *fakeRoleRepo) GetActiveRoleNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var names []string
	for _, a := range r.assignments {
		if a.UserID != userID || !a.IsActive {
			continue
		}
		if a.ExpiresAt != nil && time.Now().After(*a.ExpiresAt) {
			continue
		}
		for name, role := range r.roles {
			if role.ID == a.RoleID && role.IsActive {
				names = append(names, name)
			}
		}
	}
	return names, nil
}

func (r *fakeRoleRepo) AssignRole(ctx context.Context, userID, roleID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assignments {
		if a.UserID == userID && a.RoleID == roleID {
			a.IsActive = true
			a.ExpiresAt = nil
			return nil
		}
	}
	r.assignments = append(r.assignments, &models.UserRole{
		BaseModel:  models.BaseModel{ID: uuid.New()},
		UserID:     userID,
		RoleID:     roleID,
		IsActive:   true,
		AssignedAt: time.Now(),
	})
	return nil
}

func (r *fakeRoleRepo) RemoveRole(ctx context.Context, userID, roleID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assignments {
		if a.UserID == userID && a.RoleID == roleID {
			a.IsActive = false
		}
	}
	return nil
}

func (r *fakeRoleRepo) Upsert(ctx context.Context, role *models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.roles[role.Name]; ok {
		existing.DisplayName = role.DisplayName
		existing.HierarchyLevel = role.HierarchyLevel
		existing.IsActive = role.IsActive
		return nil
	}
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	r.roles[role.Name] = role
	return nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*models.RefreshToken)}
}

func (r *fakeTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	clone := *token
	r.tokens[token.TokenHash] = &clone
	return nil
}

func (r *fakeTokenRepo) FindByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[hash]
	if !ok {
		return nil, repositories.ErrRefreshTokenNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *fakeTokenRepo) DeleteByHash(ctx context.Context, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, hash)
	return nil
}

func (r *fakeTokenRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for hash, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, hash)
		}
	}
	return nil
}

func (r *fakeTokenRepo) CleanExpired(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for hash, t := range r.tokens {
		if t.IsExpired() {
			delete(r.tokens, hash)
			n++
		}
	}
	return n, nil
}

func (r *fakeTokenRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

type fakeContactRepo struct {
	mu       sync.Mutex
	messages []*models.ContactMessage
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{}
}

func (r *fakeContactRepo) Create(ctx context.Context, message *models.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeContactRepo) List(ctx context.Context, offset, limit int) ([]models.ContactMessage, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.ContactMessage
	for _, m := range r.messages {
		result = append(result, *m)
	}
	return result, int64(len(result)), nil
}

// fakeEmailService считает отправленные письма. Счетчики защищены мьютексом,
// так как сервисы отправляют письма из горутин.
type fakeEmailService struct {
	mu            sync.Mutex
	verifications int
	resets        int
	welcomes      int
	contacts      int
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{}
}

func (s *fakeEmailService) SendVerificationEmail(ctx context.Context, user *models.User, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verifications++
	return nil
}

func (s *fakeEmailService) SendPasswordResetEmail(ctx context.Context, user *models.User, token string, ttlMinutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets++
	return nil
}

func (s *fakeEmailService) SendWelcomeEmail(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.welcomes++
	return nil
}

func (s *fakeEmailService) SendContactNotification(ctx context.Context, name, fromEmail, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts++
	return nil
}

func (s *fakeEmailService) sentVerifications() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verifications
}

func (s *fakeEmailService) sentResets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resets
}
