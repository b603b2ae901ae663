package services

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub_backend/internal/models"
	"learnhub_backend/internal/repositories"
	"learnhub_backend/internal/services/dto"
	"learnhub_backend/internal/storage"
	"learnhub_backend/pkg/apperrors"
)

type fakeMediaRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*models.Media
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{items: make(map[uuid.UUID]*models.Media)}
}

func (r *fakeMediaRepo) Create(ctx context.Context, media *models.Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if media.ID == uuid.Nil {
		media.ID = uuid.New()
	}
	media.CreatedAt = time.Now()
	clone := *media
	r.items[media.ID] = &clone
	return nil
}

func (r *fakeMediaRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok || m.DeletedAt != nil {
		return nil, repositories.ErrMediaNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *fakeMediaRepo) FindWithFilter(ctx context.Context, filter repositories.MediaFilter) ([]models.Media, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Media
	for _, m := range r.items {
		if m.DeletedAt != nil {
			continue
		}
		if filter.UploadedByID != nil && m.UploadedByID != *filter.UploadedByID {
			continue
		}
		if filter.Type != nil && m.Type != *filter.Type {
			continue
		}
		result = append(result, *m)
	}
	return result, int64(len(result)), nil
}

func (r *fakeMediaRepo) Update(ctx context.Context, media *models.Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *media
	r.items[media.ID] = &clone
	return nil
}

func (r *fakeMediaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.items[id]; ok {
		now := time.Now()
		m.DeletedAt = &now
		m.Status = models.MediaStatusDeleted
	}
	return nil
}

// fakeStorage держит файлы в памяти
type fakeStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (s *fakeStorage) Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = data
	return nil
}

func (s *fakeStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[key]
	if !ok {
		return nil, storage.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, key)
	return nil
}

func (s *fakeStorage) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[key]
	return ok, nil
}

func (s *fakeStorage) GetURL(key string) string {
	return "http://files.test/" + key
}

func (s *fakeStorage) GetSignedURL(key string, expires time.Duration) (string, error) {
	return "http://files.test/" + key + "?signed=1", nil
}

func (s *fakeStorage) GetSize(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[key]
	if !ok {
		return 0, storage.ErrFileNotFound
	}
	return int64(len(data)), nil
}

func (s *fakeStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

func newMediaFixture() (MediaService, *fakeMediaRepo, *fakeStorage) {
	repo := newFakeMediaRepo()
	store := newFakeStorage()
	svc := NewMediaService(repo, store, UploadLimits{
		MaxImageSize:    1024,
		MaxVideoSize:    4096,
		MaxDocumentSize: 2048,
	})
	return svc, repo, store
}

func uploadTestImage(t *testing.T, svc MediaService, ownerID uuid.UUID, isPublic bool) uuid.UUID {
	t.Helper()
	resp, err := svc.Upload(context.Background(), ownerID, &UploadInput{
		FileName: "photo.png",
		MimeType: "image/png",
		Size:     100,
		Reader:   strings.NewReader(strings.Repeat("x", 100)),
		IsPublic: isPublic,
	})
	require.NoError(t, err)
	return resp.ID
}

func TestMediaUpload(t *testing.T) {
	t.Parallel()

	svc, _, store := newMediaFixture()
	ownerID := uuid.New()

	resp, err := svc.Upload(context.Background(), ownerID, &UploadInput{
		FileName: "фото.png",
		MimeType: "image/png",
		Size:     100,
		Reader:   strings.NewReader(strings.Repeat("x", 100)),
		IsPublic: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "фото.png", resp.OriginalName)
	assert.NotEqual(t, "фото.png", resp.FileName) // имя заменяется на uuid
	assert.Equal(t, string(models.MediaTypeImage), resp.Type)
	assert.NotEmpty(t, resp.URL) // публичный файл получает URL
	assert.Equal(t, 1, store.count())
}

func TestMediaUpload_InvalidType(t *testing.T) {
	t.Parallel()

	svc, _, store := newMediaFixture()
	_, err := svc.Upload(context.Background(), uuid.New(), &UploadInput{
		FileName: "evil.exe",
		MimeType: "application/x-msdownload",
		Size:     10,
		Reader:   strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
	assert.Equal(t, 0, store.count())
}

func TestMediaUpload_TooLarge(t *testing.T) {
	t.Parallel()

	svc, _, _ := newMediaFixture()
	_, err := svc.Upload(context.Background(), uuid.New(), &UploadInput{
		FileName: "big.png",
		MimeType: "image/png",
		Size:     2048, // лимит изображений 1024
		Reader:   strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
}

func TestMediaGetByID_Access(t *testing.T) {
	t.Parallel()

	svc, _, _ := newMediaFixture()
	ownerID := uuid.New()
	strangerID := uuid.New()

	privateID := uploadTestImage(t, svc, ownerID, false)
	publicID := uploadTestImage(t, svc, ownerID, true)

	// Владелец видит свой приватный файл
	_, err := svc.GetByID(context.Background(), ownerID, privateID)
	assert.NoError(t, err)

	// Чужой приватный файл недоступен
	_, err = svc.GetByID(context.Background(), strangerID, privateID)
	assert.ErrorIs(t, err, apperrors.ErrMediaAccess)

	// Публичный доступен всем
	_, err = svc.GetByID(context.Background(), strangerID, publicID)
	assert.NoError(t, err)
}

func TestMediaDelete(t *testing.T) {
	t.Parallel()

	svc, _, store := newMediaFixture()
	ownerID := uuid.New()
	mediaID := uploadTestImage(t, svc, ownerID, true)

	// Удалять может только владелец, даже публичные файлы
	err := svc.Delete(context.Background(), uuid.New(), mediaID)
	assert.ErrorIs(t, err, apperrors.ErrMediaAccess)

	require.NoError(t, svc.Delete(context.Background(), ownerID, mediaID))
	assert.Equal(t, 0, store.count())

	// После удаления файл не находится
	_, err = svc.GetByID(context.Background(), ownerID, mediaID)
	assert.ErrorIs(t, err, apperrors.ErrMediaNotFound)
}

func TestMediaSignedURL(t *testing.T) {
	t.Parallel()

	svc, _, _ := newMediaFixture()
	ownerID := uuid.New()
	mediaID := uploadTestImage(t, svc, ownerID, false)

	resp, err := svc.GetSignedURL(context.Background(), ownerID, mediaID)
	require.NoError(t, err)
	assert.Contains(t, resp.URL, "signed=1")
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestMediaList_OwnFilesOnly(t *testing.T) {
	t.Parallel()

	svc, _, _ := newMediaFixture()
	ownerID := uuid.New()
	otherID := uuid.New()

	uploadTestImage(t, svc, ownerID, false)
	uploadTestImage(t, svc, ownerID, true)
	uploadTestImage(t, svc, otherID, true)

	resp, err := svc.List(context.Background(), ownerID, &dto.ListMediaQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
}
