package handlers

import (
	"context"
	"errors"
	"sync"

	"firebase.google.com/go/v4/auth"
	"github.com/kkh1902/promptsave-sub001/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockGalleryRepository is a mock implementation of repositories.GalleryRepository
type MockGalleryRepository struct {
	mock.Mock
}

func (m *MockGalleryRepository) ListPublished(ctx context.Context, query models.GalleryQuery) ([]models.GalleryItem, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GalleryItem), args.Error(1)
}

func (m *MockGalleryRepository) GetByID(ctx context.Context, contentType models.ContentType, id string) (*models.GalleryItem, error) {
	args := m.Called(ctx, contentType, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GalleryItem), args.Error(1)
}

func (m *MockGalleryRepository) Create(ctx context.Context, item *models.GalleryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockGalleryRepository) IncrementViewsCount(ctx context.Context, contentType models.ContentType, id string) error {
	args := m.Called(ctx, contentType, id)
	return args.Error(0)
}

func (m *MockGalleryRepository) IncrementCommentsCount(ctx context.Context, contentType models.ContentType, id string) error {
	args := m.Called(ctx, contentType, id)
	return args.Error(0)
}

func (m *MockGalleryRepository) DecrementCommentsCount(ctx context.Context, contentType models.ContentType, id string) error {
	args := m.Called(ctx, contentType, id)
	return args.Error(0)
}

func (m *MockGalleryRepository) DeleteByOwner(ctx context.Context, contentType models.ContentType, userID string) (int64, error) {
	args := m.Called(ctx, contentType, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockIdentityDeleter is a mock implementation of services.IdentityDeleter
type MockIdentityDeleter struct {
	mock.Mock
}

func (m *MockIdentityDeleter) DeleteUser(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

// fakeVerifier accepts the ID tokens registered in tokens
type fakeVerifier struct {
	tokens map[string]*auth.Token
}

func (v *fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	token, ok := v.tokens[idToken]
	if !ok {
		return nil, errors.New("ID token has invalid signature")
	}
	return token, nil
}

type storedObject struct {
	contentType string
	data        []byte
}

// fakeStorage keeps uploaded objects in memory
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string]storedObject
	err     error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string]storedObject)}
}

func (s *fakeStorage) Put(_ context.Context, objectPath, contentType string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectPath] = storedObject{contentType: contentType, data: data}
	return "https://storage.googleapis.com/test-bucket/" + objectPath, nil
}
