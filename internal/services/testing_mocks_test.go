package services

import (
	"context"

	"github.com/kkh1902/promptsave-sub001/internal/models"
	"github.com/kkh1902/promptsave-sub001/internal/repositories"
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

// MockFollowRepository is a mock implementation of repositories.FollowRepository
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) CreateFollow(ctx context.Context, follow *models.Follow) error {
	args := m.Called(ctx, follow)
	return args.Error(0)
}

func (m *MockFollowRepository) DeleteFollow(ctx context.Context, followerID, followingID string) error {
	args := m.Called(ctx, followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) GetFollowers(ctx context.Context, userID string) ([]models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Profile), args.Error(1)
}

func (m *MockFollowRepository) GetFollowing(ctx context.Context, userID string) ([]models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Profile), args.Error(1)
}

func (m *MockFollowRepository) GetFollowersCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) GetFollowingCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAccountRepository is a mock implementation of repositories.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) DeleteRelationalData(ctx context.Context, userID string) (*repositories.RelationalDeletion, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.RelationalDeletion), args.Error(1)
}

// MockIdentityDeleter is a mock implementation of IdentityDeleter
type MockIdentityDeleter struct {
	mock.Mock
}

func (m *MockIdentityDeleter) DeleteUser(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}
