package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/kkh1902/promptsave-sub001/internal/models"
	"github.com/kkh1902/promptsave-sub001/internal/repositories"
	"github.com/kkh1902/promptsave-sub001/pkg/logger"
)

// ToggleResult is the follow state after a toggle.
// Skipped is set when another toggle for the same pair was still running; nothing was changed.
type ToggleResult struct {
	Following bool `json:"following"`
	Skipped   bool `json:"skipped,omitempty"`
}

// FollowService toggles follow edges, one toggle per follower/following pair at a time.
// The in-flight set is local to the process.
type FollowService struct {
	follows repositories.FollowRepository
	log     logger.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewFollowService(follows repositories.FollowRepository, log logger.Logger) *FollowService {
	return &FollowService{
		follows:  follows,
		log:      log,
		inFlight: make(map[string]struct{}),
	}
}

func pairKey(followerID, followingID string) string {
	return followerID + "\x00" + followingID
}

func (s *FollowService) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[key]; busy {
		return false
	}
	s.inFlight[key] = struct{}{}
	return true
}

func (s *FollowService) release(key string) {
	s.mu.Lock()
	delete(s.inFlight, key)
	s.mu.Unlock()
}

// Toggle removes the edge follower -> following when it exists and creates it otherwise
func (s *FollowService) Toggle(ctx context.Context, followerID, followingID string) (ToggleResult, error) {
	if followerID == "" {
		return ToggleResult{}, ErrUnauthenticated
	}
	if followerID == followingID {
		return ToggleResult{}, ErrFollowSelf
	}

	key := pairKey(followerID, followingID)
	if !s.acquire(key) {
		s.log.Debug("follow toggle already in flight for ", followerID, " -> ", followingID)
		return ToggleResult{Skipped: true}, nil
	}
	defer s.release(key)

	following, err := s.follows.IsFollowing(ctx, followerID, followingID)
	if err != nil {
		return ToggleResult{}, fmt.Errorf("check follow state: %w", err)
	}

	if following {
		if err := s.follows.DeleteFollow(ctx, followerID, followingID); err != nil {
			return ToggleResult{}, fmt.Errorf("unfollow: %w", err)
		}
		s.log.Info(followerID, " unfollowed ", followingID)
		return ToggleResult{Following: false}, nil
	}

	if err := s.follows.CreateFollow(ctx, &models.Follow{FollowerID: followerID, FollowingID: followingID}); err != nil {
		return ToggleResult{}, fmt.Errorf("follow: %w", err)
	}
	s.log.Info(followerID, " followed ", followingID)
	return ToggleResult{Following: true}, nil
}

// IsFollowing reports the current state of the edge follower -> following
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	if followerID == "" || followerID == followingID {
		return false, nil
	}
	return s.follows.IsFollowing(ctx, followerID, followingID)
}

// Followers lists the profiles following userID
func (s *FollowService) Followers(ctx context.Context, userID string) ([]models.Profile, error) {
	return s.follows.GetFollowers(ctx, userID)
}

// Following lists the profiles userID follows
func (s *FollowService) Following(ctx context.Context, userID string) ([]models.Profile, error) {
	return s.follows.GetFollowing(ctx, userID)
}

// Counts returns the follower and following counts of userID
func (s *FollowService) Counts(ctx context.Context, userID string) (followers, following int64, err error) {
	if followers, err = s.follows.GetFollowersCount(ctx, userID); err != nil {
		return 0, 0, err
	}
	if following, err = s.follows.GetFollowingCount(ctx, userID); err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
