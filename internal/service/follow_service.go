package service

import (
	"context"
	"errors"
	"fmt"

	"autohub/internal/model"
	"autohub/internal/repository"
)

type followStore interface {
	Create(ctx context.Context, followerID, followeeID int64) error
	Delete(ctx context.Context, followerID, followeeID int64) (bool, error)
	Exists(ctx context.Context, followerID, followeeID int64) (bool, error)
	Followers(ctx context.Context, userID int64, limit, offset int) ([]model.FollowUser, error)
	Following(ctx context.Context, userID int64, limit, offset int) ([]model.FollowUser, error)
}

// FollowObserver receives graph mutations after they commit. Implementations
// must not fail the primary operation; anything that goes wrong is theirs to
// log and swallow.
type FollowObserver interface {
	FollowerAdded(ctx context.Context, followerID, followeeID int64)
}

// FollowService owns the directed follow relation between users.
type FollowService struct {
	follows  followStore
	observer FollowObserver
}

func NewFollowService(fs followStore, observer FollowObserver) *FollowService {
	return &FollowService{follows: fs, observer: observer}
}

// Follow creates the follower -> followee edge. The relation is
// irreflexive and deduplicated; a second follow for the same pair is a
// conflict, not a no-op.
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID int64) error {
	if followerID <= 0 || followeeID <= 0 {
		return ErrInvalidID
	}
	if followerID == followeeID {
		return ErrSelfFollow
	}

	exists, err := s.follows.Exists(ctx, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("FollowService.Follow: checking relation: %w", err)
	}
	if exists {
		return ErrAlreadyFollowing
	}

	if err := s.follows.Create(ctx, followerID, followeeID); err != nil {
		// The unique constraint catches the pair that slipped past the
		// pre-check under concurrent calls.
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyFollowing
		}
		return fmt.Errorf("FollowService.Follow: insert: %w", err)
	}

	if s.observer != nil {
		s.observer.FollowerAdded(ctx, followerID, followeeID)
	}
	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	if followerID <= 0 || followeeID <= 0 {
		return ErrInvalidID
	}
	removed, err := s.follows.Delete(ctx, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("FollowService.Unfollow: %w", err)
	}
	if !removed {
		return ErrNotFollowing
	}
	return nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	following, err := s.follows.Exists(ctx, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("FollowService.IsFollowing: %w", err)
	}
	return following, nil
}

func (s *FollowService) Followers(ctx context.Context, userID int64, limit, offset int) ([]model.FollowUser, error) {
	users, err := s.follows.Followers(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("FollowService.Followers: %w", err)
	}
	return users, nil
}

func (s *FollowService) Following(ctx context.Context, userID int64, limit, offset int) ([]model.FollowUser, error) {
	users, err := s.follows.Following(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("FollowService.Following: %w", err)
	}
	return users, nil
}
