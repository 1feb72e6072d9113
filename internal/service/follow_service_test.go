package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"autohub/internal/model"
	"autohub/internal/repository"
)

type MockFollowStore struct{ mock.Mock }

func (m *MockFollowStore) Create(ctx context.Context, followerID, followeeID int64) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}
func (m *MockFollowStore) Delete(ctx context.Context, followerID, followeeID int64) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}
func (m *MockFollowStore) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}
func (m *MockFollowStore) Followers(ctx context.Context, userID int64, limit, offset int) ([]model.FollowUser, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FollowUser), args.Error(1)
}
func (m *MockFollowStore) Following(ctx context.Context, userID int64, limit, offset int) ([]model.FollowUser, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FollowUser), args.Error(1)
}

type MockObserver struct{ mock.Mock }

func (m *MockObserver) FollowerAdded(ctx context.Context, followerID, followeeID int64) {
	m.Called(ctx, followerID, followeeID)
}

func TestFollowRejectsSelfAndInvalidIDs(t *testing.T) {
	svc := NewFollowService(&MockFollowStore{}, nil)

	assert.ErrorIs(t, svc.Follow(context.Background(), 7, 7), ErrSelfFollow)
	assert.ErrorIs(t, svc.Follow(context.Background(), 0, 9), ErrInvalidID)
	assert.ErrorIs(t, svc.Follow(context.Background(), 7, -1), ErrInvalidID)
	assert.ErrorIs(t, svc.Unfollow(context.Background(), 0, 9), ErrInvalidID)
}

func TestFollowDuplicateIsConflict(t *testing.T) {
	store := &MockFollowStore{}
	store.On("Exists", mock.Anything, int64(7), int64(9)).Return(true, nil)

	svc := NewFollowService(store, nil)
	err := svc.Follow(context.Background(), 7, 9)
	assert.ErrorIs(t, err, ErrAlreadyFollowing)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

// A duplicate slipping past the pre-check still comes back as a conflict
// thanks to the unique constraint.
func TestFollowRaceDuplicateIsConflict(t *testing.T) {
	store := &MockFollowStore{}
	store.On("Exists", mock.Anything, int64(7), int64(9)).Return(false, nil)
	store.On("Create", mock.Anything, int64(7), int64(9)).
		Return(fmt.Errorf("FollowRepository.Create: %w", repository.ErrDuplicate))

	svc := NewFollowService(store, nil)
	err := svc.Follow(context.Background(), 7, 9)
	assert.ErrorIs(t, err, ErrAlreadyFollowing)
}

func TestFollowNotifiesObserver(t *testing.T) {
	store := &MockFollowStore{}
	store.On("Exists", mock.Anything, int64(7), int64(9)).Return(false, nil)
	store.On("Create", mock.Anything, int64(7), int64(9)).Return(nil)

	observer := &MockObserver{}
	observer.On("FollowerAdded", mock.Anything, int64(7), int64(9)).Return()

	svc := NewFollowService(store, observer)
	require.NoError(t, svc.Follow(context.Background(), 7, 9))
	observer.AssertCalled(t, "FollowerAdded", mock.Anything, int64(7), int64(9))
}

func TestUnfollowMissingRelationIsNotFound(t *testing.T) {
	store := &MockFollowStore{}
	store.On("Delete", mock.Anything, int64(7), int64(9)).Return(false, nil)

	svc := NewFollowService(store, nil)
	assert.ErrorIs(t, svc.Unfollow(context.Background(), 7, 9), ErrNotFollowing)
}

func TestUnfollowRemovesRelation(t *testing.T) {
	store := &MockFollowStore{}
	store.On("Delete", mock.Anything, int64(7), int64(9)).Return(true, nil)

	svc := NewFollowService(store, nil)
	assert.NoError(t, svc.Unfollow(context.Background(), 7, 9))
}

func TestIsFollowing(t *testing.T) {
	store := &MockFollowStore{}
	store.On("Exists", mock.Anything, int64(7), int64(9)).Return(true, nil)

	svc := NewFollowService(store, nil)
	following, err := svc.IsFollowing(context.Background(), 7, 9)
	require.NoError(t, err)
	assert.True(t, following)
}

type MockNotificationStore struct{ mock.Mock }

func (m *MockNotificationStore) Create(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockUserStore struct{ mock.Mock }

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestFanoutCreatesNewFollowerNotification(t *testing.T) {
	users := &MockUserStore{}
	users.On("GetByID", mock.Anything, int64(7)).
		Return(&model.User{ID: 7, Username: "alice"}, nil)

	notifs := &MockNotificationStore{}
	notifs.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
		return n.RecipientID == 9 &&
			n.Type == model.NotificationTypeNewFollower &&
			n.Message == "alice started following you" &&
			n.Link == "/users/7"
	})).Return(nil)

	fanout := NewNotificationFanout(notifs, users, zap.NewNop())
	fanout.FollowerAdded(context.Background(), 7, 9)
	notifs.AssertExpectations(t)
}

// Fan-out is best-effort: a failed notification write must not reach the
// follow operation.
func TestFollowSucceedsWhenFanoutFails(t *testing.T) {
	users := &MockUserStore{}
	users.On("GetByID", mock.Anything, int64(7)).
		Return(&model.User{ID: 7, Username: "alice"}, nil)

	notifs := &MockNotificationStore{}
	notifs.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	store := &MockFollowStore{}
	store.On("Exists", mock.Anything, int64(7), int64(9)).Return(false, nil)
	store.On("Create", mock.Anything, int64(7), int64(9)).Return(nil)

	svc := NewFollowService(store, NewNotificationFanout(notifs, users, zap.NewNop()))
	assert.NoError(t, svc.Follow(context.Background(), 7, 9))
	notifs.AssertExpectations(t)
}
