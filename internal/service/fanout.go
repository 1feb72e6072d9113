package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"autohub/internal/model"
)

type notificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
}

type userStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// NotificationFanout writes a notification for the affected party of a
// graph mutation. Every failure is logged and swallowed: the primary
// write has already committed and must not be reported as failed.
type NotificationFanout struct {
	notifications notificationStore
	users         userStore
	log           *zap.Logger
}

func NewNotificationFanout(ns notificationStore, us userStore, log *zap.Logger) *NotificationFanout {
	return &NotificationFanout{notifications: ns, users: us, log: log}
}

func (f *NotificationFanout) FollowerAdded(ctx context.Context, followerID, followeeID int64) {
	follower, err := f.users.GetByID(ctx, followerID)
	if err != nil {
		f.log.Error("notification fan-out: loading follower failed",
			zap.Int64("follower_id", followerID),
			zap.Int64("followee_id", followeeID),
			zap.Error(err))
		return
	}

	name := follower.DisplayName
	if name == "" {
		name = follower.Username
	}

	n := &model.Notification{
		RecipientID: followeeID,
		Type:        model.NotificationTypeNewFollower,
		Message:     fmt.Sprintf("%s started following you", name),
		Link:        fmt.Sprintf("/users/%d", follower.ID),
	}
	if err := f.notifications.Create(ctx, n); err != nil {
		f.log.Error("notification fan-out: create failed",
			zap.Int64("recipient_id", followeeID),
			zap.String("type", n.Type),
			zap.Error(err))
	}
}
