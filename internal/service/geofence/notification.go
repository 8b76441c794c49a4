package geofence

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/geofence-console/internal/domain"
)

// NotificationKind is the severity of a user-facing notification.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a single user-facing message (toast).
type Notification struct {
	Kind    NotificationKind
	Title   string
	Message string
}

// NotifierFunc adapts a function to the notifier interface.
type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// LogNotifier writes notifications to a logger. Useful for headless sessions.
type LogNotifier struct {
	Log *slog.Logger
}

func (l LogNotifier) Notify(ctx context.Context, n Notification) {
	level := slog.LevelInfo
	if n.Kind == NotificationError {
		level = slog.LevelError
	}
	l.Log.Log(ctx, level, n.Title, slog.String("kind", string(n.Kind)), slog.String("message", n.Message))
}

func failure(title string, err *domain.PersistenceError) Notification {
	return Notification{Kind: NotificationError, Title: title, Message: err.UserMessage()}
}

func success(title, message string) Notification {
	return Notification{Kind: NotificationSuccess, Title: title, Message: message}
}
