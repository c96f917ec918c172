package utils

import (
	"context"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	RequestIDKey contextKey = "request_id"
)

// GetUserIDFromContext returns the authenticated actor set by the auth middleware.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}

// GetViewerFromContext is GetUserIDFromContext shaped for optional-auth reads.
func GetViewerFromContext(ctx context.Context) *int64 {
	userID, ok := GetUserIDFromContext(ctx)
	if !ok {
		return nil
	}
	return &userID
}

func SetUserContext(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func GetRequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(RequestIDKey).(string)
	return requestID
}

func SetRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}
