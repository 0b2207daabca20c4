// Package credential carries the caller's bearer token and identity through
// context so outbound backend calls can attach it.
package credential

import "context"

// Key is a typed context key to prevent collisions.
type Key string

const (
	KeyBearerToken Key = "bearer_token"
	KeyUserID      Key = "user_id"
)

func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, KeyBearerToken, token)
}

// Bearer returns the token stored by WithBearer, or "" when none was set.
func Bearer(ctx context.Context) string {
	if v, ok := ctx.Value(KeyBearerToken).(string); ok {
		return v
	}
	return ""
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, KeyUserID, userID)
}

func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(KeyUserID).(string); ok {
		return v
	}
	return ""
}
