package xcontext

import "context"

type userIDKey struct{}

// SetUserID stores the authenticated user's ID. Only the session middleware should call it.
func SetUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int64)
	return userID, ok
}
