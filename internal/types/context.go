package types

import "context"

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID ContextKey = "ctx_request_id"
	CtxUserID    ContextKey = "ctx_user_id"
	CtxStudioID  ContextKey = "ctx_studio_id"

	// Default values for tests
	DefaultUserID   = "00000000-0000-0000-0000-000000000000"
	DefaultStudioID = "studio_default"
)

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetStudioID(ctx context.Context) string {
	if studioID, ok := ctx.Value(CtxStudioID).(string); ok {
		return studioID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// SetStudioID sets the studio ID in the context
func SetStudioID(ctx context.Context, studioID string) context.Context {
	return context.WithValue(ctx, CtxStudioID, studioID)
}
