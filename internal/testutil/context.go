package testutil

import (
	"context"

	"github.com/Gimmir/un1t-mobile-app-sub000/internal/types"
)

// SetupContext creates a context with the default test identifiers
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	ctx = types.SetUserID(ctx, types.DefaultUserID)
	ctx = types.SetStudioID(ctx, types.DefaultStudioID)
	return ctx
}
