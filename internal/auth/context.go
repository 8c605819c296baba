package auth

import (
	"context"

	"stockroom/internal/domain"
)

type contextKey string

const ctxActingUser contextKey = "acting_user"

func WithActingUser(ctx context.Context, user domain.ActingUser) context.Context {
	return context.WithValue(ctx, ctxActingUser, user)
}

func ActingUserFromContext(ctx context.Context) (domain.ActingUser, bool) {
	if ctx == nil {
		return domain.ActingUser{}, false
	}
	user, ok := ctx.Value(ctxActingUser).(domain.ActingUser)
	return user, ok
}
