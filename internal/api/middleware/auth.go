package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonConsole/internal/api/handlers"
	"github.com/m04kA/SMC-SalonConsole/internal/domain"
)

// Заголовки с личностью пользователя, которые проставляет gateway
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const (
	msgMissingUserID   = "отсутствует ID пользователя"
	msgInvalidUserID   = "некорректный ID пользователя"
	msgInvalidUserRole = "некорректная роль пользователя"
)

type contextKey string

const actorKey contextKey = "actor"

// Auth извлекает пользователя из заголовков X-User-ID и X-User-Role и кладёт его в контекст.
// Аутентификация выполняется на gateway, здесь заголовкам доверяем.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(HeaderUserID)
		if rawID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		role, err := domain.ParseRole(r.Header.Get(HeaderUserRole))
		if err != nil {
			handlers.RespondUnauthorized(w, msgInvalidUserRole)
			return
		}

		ctx := WithActor(r.Context(), domain.Actor{UserID: userID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithActor кладёт пользователя в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor извлекает пользователя из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	actor, ok := GetActor(ctx)
	return actor.UserID, ok
}
