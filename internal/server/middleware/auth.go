package middleware

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/todokeeper/internal/server/handlers"
	"github.com/iudanet/todokeeper/internal/server/jwt"
)

// AuthMiddleware создает middleware для проверки access token.
// Единственное место, где идентичность попадает в контекст запроса:
// refresh token, просроченный или чужой токен дают 401.
func AuthMiddleware(logger *slog.Logger, tokens *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// Ожидаем формат: "Bearer <token>"
			token, err := handlers.BearerToken(r)
			if err != nil {
				logger.WarnContext(ctx, "missing or malformed authorization header",
					slog.String("path", r.URL.Path))
				handlers.WriteError(w, r, logger, err)
				return
			}

			principal, err := tokens.RequireAccess(token)
			if err != nil {
				logger.WarnContext(ctx, "access token rejected",
					slog.String("path", r.URL.Path),
					slog.Any("error", err))
				handlers.WriteError(w, r, logger, err)
				return
			}

			logger.DebugContext(ctx, "user authenticated",
				slog.String("user_id", principal.UserID.String()))

			ctx = handlers.WithIdentity(ctx, principal.UserID, principal.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
