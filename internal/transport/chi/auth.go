package chi

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/dimreg/internal/logger"
	gen "github.com/kailas-cloud/dimreg/internal/transport/generated"
)

// exemptPaths are routes that bypass authentication and tenant resolution (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

type actorCtxKey struct{}

// ActorFromContext returns the authenticated actor, or "" if none.
func ActorFromContext(ctx context.Context) string {
	a, _ := ctx.Value(actorCtxKey{}).(string)
	return a
}

// ContextWithActor stores the actor identity in the context.
func ContextWithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actor)
}

// BearerAuthMiddleware resolves Bearer tokens to actor identities.
// If tokens is empty, authentication is disabled and every request runs as defaultActor.
func BearerAuthMiddleware(tokens map[string]string, defaultActor string) func(http.Handler) http.Handler {
	actors := make(map[string]string, len(tokens))
	for token, actor := range tokens {
		if token != "" && actor != "" {
			actors[token] = actor
		}
	}

	return func(next http.Handler) http.Handler {
		// Auth disabled: every caller is the default actor
		if len(actors) == 0 {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(withActor(r.Context(), defaultActor)))
			})
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Exempt paths
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, gen.ErrorResponseCodeUnauthorized, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, gen.ErrorResponseCodeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			actor, ok := actors[auth[len(bearerPrefix):]]
			if !ok {
				writeError(w, http.StatusUnauthorized, gen.ErrorResponseCodeUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(withActor(r.Context(), actor)))
		})
	}
}

func withActor(ctx context.Context, actor string) context.Context {
	return logpkg.With(ContextWithActor(ctx, actor), zap.String("actor", actor))
}
