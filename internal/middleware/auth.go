// internal/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ecavus/stayhub-backend/internal/api/httpx"
	"github.com/ecavus/stayhub-backend/internal/apperr"
	"github.com/ecavus/stayhub-backend/internal/auth"
	"github.com/ecavus/stayhub-backend/internal/authz"
	"github.com/ecavus/stayhub-backend/internal/facade"
	"github.com/ecavus/stayhub-backend/internal/metrics"
)

type principalKey struct{}

// PrincipalFrom returns the authenticated principal stored by Require.
func PrincipalFrom(ctx context.Context) (authz.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(authz.Principal)
	return p, ok
}

type AuthMiddleware struct {
	tm *auth.TokenManager
	f  *facade.Facade
}

func NewAuthMiddleware(tm *auth.TokenManager, f *facade.Facade) *AuthMiddleware {
	return &AuthMiddleware{tm: tm, f: f}
}

// Require rejects requests without a valid bearer token and resolves the
// token subject to a live user record. A valid token whose user has since
// disappeared answers 404, not 401.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			metrics.AuthFailures.Inc()
			httpx.WriteAppErr(w, apperr.Unauthorized("missing bearer token"))
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])

		claims, err := m.tm.Parse(token)
		if err != nil {
			metrics.AuthFailures.Inc()
			httpx.WriteAppErr(w, apperr.Unauthorized("invalid token"))
			return
		}

		u, err := m.f.GetUser(r.Context(), claims.UserID)
		if err != nil {
			httpx.WriteAppErr(w, err)
			return
		}

		p := authz.Principal{UserID: u.ID, IsAdmin: u.IsAdmin}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey{}, p)))
	})
}
