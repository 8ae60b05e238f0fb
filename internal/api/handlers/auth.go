// internal/api/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/ecavus/stayhub-backend/internal/api/httpx"
	"github.com/ecavus/stayhub-backend/internal/apperr"
	"github.com/ecavus/stayhub-backend/internal/auth"
	"github.com/ecavus/stayhub-backend/internal/facade"
	"github.com/ecavus/stayhub-backend/internal/metrics"
	"github.com/ecavus/stayhub-backend/internal/middleware"
)

type AuthHandler struct {
	f  *facade.Facade
	tm *auth.TokenManager
}

func NewAuthHandler(f *facade.Facade, tm *auth.TokenManager) *AuthHandler {
	return &AuthHandler{f: f, tm: tm}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeStrict(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteAppErr(w, apperr.Validation("email and password are required"))
		return
	}

	// Lookup miss and bad password answer identically.
	u, err := h.f.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if apperr.IsNotFound(err) {
			metrics.AuthFailures.Inc()
			httpx.WriteAppErr(w, apperr.Unauthorized("invalid credentials"))
			return
		}
		httpx.WriteAppErr(w, err)
		return
	}
	if err := auth.VerifyPassword(req.Password, u.PasswordHash); err != nil {
		metrics.AuthFailures.Inc()
		httpx.WriteAppErr(w, apperr.Unauthorized("invalid credentials"))
		return
	}

	tok, err := h.tm.Generate(u.ID, u.IsAdmin)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, loginResponse{AccessToken: tok})
}

// Protected is a token smoke-test endpoint; the auth middleware has
// already resolved the principal by the time it runs.
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		httpx.WriteAppErr(w, apperr.Unauthorized("missing bearer token"))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Hello, user " + p.UserID})
}
