package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecavus/stayhub-backend/internal/api/httpx"
	"github.com/ecavus/stayhub-backend/internal/apperr"
	"github.com/ecavus/stayhub-backend/internal/audit"
	"github.com/ecavus/stayhub-backend/internal/auth"
	"github.com/ecavus/stayhub-backend/internal/authz"
	"github.com/ecavus/stayhub-backend/internal/facade"
	"github.com/ecavus/stayhub-backend/internal/metrics"
	"github.com/ecavus/stayhub-backend/internal/middleware"
	"github.com/ecavus/stayhub-backend/internal/models"
)

type UserHandler struct {
	f   *facade.Facade
	rec *audit.Recorder
}

func NewUserHandler(f *facade.Facade, rec *audit.Recorder) *UserHandler {
	return &UserHandler{f: f, rec: rec}
}

// Passwords and the admin flag stay out of responses.
type userResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

type createUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r.Context())
	if err := authz.CanCreateUser(p); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	var req createUserRequest
	if err := decodeStrict(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	if req.Password == "" {
		httpx.WriteAppErr(w, apperr.Validation("password: required"))
		return
	}

	if _, err := h.f.GetUserByEmail(r.Context(), req.Email); err == nil {
		httpx.WriteAppErr(w, apperr.Conflict("email already registered"))
		return
	} else if !apperr.IsNotFound(err) {
		httpx.WriteAppErr(w, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	u, err := models.NewUser(req.FirstName, req.LastName, req.Email, hash, false)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	stored, err := h.f.CreateUser(r.Context(), u)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	metrics.MutationsTotal.WithLabelValues("user", "create").Inc()
	h.rec.Record("user", stored.ID, "create", p.UserID, map[string]any{"email": stored.Email})
	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(stored))
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.f.GetUsers(r.Context())
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.f.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

type updateUserRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r.Context())

	target, err := h.f.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	if err := authz.CanUpdateUser(p, target); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	var req updateUserRequest
	if err := decodeStrict(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	// Only admins may touch credentials; resubmitting the current email
	// is not a change.
	changesEmail := req.Email != nil && *req.Email != target.Email
	changesPassword := req.Password != nil && *req.Password != ""
	if changesEmail || changesPassword {
		if err := authz.CanChangeCredentials(p); err != nil {
			httpx.WriteAppErr(w, err)
			return
		}
	}

	if req.FirstName != nil {
		target.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		target.LastName = *req.LastName
	}
	if changesEmail {
		target.Email = *req.Email
	}
	if changesPassword {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			httpx.WriteAppErr(w, err)
			return
		}
		target.PasswordHash = hash
	}

	if err := target.Validate(); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	stored, err := h.f.UpdateUser(r.Context(), target)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	metrics.MutationsTotal.WithLabelValues("user", "update").Inc()
	h.rec.Record("user", stored.ID, "update", p.UserID, nil)
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(stored))
}
