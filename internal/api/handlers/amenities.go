package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecavus/stayhub-backend/internal/api/httpx"
	"github.com/ecavus/stayhub-backend/internal/apperr"
	"github.com/ecavus/stayhub-backend/internal/audit"
	"github.com/ecavus/stayhub-backend/internal/authz"
	"github.com/ecavus/stayhub-backend/internal/facade"
	"github.com/ecavus/stayhub-backend/internal/metrics"
	"github.com/ecavus/stayhub-backend/internal/middleware"
	"github.com/ecavus/stayhub-backend/internal/models"
)

type AmenityHandler struct {
	f   *facade.Facade
	rec *audit.Recorder
}

func NewAmenityHandler(f *facade.Facade, rec *audit.Recorder) *AmenityHandler {
	return &AmenityHandler{f: f, rec: rec}
}

type amenityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type amenityRequest struct {
	Name string `json:"name"`
}

func (h *AmenityHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r.Context())
	if err := authz.CanCreateAmenity(p); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	var req amenityRequest
	if err := decodeStrict(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	if existing, err := h.f.GetAmenityByName(r.Context(), req.Name); err == nil {
		httpx.WriteAppErr(w, apperr.Conflict("amenity with the name %q already exists. ID: %s", existing.Name, existing.ID))
		return
	} else if !apperr.IsNotFound(err) {
		httpx.WriteAppErr(w, err)
		return
	}

	a, err := models.NewAmenity(req.Name)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	stored, err := h.f.CreateAmenity(r.Context(), a)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	metrics.MutationsTotal.WithLabelValues("amenity", "create").Inc()
	h.rec.Record("amenity", stored.ID, "create", p.UserID, map[string]any{"name": stored.Name})
	httpx.WriteJSON(w, http.StatusCreated, amenityResponse{ID: stored.ID, Name: stored.Name})
}

func (h *AmenityHandler) List(w http.ResponseWriter, r *http.Request) {
	amenities, err := h.f.GetAllAmenities(r.Context())
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	out := make([]amenityResponse, 0, len(amenities))
	for _, a := range amenities {
		out = append(out, amenityResponse{ID: a.ID, Name: a.Name})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *AmenityHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.f.GetAmenity(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, amenityResponse{ID: a.ID, Name: a.Name})
}

func (h *AmenityHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r.Context())
	if err := authz.CanUpdateAmenity(p); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	a, err := h.f.GetAmenity(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	var req amenityRequest
	if err := decodeStrict(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	// Resubmitting the current name is a no-op, not a conflict.
	if req.Name == a.Name {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "no changes detected"})
		return
	}

	if existing, err := h.f.GetAmenityByName(r.Context(), req.Name); err == nil && existing.ID != a.ID {
		httpx.WriteAppErr(w, apperr.Conflict("amenity with the name %q already exists. ID: %s", existing.Name, existing.ID))
		return
	} else if err != nil && !apperr.IsNotFound(err) {
		httpx.WriteAppErr(w, err)
		return
	}

	a.Name = req.Name
	if err := a.Validate(); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	stored, err := h.f.UpdateAmenity(r.Context(), a)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	metrics.MutationsTotal.WithLabelValues("amenity", "update").Inc()
	h.rec.Record("amenity", stored.ID, "update", p.UserID, map[string]any{"name": stored.Name})
	httpx.WriteJSON(w, http.StatusOK, amenityResponse{ID: stored.ID, Name: stored.Name})
}
