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

type ReviewHandler struct {
	f   *facade.Facade
	rec *audit.Recorder
}

func NewReviewHandler(f *facade.Facade, rec *audit.Recorder) *ReviewHandler {
	return &ReviewHandler{f: f, rec: rec}
}

type reviewResponse struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
	UserID  string `json:"user_id"`
	PlaceID string `json:"place_id"`
}

func toReviewResponse(rv models.Review) reviewResponse {
	return reviewResponse{ID: rv.ID, Text: rv.Text, Rating: rv.Rating, UserID: rv.UserID, PlaceID: rv.PlaceID}
}

type createReviewRequest struct {
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
	PlaceID string `json:"place_id"`
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r.Context())

	var req createReviewRequest
	if err := decodeStrict(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	place, err := h.f.GetPlace(r.Context(), req.PlaceID)
	if err != nil {
		// A dangling place reference is a bad request here, not a 404.
		if apperr.IsNotFound(err) {
			httpx.WriteAppErr(w, apperr.Validation("place not found"))
			return
		}
		httpx.WriteAppErr(w, err)
		return
	}

	already, err := h.f.HasUserReviewedPlace(r.Context(), place.ID, p.UserID)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	if err := authz.CanCreateReview(p, place, already); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	rv, err := models.NewReview(req.Text, req.Rating, place.ID, p.UserID)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	stored, err := h.f.CreateReview(r.Context(), rv)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	metrics.MutationsTotal.WithLabelValues("review", "create").Inc()
	h.rec.Record("review", stored.ID, "create", p.UserID, map[string]any{"place_id": stored.PlaceID})
	httpx.WriteJSON(w, http.StatusCreated, toReviewResponse(stored))
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.f.GetAllReviews(r.Context())
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	out := make([]reviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, toReviewResponse(rv))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	rv, err := h.f.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toReviewResponse(rv))
}

type updateReviewRequest struct {
	Text    *string `json:"text"`
	Rating  *int    `json:"rating"`
	PlaceID *string `json:"place_id"` // accepted and ignored: immutable
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r.Context())

	rv, err := h.f.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	if err := authz.CanModifyReview(p, rv); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	var req updateReviewRequest
	if err := decodeStrict(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	if req.Text != nil {
		rv.Text = *req.Text
	}
	if req.Rating != nil {
		rv.Rating = *req.Rating
	}

	if err := rv.Validate(); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	stored, err := h.f.UpdateReview(r.Context(), rv)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	metrics.MutationsTotal.WithLabelValues("review", "update").Inc()
	h.rec.Record("review", stored.ID, "update", p.UserID, nil)
	httpx.WriteJSON(w, http.StatusOK, toReviewResponse(stored))
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r.Context())

	rv, err := h.f.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	if err := authz.CanModifyReview(p, rv); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	if err := h.f.DeleteReview(r.Context(), rv.ID); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	metrics.MutationsTotal.WithLabelValues("review", "delete").Inc()
	h.rec.Record("review", rv.ID, "delete", p.UserID, nil)
	w.WriteHeader(http.StatusNoContent)
}

// ListByPlace answers GET /places/{id}/reviews.
func (h *ReviewHandler) ListByPlace(w http.ResponseWriter, r *http.Request) {
	placeID := chi.URLParam(r, "id")
	if _, err := h.f.GetPlace(r.Context(), placeID); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	reviews, err := h.f.GetReviewsByPlace(r.Context(), placeID)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	out := make([]reviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, toReviewResponse(rv))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
