package handlers

import (
	"context"
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
	"github.com/ecavus/stayhub-backend/internal/validate"
)

type PlaceHandler struct {
	f   *facade.Facade
	rec *audit.Recorder
}

func NewPlaceHandler(f *facade.Facade, rec *audit.Recorder) *PlaceHandler {
	return &PlaceHandler{f: f, rec: rec}
}

type placeOwner struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type placeReview struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
	UserID string `json:"user_id"`
}

type placeResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	Owner       placeOwner        `json:"owner"`
	Amenities   []amenityResponse `json:"amenities"`
	Reviews     []placeReview     `json:"reviews,omitempty"`
}

func (h *PlaceHandler) toResponse(ctx context.Context, p models.Place) (placeResponse, error) {
	resp := placeResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Amenities:   []amenityResponse{},
	}
	owner, err := h.f.GetUser(ctx, p.OwnerID)
	if err != nil {
		return resp, err
	}
	resp.Owner = placeOwner{ID: owner.ID, FirstName: owner.FirstName, LastName: owner.LastName, Email: owner.Email}

	amenities, err := h.f.GetPlaceAmenities(ctx, p.ID)
	if err != nil {
		return resp, err
	}
	for _, a := range amenities {
		resp.Amenities = append(resp.Amenities, amenityResponse{ID: a.ID, Name: a.Name})
	}
	return resp, nil
}

type placeRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Amenities   []string `json:"amenities"`
}

func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r.Context())

	var req placeRequest
	if err := decodeStrict(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	// Absent and zero are different things here: price, latitude and
	// longitude must be present on create, not defaulted to 0.
	var errs validate.Errs
	if req.Price == nil {
		errs = append(errs, validate.ErrField{Field: "price", Msg: "required"})
	}
	if req.Latitude == nil {
		errs = append(errs, validate.ErrField{Field: "latitude", Msg: "required"})
	}
	if req.Longitude == nil {
		errs = append(errs, validate.ErrField{Field: "longitude", Msg: "required"})
	}
	if len(errs) > 0 {
		httpx.WriteAppErr(w, apperr.Wrap(apperr.KindValidation, errs.Error(), errs))
		return
	}

	var title, description string
	if req.Title != nil {
		title = *req.Title
	}
	if req.Description != nil {
		description = *req.Description
	}

	// The owner is always the requester, whatever the payload says.
	place, err := models.NewPlace(title, description, *req.Price, *req.Latitude, *req.Longitude, p.UserID)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	stored, err := h.f.CreatePlace(r.Context(), place)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	// Attachment happens after the insert and is not atomic with it;
	// unknown amenity ids are skipped, a mid-loop failure leaves the
	// place with a partial amenity set.
	for _, amenityID := range req.Amenities {
		if _, err := h.f.GetAmenity(r.Context(), amenityID); err != nil {
			continue
		}
		if err := h.f.AttachAmenity(r.Context(), stored.ID, amenityID); err != nil {
			httpx.WriteAppErr(w, err)
			return
		}
	}

	metrics.MutationsTotal.WithLabelValues("place", "create").Inc()
	h.rec.Record("place", stored.ID, "create", p.UserID, map[string]any{"title": stored.Title})

	resp, err := h.toResponse(r.Context(), stored)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	places, err := h.f.GetAllPlaces(r.Context())
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	out := make([]placeResponse, 0, len(places))
	for _, p := range places {
		resp, err := h.toResponse(r.Context(), p)
		if err != nil {
			httpx.WriteAppErr(w, err)
			return
		}
		out = append(out, resp)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *PlaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	place, err := h.f.GetPlace(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	resp, err := h.toResponse(r.Context(), place)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	reviews, err := h.f.GetReviewsByPlace(r.Context(), place.ID)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	resp.Reviews = make([]placeReview, 0, len(reviews))
	for _, rv := range reviews {
		resp.Reviews = append(resp.Reviews, placeReview{ID: rv.ID, Text: rv.Text, Rating: rv.Rating, UserID: rv.UserID})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *PlaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r.Context())

	place, err := h.f.GetPlace(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	if err := authz.CanUpdatePlace(p, place); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	var req placeRequest
	if err := decodeStrict(r, &req); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}

	// Amenities and owner are immutable through this flow; the amenities
	// key is accepted and dropped.
	if req.Title != nil {
		place.Title = *req.Title
	}
	if req.Description != nil {
		place.Description = *req.Description
	}
	if req.Price != nil {
		place.Price = *req.Price
	}
	if req.Latitude != nil {
		place.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		place.Longitude = *req.Longitude
	}

	if err := place.Validate(); err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	stored, err := h.f.UpdatePlace(r.Context(), place)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	metrics.MutationsTotal.WithLabelValues("place", "update").Inc()
	h.rec.Record("place", stored.ID, "update", p.UserID, nil)

	resp, err := h.toResponse(r.Context(), stored)
	if err != nil {
		httpx.WriteAppErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
