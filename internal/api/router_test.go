package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecavus/stayhub-backend/internal/api"
	"github.com/ecavus/stayhub-backend/internal/audit"
	"github.com/ecavus/stayhub-backend/internal/auth"
	"github.com/ecavus/stayhub-backend/internal/config"
	"github.com/ecavus/stayhub-backend/internal/facade"
	"github.com/ecavus/stayhub-backend/internal/models"
	"github.com/ecavus/stayhub-backend/internal/repository/memory"
	"github.com/ecavus/stayhub-backend/internal/worker"
)

type env struct {
	t     *testing.T
	srv   http.Handler
	f     *facade.Facade
	tm    *auth.TokenManager
	repos memory.Repositories
}

func newEnv(t *testing.T) *env {
	t.Helper()
	repos := memory.NewRepositories()
	f := facade.New(repos.Users, repos.Amenities, repos.Places, repos.Reviews)
	tm := auth.NewTokenManager("test-secret", "stayhub-test", 0)
	wp := worker.NewPool(1)
	t.Cleanup(wp.Stop)
	rec := audit.NewRecorder(repos.AuditLogs, wp)
	cfg := config.Config{Env: "test"}
	return &env{t: t, srv: api.NewRouter(cfg, f, tm, rec), f: f, tm: tm, repos: repos}
}

func (e *env) seedUser(first, email, password string, admin bool) models.User {
	e.t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(e.t, err)
	u, err := models.NewUser(first, "Tester", email, hash, admin)
	require.NoError(e.t, err)
	stored, err := e.f.CreateUser(context.Background(), u)
	require.NoError(e.t, err)
	return stored
}

func (e *env) token(u models.User) string {
	e.t.Helper()
	tok, err := e.tm.Generate(u.ID, u.IsAdmin)
	require.NoError(e.t, err)
	return tok
}

func (e *env) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(e.t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.srv.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestAmenityCreateAndDuplicate(t *testing.T) {
	e := newEnv(t)
	admin := e.seedUser("Admin", "admin@example.com", "adminpw", true)
	user := e.seedUser("Alice", "alice@example.com", "alicepw", false)

	// non-admin forbidden
	w := e.do("POST", "/api/v1/amenities", e.token(user), map[string]any{"name": "Wifi"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// no token
	w = e.do("POST", "/api/v1/amenities", "", map[string]any{"name": "Wifi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// admin creates
	w = e.do("POST", "/api/v1/amenities", e.token(admin), map[string]any{"name": "Wifi"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody[map[string]string](t, w)
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "Wifi", created["name"])

	// duplicate name conflicts
	w = e.do("POST", "/api/v1/amenities", e.token(admin), map[string]any{"name": "Wifi"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// empty name is a validation error
	w = e.do("POST", "/api/v1/amenities", e.token(admin), map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// public read
	w = e.do("GET", "/api/v1/amenities/"+created["id"], "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = e.do("GET", "/api/v1/amenities/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAmenityUpdateRules(t *testing.T) {
	e := newEnv(t)
	admin := e.seedUser("Admin", "admin@example.com", "adminpw", true)

	w := e.do("POST", "/api/v1/amenities", e.token(admin), map[string]any{"name": "Wifi"})
	require.Equal(t, http.StatusCreated, w.Code)
	wifi := decodeBody[map[string]string](t, w)

	w = e.do("POST", "/api/v1/amenities", e.token(admin), map[string]any{"name": "Pool"})
	require.Equal(t, http.StatusCreated, w.Code)
	pool := decodeBody[map[string]string](t, w)

	// unchanged name is a no-op
	w = e.do("PUT", "/api/v1/amenities/"+wifi["id"], e.token(admin), map[string]any{"name": "Wifi"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "no changes detected")

	// renaming onto another amenity conflicts
	w = e.do("PUT", "/api/v1/amenities/"+pool["id"], e.token(admin), map[string]any{"name": "Wifi"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// clean rename
	w = e.do("PUT", "/api/v1/amenities/"+pool["id"], e.token(admin), map[string]any{"name": "Sauna"})
	require.Equal(t, http.StatusOK, w.Code)
	renamed := decodeBody[map[string]string](t, w)
	assert.Equal(t, "Sauna", renamed["name"])

	w = e.do("PUT", "/api/v1/amenities/unknown", e.token(admin), map[string]any{"name": "Gym"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type placeBody struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Owner struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"owner"`
	Amenities []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"amenities"`
	Reviews []struct {
		ID     string `json:"id"`
		Text   string `json:"text"`
		Rating int    `json:"rating"`
		UserID string `json:"user_id"`
	} `json:"reviews"`
}

func TestPlaceOwnershipFlow(t *testing.T) {
	e := newEnv(t)
	alice := e.seedUser("Alice", "alice@example.com", "alicepw", false)
	bob := e.seedUser("Bob", "bob@example.com", "bobpw", false)

	// anonymous create rejected
	w := e.do("POST", "/api/v1/places", "", map[string]any{"title": "Cabin", "price": 100, "latitude": 10, "longitude": 10})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// alice creates; owner is forced to her
	w = e.do("POST", "/api/v1/places", e.token(alice), map[string]any{"title": "Cabin", "price": 100, "latitude": 10, "longitude": 10})
	require.Equal(t, http.StatusCreated, w.Code)
	place := decodeBody[placeBody](t, w)
	assert.Equal(t, alice.ID, place.Owner.ID)
	assert.Equal(t, "alice@example.com", place.Owner.Email)

	// bob may not update it
	w = e.do("PUT", "/api/v1/places/"+place.ID, e.token(bob), map[string]any{"price": 120})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// anonymous update rejected
	w = e.do("PUT", "/api/v1/places/"+place.ID, "", map[string]any{"price": 120})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// alice updates the price; other fields survive
	w = e.do("PUT", "/api/v1/places/"+place.ID, e.token(alice), map[string]any{"price": 120})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody[placeBody](t, w)
	assert.Equal(t, 120.0, updated.Price)
	assert.Equal(t, "Cabin", updated.Title)
	assert.Equal(t, alice.ID, updated.Owner.ID)

	w = e.do("PUT", "/api/v1/places/unknown", e.token(alice), map[string]any{"price": 120})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlaceValidationAndAmenityAttachment(t *testing.T) {
	e := newEnv(t)
	admin := e.seedUser("Admin", "admin@example.com", "adminpw", true)
	alice := e.seedUser("Alice", "alice@example.com", "alicepw", false)

	// out-of-range coordinates
	w := e.do("POST", "/api/v1/places", e.token(alice), map[string]any{"title": "Cabin", "price": 10, "latitude": 95, "longitude": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = e.do("POST", "/api/v1/places", e.token(alice), map[string]any{"title": "Cabin", "price": 10, "latitude": 10, "longitude": -190})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// negative price
	w = e.do("POST", "/api/v1/places", e.token(alice), map[string]any{"title": "Cabin", "price": -5, "latitude": 10, "longitude": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// price, latitude and longitude are mandatory; leaving them out must
	// not fall back to a free place at (0, 0)
	w = e.do("POST", "/api/v1/places", e.token(alice), map[string]any{"title": "Cabin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = e.do("POST", "/api/v1/places", e.token(alice), map[string]any{"title": "Cabin", "latitude": 10, "longitude": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "price")
	w = e.do("POST", "/api/v1/places", e.token(alice), map[string]any{"title": "Cabin", "price": 10, "longitude": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = e.do("POST", "/api/v1/places", e.token(alice), map[string]any{"title": "Cabin", "price": 10, "latitude": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown payload field rejected
	w = e.do("POST", "/api/v1/places", e.token(alice), map[string]any{"title": "Cabin", "price": 10, "latitude": 10, "longitude": 10, "owner_id": "spoof"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// attachment keeps known ids, silently skips unknown ones
	w = e.do("POST", "/api/v1/amenities", e.token(admin), map[string]any{"name": "Wifi"})
	require.Equal(t, http.StatusCreated, w.Code)
	wifi := decodeBody[map[string]string](t, w)

	w = e.do("POST", "/api/v1/places", e.token(alice), map[string]any{
		"title": "Cabin", "price": 10, "latitude": 10, "longitude": 10,
		"amenities": []string{wifi["id"], "not-a-real-amenity"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	place := decodeBody[placeBody](t, w)
	require.Len(t, place.Amenities, 1)
	assert.Equal(t, "Wifi", place.Amenities[0].Name)
}

type reviewBody struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
	UserID  string `json:"user_id"`
	PlaceID string `json:"place_id"`
}

func TestReviewRules(t *testing.T) {
	e := newEnv(t)
	admin := e.seedUser("Admin", "admin@example.com", "adminpw", true)
	alice := e.seedUser("Alice", "alice@example.com", "alicepw", false)
	bob := e.seedUser("Bob", "bob@example.com", "bobpw", false)

	w := e.do("POST", "/api/v1/places", e.token(alice), map[string]any{"title": "Cabin", "price": 100, "latitude": 10, "longitude": 10})
	require.Equal(t, http.StatusCreated, w.Code)
	place := decodeBody[placeBody](t, w)

	// reviewing a place that does not exist is a bad request
	w = e.do("POST", "/api/v1/reviews", e.token(bob), map[string]any{"text": "Great", "rating": 5, "place_id": "missing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// the owner may not review her own place
	w = e.do("POST", "/api/v1/reviews", e.token(alice), map[string]any{"text": "Great", "rating": 5, "place_id": place.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// rating out of range
	w = e.do("POST", "/api/v1/reviews", e.token(bob), map[string]any{"text": "Great", "rating": 6, "place_id": place.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// non-integer rating never reaches the model
	w = e.do("POST", "/api/v1/reviews", e.token(bob), map[string]any{"text": "Great", "rating": 4.5, "place_id": place.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// bob reviews once
	w = e.do("POST", "/api/v1/reviews", e.token(bob), map[string]any{"text": "Great", "rating": 5, "place_id": place.ID})
	require.Equal(t, http.StatusCreated, w.Code)
	review := decodeBody[reviewBody](t, w)
	assert.Equal(t, bob.ID, review.UserID)
	assert.Equal(t, place.ID, review.PlaceID)

	// and never twice
	w = e.do("POST", "/api/v1/reviews", e.token(bob), map[string]any{"text": "Still great", "rating": 4, "place_id": place.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// alice is neither author nor admin
	w = e.do("PUT", "/api/v1/reviews/"+review.ID, e.token(alice), map[string]any{"text": "Hijacked", "rating": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// the author updates; place and user references stay fixed
	w = e.do("PUT", "/api/v1/reviews/"+review.ID, e.token(bob), map[string]any{"text": "Even better", "rating": 4})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody[reviewBody](t, w)
	assert.Equal(t, "Even better", updated.Text)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, bob.ID, updated.UserID)
	assert.Equal(t, place.ID, updated.PlaceID)

	// alice may not delete it either
	w = e.do("DELETE", "/api/v1/reviews/"+review.ID, e.token(alice), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// an admin may
	w = e.do("DELETE", "/api/v1/reviews/"+review.ID, e.token(admin), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = e.do("GET", "/api/v1/reviews/"+review.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlaceReviewsEndpoint(t *testing.T) {
	e := newEnv(t)
	alice := e.seedUser("Alice", "alice@example.com", "alicepw", false)
	bob := e.seedUser("Bob", "bob@example.com", "bobpw", false)

	w := e.do("GET", "/api/v1/places/unknown/reviews", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do("POST", "/api/v1/places", e.token(alice), map[string]any{"title": "Cabin", "price": 100, "latitude": 10, "longitude": 10})
	require.Equal(t, http.StatusCreated, w.Code)
	place := decodeBody[placeBody](t, w)

	w = e.do("GET", "/api/v1/places/"+place.ID+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = e.do("POST", "/api/v1/reviews", e.token(bob), map[string]any{"text": "Great", "rating": 5, "place_id": place.ID})
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do("GET", "/api/v1/places/"+place.ID+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	reviews := decodeBody[[]reviewBody](t, w)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Great", reviews[0].Text)

	// the place detail embeds the same reviews, author included
	w = e.do("GET", "/api/v1/places/"+place.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decodeBody[placeBody](t, w)
	require.Len(t, detail.Reviews, 1)
	assert.Equal(t, "Great", detail.Reviews[0].Text)
	assert.Equal(t, 5, detail.Reviews[0].Rating)
	assert.Equal(t, bob.ID, detail.Reviews[0].UserID)
}

func TestUserAdminRules(t *testing.T) {
	e := newEnv(t)
	admin := e.seedUser("Admin", "admin@example.com", "adminpw", true)
	alice := e.seedUser("Alice", "alice@example.com", "alicepw", false)

	payload := map[string]any{"first_name": "Carol", "last_name": "Jones", "email": "carol@example.com", "password": "carolpw"}

	// only admins create users
	w := e.do("POST", "/api/v1/users", e.token(alice), payload)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do("POST", "/api/v1/users", e.token(admin), payload)
	require.Equal(t, http.StatusCreated, w.Code)
	carol := decodeBody[map[string]any](t, w)
	assert.NotEmpty(t, carol["id"])
	assert.NotContains(t, w.Body.String(), "password")

	// duplicate email
	w = e.do("POST", "/api/v1/users", e.token(admin), payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	// invalid email shape
	bad := map[string]any{"first_name": "Dave", "last_name": "Jones", "email": "not-an-email", "password": "davepw"}
	w = e.do("POST", "/api/v1/users", e.token(admin), bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// alice renames herself
	w = e.do("PUT", "/api/v1/users/"+alice.ID, e.token(alice), map[string]any{"first_name": "Alicia"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alicia")

	// but may not change her email or password
	w = e.do("PUT", "/api/v1/users/"+alice.ID, e.token(alice), map[string]any{"email": "new@example.com"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = e.do("PUT", "/api/v1/users/"+alice.ID, e.token(alice), map[string]any{"password": "newpw"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// resubmitting the current email is not a credential change
	w = e.do("PUT", "/api/v1/users/"+alice.ID, e.token(alice), map[string]any{"email": "alice@example.com", "first_name": "Alice"})
	assert.Equal(t, http.StatusOK, w.Code)

	// nor may she touch someone else
	w = e.do("PUT", "/api/v1/users/"+admin.ID, e.token(alice), map[string]any{"first_name": "Mallory"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// an admin can change her email
	w = e.do("PUT", "/api/v1/users/"+alice.ID, e.token(admin), map[string]any{"email": "alice2@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice2@example.com")

	w = e.do("PUT", "/api/v1/users/unknown", e.token(admin), map[string]any{"first_name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// unknown payload fields are rejected
	w = e.do("PUT", "/api/v1/users/"+alice.ID, e.token(alice), map[string]any{"is_admin": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginAndProtected(t *testing.T) {
	e := newEnv(t)
	alice := e.seedUser("Alice", "alice@example.com", "alicepw", false)

	// wrong password
	w := e.do("POST", "/api/v1/login", "", map[string]any{"email": "alice@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// unknown email answers the same way
	w = e.do("POST", "/api/v1/login", "", map[string]any{"email": "ghost@example.com", "password": "whatever"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// missing fields
	w = e.do("POST", "/api/v1/login", "", map[string]any{"email": "alice@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// success issues a token
	w = e.do("POST", "/api/v1/login", "", map[string]any{"email": "alice@example.com", "password": "alicepw"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[map[string]string](t, w)
	token := body["access_token"]
	require.NotEmpty(t, token)

	// protected endpoint
	w = e.do("GET", "/api/v1/protected", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do("GET", "/api/v1/protected", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), alice.ID)

	// a valid token whose subject vanished answers 404
	require.NoError(t, e.repos.Users.Delete(context.Background(), alice.ID))
	w = e.do("GET", "/api/v1/protected", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	e := newEnv(t)
	w := e.do("GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	e := newEnv(t)
	w := e.do("GET", "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
