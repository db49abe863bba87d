package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/complaintbox/backend/internal/config"
	"github.com/complaintbox/backend/internal/handlers"
	"github.com/complaintbox/backend/internal/middleware"
	"github.com/complaintbox/backend/internal/models"
	"github.com/complaintbox/backend/internal/ratelimit"
	"github.com/complaintbox/backend/internal/roster"
	"github.com/complaintbox/backend/internal/routes"
	"github.com/complaintbox/backend/internal/services"
	"github.com/complaintbox/backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testSecret    = "test-jwt-secret"
	testGateToken = "gate-s3cret"
)

func testApp(store storage.Storage) *fiber.App {
	cfg := &config.Config{
		JWTSecret:            testSecret,
		JWTExpiry:            24 * time.Hour,
		ComplaintAccessToken: testGateToken,
		RateLimitWindow:      15 * time.Minute,
		RateLimitMax:         3,
	}

	people := roster.NewRegistry()
	people.Register(&roster.Person{ID: "p1", Name: "Rahim Uddin", Role: "Teacher", Department: "Mathematics"})

	complaintService := services.NewComplaintService(store, people)
	authService := services.NewAuthService(store, cfg)
	limiter := ratelimit.NewMemory(cfg.RateLimitWindow, cfg.RateLimitMax)

	app := fiber.New()
	routes.Setup(app, cfg,
		handlers.NewComplaintHandler(cfg, complaintService, limiter),
		handlers.NewAuthHandler(authService),
		handlers.NewHealthHandler(),
		handlers.NewPagesHandler(people),
	)
	return app
}

func sessionToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":      uuid.NewString(),
		"username": "mod",
		"role":     role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func submitRequest(body map[string]interface{}, ip string) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/complaints", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.GateHeader, testGateToken)
	req.Header.Set("X-Forwarded-For", ip)
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestSubmit_Created(t *testing.T) {
	store := new(MockStorage)
	newID := uuid.New()
	store.On("CreateComplaint", mock.AnythingOfType("*models.Complaint")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Complaint).ID = newID
		}).
		Return(nil)

	app := testApp(store)
	resp, err := app.Test(submitRequest(map[string]interface{}{
		"againstPersonId": "p1",
		"complaint":       "this is a test complaint",
	}, "203.0.113.7"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Complaint submitted successfully", body["message"])
	assert.Equal(t, newID.String(), body["id"])
}

func TestSubmit_MissingGateTokenForbidden(t *testing.T) {
	store := new(MockStorage)
	app := testApp(store)

	payload, _ := json.Marshal(map[string]interface{}{
		"againstPersonId": "p1",
		"complaint":       "this is a test complaint",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/complaints", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	store.AssertNotCalled(t, "CreateComplaint", mock.Anything)
}

func TestSubmit_GateCookieAccepted(t *testing.T) {
	store := new(MockStorage)
	store.On("CreateComplaint", mock.AnythingOfType("*models.Complaint")).Return(nil)
	app := testApp(store)

	payload, _ := json.Marshal(map[string]interface{}{
		"againstPersonId": "p1",
		"complaint":       "this is a test complaint",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/complaints", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: middleware.GateCookie, Value: testGateToken})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestSubmit_ValidationRejected(t *testing.T) {
	store := new(MockStorage)
	app := testApp(store)

	resp, err := app.Test(submitRequest(map[string]interface{}{
		"againstPersonId": "p1",
		"complaint":       "short",
	}, "203.0.113.7"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "complaint must be between 10 and 5000 characters", body["error"])
}

func TestSubmit_FourthWithinWindowRateLimited(t *testing.T) {
	store := new(MockStorage)
	store.On("CreateComplaint", mock.AnythingOfType("*models.Complaint")).Return(nil)
	app := testApp(store)

	for i := 0; i < 3; i++ {
		resp, err := app.Test(submitRequest(map[string]interface{}{
			"againstPersonId": "p1",
			"complaint":       "this is a test complaint",
		}, "203.0.113.9"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, err := app.Test(submitRequest(map[string]interface{}{
		"againstPersonId": "p1",
		"complaint":       "this is a test complaint",
	}, "203.0.113.9"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	// A different IP is unaffected
	resp, err = app.Test(submitRequest(map[string]interface{}{
		"againstPersonId": "p1",
		"complaint":       "this is a test complaint",
	}, "198.51.100.4"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestList_RequiresSession(t *testing.T) {
	store := new(MockStorage)
	app := testApp(store)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/complaints", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestList_FilterAndPagination(t *testing.T) {
	store := new(MockStorage)
	personID := "p1"
	ip := "203.0.113.7"
	records := []models.Complaint{{
		ID:              uuid.New(),
		AgainstPersonID: &personID,
		Complaint:       "this is a test complaint",
		SubmittedAt:     time.Now().UTC(),
		IPAddress:       &ip,
	}}
	store.On("ListComplaints", mock.MatchedBy(func(f storage.ComplaintFilter) bool {
		return f.AgainstPersonID != nil && *f.AgainstPersonID == "p1" &&
			f.IsRead != nil && *f.IsRead == false
	}), 1, 10).Return(records, int64(1), nil)

	app := testApp(store)
	req := httptest.NewRequest(http.MethodGet, "/api/complaints?againstPersonId=p1&isRead=false", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, models.RoleAdmin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "ipAddress", "submitter addresses must never reach API consumers")

	var body struct {
		Complaints []map[string]interface{} `json:"complaints"`
		Pagination map[string]interface{}   `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body.Complaints, 1)
	assert.Equal(t, false, body.Complaints[0]["isRead"])
	assert.Equal(t, float64(1), body.Pagination["total"])
	assert.Equal(t, float64(1), body.Pagination["totalPages"])
	assert.Equal(t, false, body.Pagination["hasNext"])
	assert.Equal(t, false, body.Pagination["hasPrev"])
}

func TestMarkRead_UpdatesAndReturnsRecord(t *testing.T) {
	store := new(MockStorage)
	id := uuid.New()
	store.On("SetComplaintRead", id, true).
		Return(&models.Complaint{ID: id, Complaint: "this is a test complaint", IsRead: true}, nil)

	app := testApp(store)
	req := httptest.NewRequest(http.MethodPatch, "/api/complaints/"+id.String(),
		bytes.NewReader([]byte(`{"isRead":true}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, models.RoleAdmin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["isRead"])
}

func TestMarkRead_UnknownID(t *testing.T) {
	store := new(MockStorage)
	id := uuid.New()
	store.On("SetComplaintRead", id, false).Return(nil, storage.ErrNotFound)

	app := testApp(store)
	req := httptest.NewRequest(http.MethodPatch, "/api/complaints/"+id.String(),
		bytes.NewReader([]byte(`{"isRead":false}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, models.RoleAdmin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDelete_PlainAdminRejected(t *testing.T) {
	store := new(MockStorage)
	app := testApp(store)

	req := httptest.NewRequest(http.MethodDelete, "/api/complaints/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, models.RoleAdmin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Unauthorized - Super admin access required", body["error"])
	store.AssertNotCalled(t, "DeleteComplaint", mock.Anything)
}

func TestDelete_SuperAdminRemovesPermanently(t *testing.T) {
	store := new(MockStorage)
	id := uuid.New()
	store.On("DeleteComplaint", id).Return(nil).Once()
	store.On("DeleteComplaint", id).Return(storage.ErrNotFound)
	store.On("GetComplaint", id).Return(nil, storage.ErrNotFound)

	app := testApp(store)
	token := sessionToken(t, models.RoleSuperAdmin)

	req := httptest.NewRequest(http.MethodDelete, "/api/complaints/"+id.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Deleted ids stay gone: GET and a second DELETE both 404
	req = httptest.NewRequest(http.MethodGet, "/api/complaints/"+id.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	req = httptest.NewRequest(http.MethodDelete, "/api/complaints/"+id.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGet_InvalidIDIsNotFound(t *testing.T) {
	store := new(MockStorage)
	app := testApp(store)

	req := httptest.NewRequest(http.MethodGet, "/api/complaints/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken(t, models.RoleAdmin))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
