package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"glowbook/config"
	bookingRepo "glowbook/database/repository/booking"
	"glowbook/middleware"
	"glowbook/models"
	"glowbook/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubBookingService records lifecycle calls against a fixed set of bookings.
type stubBookingService struct {
	byCode    map[string]models.Booking
	cancelled []string
	approved  []string
}

func (s *stubBookingService) lookup(code string) (*models.Booking, error) {
	b, ok := s.byCode[code]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	out := b
	return &out, nil
}

func (s *stubBookingService) Create(ctx context.Context, draft models.BookingDraft, conf models.PaymentConfirmation) (*models.Booking, error) {
	return nil, nil
}

func (s *stubBookingService) ListForUser(ctx context.Context, userID string) ([]models.Booking, []booking.RescheduleNotice, error) {
	return nil, nil, nil
}

func (s *stubBookingService) GetByCode(ctx context.Context, code string) (*models.Booking, error) {
	return s.lookup(code)
}

func (s *stubBookingService) Cancel(ctx context.Context, code, reason string) (*models.Booking, error) {
	b, err := s.lookup(code)
	if err != nil {
		return nil, err
	}
	s.cancelled = append(s.cancelled, code)
	b.Status = models.StatusCancelled
	b.CancelReason = reason
	return b, nil
}

func (s *stubBookingService) RequestReschedule(ctx context.Context, code, newDate, newTime, reason string) (*models.Booking, error) {
	return s.lookup(code)
}

func (s *stubBookingService) CancelReschedule(ctx context.Context, code string) (*models.Booking, error) {
	return s.lookup(code)
}

func (s *stubBookingService) ApproveReschedule(ctx context.Context, code string) (*models.Booking, error) {
	b, err := s.lookup(code)
	if err != nil {
		return nil, err
	}
	s.approved = append(s.approved, code)
	return b, nil
}

func (s *stubBookingService) RejectReschedule(ctx context.Context, code string) (*models.Booking, error) {
	return s.lookup(code)
}

func (s *stubBookingService) Complete(ctx context.Context, code string) (*models.Booking, error) {
	return s.lookup(code)
}

func (s *stubBookingService) ToggleReminder(ctx context.Context, code string, enabled bool) (*models.Booking, error) {
	return s.lookup(code)
}

func authAs(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

// bookingTestRouter wires the code-addressed endpoints the way routes does,
// with the caller's identity injected instead of a real JWT.
func bookingTestRouter(svc *stubBookingService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &BookingHandler{
		Service: svc,
		Logger:  zap.NewNop(),
		Now:     func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) },
	}
	r := gin.New()
	api := r.Group("/api/bookings")
	api.Use(authAs(userID))
	api.GET("/:code", h.GetBookingHandler)
	api.POST("/:code/cancel", h.CancelBookingHandler)
	api.POST("/:code/reschedule", h.RequestRescheduleHandler)
	api.DELETE("/:code/reschedule", h.CancelRescheduleHandler)
	api.PUT("/:code/reminder", h.ToggleReminderHandler)

	staff := r.Group("/api/bookings")
	staff.Use(middleware.StaffAuthMiddleware())
	staff.POST("/:code/reschedule/approve", h.ApproveRescheduleHandler)
	return r
}

func seededStub() *stubBookingService {
	return &stubBookingService{byCode: map[string]models.Booking{
		"GB-OWNED00001": {
			BookingCode: "GB-OWNED00001",
			UserID:      "u1",
			StaffID:     "st1",
			Date:        "2024-06-10",
			Time:        "10:00:00",
			Status:      models.StatusUpcoming,
		},
	}}
}

func doJSON(r *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBookingEndpointsHideForeignBookings(t *testing.T) {
	svc := seededStub()
	r := bookingTestRouter(svc, "u2")

	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/bookings/GB-OWNED00001", ""},
		{http.MethodPost, "/api/bookings/GB-OWNED00001/cancel", `{"reason":"mine now"}`},
		{http.MethodPost, "/api/bookings/GB-OWNED00001/reschedule", `{"date":"2024-06-12","time":"11:00:00"}`},
		{http.MethodDelete, "/api/bookings/GB-OWNED00001/reschedule", ""},
		{http.MethodPut, "/api/bookings/GB-OWNED00001/reminder", `{"enabled":false}`},
	}
	for _, tc := range cases {
		w := doJSON(r, tc.method, tc.path, tc.body, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s", tc.method, tc.path)
	}
	assert.Empty(t, svc.cancelled, "another user's cancel must never reach the service")
}

func TestCancelBookingAsOwner(t *testing.T) {
	svc := seededStub()
	r := bookingTestRouter(svc, "u1")

	w := doJSON(r, http.MethodPost, "/api/bookings/GB-OWNED00001/cancel", `{"reason":"plans changed"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"GB-OWNED00001"}, svc.cancelled)
}

func TestGetBookingUnknownCodeIsNotFound(t *testing.T) {
	svc := seededStub()
	r := bookingTestRouter(svc, "u1")

	w := doJSON(r, http.MethodGet, "/api/bookings/GB-NOSUCH0001", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApproveRescheduleRequiresStaffKey(t *testing.T) {
	config.AppConfig.StaffAPIKey = "staff-secret"
	t.Cleanup(func() { config.AppConfig.StaffAPIKey = "" })

	svc := seededStub()
	r := bookingTestRouter(svc, "u1")

	// No key, and a customer bearer token that is not the key.
	w := doJSON(r, http.MethodPost, "/api/bookings/GB-OWNED00001/reschedule/approve", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(r, http.MethodPost, "/api/bookings/GB-OWNED00001/reschedule/approve", "", map[string]string{
		"Authorization": "Bearer some-user-jwt",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, svc.approved)

	w = doJSON(r, http.MethodPost, "/api/bookings/GB-OWNED00001/reschedule/approve", "", map[string]string{
		"Authorization": "Bearer staff-secret",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"GB-OWNED00001"}, svc.approved)
}
