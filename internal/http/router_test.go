package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/services"
	"busbooking/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		TotalItems int64 `json:"totalItems"`
	} `json:"pagination"`
	Code      string          `json:"code"`
	Details   json.RawMessage `json:"details"`
	RequestID string          `json:"request_id"`
}

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	f      testutil.Fixture
	tokens *services.TokenManager
	engine *gin.Engine
}

func newServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, 10)
	tokens := services.NewTokenManager("test-secret", time.Hour)
	engine := NewRouter(intconfig.Env{}, Deps{DB: db, Tokens: tokens, Location: time.UTC})
	return &testServer{t: t, db: db, f: f, tokens: tokens, engine: engine}
}

func (s *testServer) user(email string, role domain.Role, roleID uint) (models.User, string) {
	s.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(s.t, err)
	u := testutil.NewUser(s.t, s.db, email, roleID, string(hash))
	token, err := s.tokens.Generate(u.ID, role)
	require.NoError(s.t, err)
	return u, token
}

func (s *testServer) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestHealthAndNotFound(t *testing.T) {
	s := newServer(t)
	w, env := s.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, env = s.do(http.MethodGet, "/api/khong-co", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "route_not_found", env.Code)
	assert.NotEmpty(t, env.RequestID)

	w, env = s.do(http.MethodGet, "/api/db-check", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, env = s.do(http.MethodGet, "/api/routes", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "/api/orders/checkout")
}

func TestAuthEndpoints(t *testing.T) {
	s := newServer(t)
	w, env := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"fullName": "Võ Thị Lan", "email": "lan@example.com", "phone": "0977777777",
		"password": "secret1", "confirmPassword": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"fullName": "L", "email": "x", "phone": "1", "password": "1", "confirmPassword": "2",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", env.Code)
	fields := decode[[]domain.FieldError](t, env.Details)
	assert.NotEmpty(t, fields)

	w, env = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "lan@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[services.LoginResult](t, env.Data)
	require.NotEmpty(t, login.AccessToken)

	w, _ = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "lan@example.com", "password": "wrong12"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.do(http.MethodGet, "/api/auth/me", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[models.PublicUser](t, env.Data)
	assert.Equal(t, domain.RoleUser, me.Roles.Name)

	w, _ = s.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.do(http.MethodPatch, "/api/auth/profile", login.AccessToken, map[string]string{"fullName": "Võ Lan", "phone": "0966666666"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Võ Lan", decode[models.PublicUser](t, env.Data).FullName)

	w, _ = s.do(http.MethodPatch, "/api/auth/profile/password", login.AccessToken, map[string]string{
		"currentPassword": "secret1", "newPassword": "secret2", "confirmPassword": "secret2",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenericResourceCrud(t *testing.T) {
	s := newServer(t)
	_, admin := s.user("admin@example.com", domain.RoleAdmin, testutil.RoleAdminID)
	_, customer := s.user("khach@example.com", domain.RoleUser, testutil.RoleUserID)

	body := map[string]any{"cityId": s.f.From.ID, "name": "Bến xe Giáp Bát"}
	w, _ := s.do(http.MethodPost, "/api/locations", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = s.do(http.MethodPost, "/api/locations", customer, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := s.do(http.MethodPost, "/api/locations", admin, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	loc := decode[models.Location](t, env.Data)
	assert.True(t, loc.IsActive)
	path := fmt.Sprintf("/api/locations/%d", loc.ID)

	w, env = s.do(http.MethodPatch, path, admin, map[string]any{"name": "Bến xe Nước Ngầm"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	loc = decode[models.Location](t, env.Data)
	assert.Equal(t, "Bến xe Nước Ngầm", loc.Name)
	assert.True(t, loc.IsActive)

	w, env = s.do(http.MethodPut, path, admin, map[string]any{"isActive": false})
	require.Equal(t, http.StatusOK, w.Code)
	loc = decode[models.Location](t, env.Data)
	assert.False(t, loc.IsActive)
	assert.Equal(t, "Bến xe Nước Ngầm", loc.Name)

	w, _ = s.do(http.MethodPatch, path, admin, "[1,2]")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodGet, "/api/locations?isActive=false&search=ng%E1%BA%A7m", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[domain.Page[models.Location]](t, env.Data)
	require.Len(t, page.Items, 1)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, int64(1), env.Pagination.TotalItems)

	w, env = s.do(http.MethodGet, "/api/locations?isActive=true", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[domain.Page[models.Location]](t, env.Data).Items)

	w, _ = s.do(http.MethodDelete, path, admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, env = s.do(http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", env.Code)

	w, _ = s.do(http.MethodGet, "/api/locations/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsersAreAdminOnly(t *testing.T) {
	s := newServer(t)
	_, admin := s.user("admin@example.com", domain.RoleAdmin, testutil.RoleAdminID)
	_, company := s.user("nhaxe@example.com", domain.RoleCompany, testutil.RoleCompanyID)

	w, _ := s.do(http.MethodGet, "/api/users", company, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := s.do(http.MethodPost, "/api/users", admin, map[string]string{
		"fullName": "Đỗ Văn Hùng", "email": "hung@example.com", "phone": "0933333333",
		"password": "secret1", "role": "company",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.PublicUser](t, env.Data)
	assert.Equal(t, domain.RoleCompany, created.Roles.Name)
	assert.NotContains(t, string(env.Data), "password")

	w, env = s.do(http.MethodGet, "/api/users?search=hung", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[domain.Page[models.User]](t, env.Data).Items, 1)
}

func TestPartnerRegistration(t *testing.T) {
	s := newServer(t)
	w, env := s.do(http.MethodPost, "/api/partners", "", map[string]string{
		"fullName": "Bùi Quang Huy", "company": "Nhà xe Hoàng Long", "email": "huy@example.com",
		"phone": "0944444444", "message": "Muốn hợp tác",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[models.Partner](t, env.Data)
	assert.Equal(t, models.PartnerUnprocessed, p.Status)

	w, _ = s.do(http.MethodGet, "/api/partners", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingFlow(t *testing.T) {
	s := newServer(t)
	_, customer := s.user("khach@example.com", domain.RoleUser, testutil.RoleUserID)

	w, env := s.do(http.MethodPost, "/api/trips/search", "", map[string]any{
		"fromCityId":    s.f.From.ID,
		"toCityId":      s.f.To.ID,
		"departureDate": s.f.Trip.DepartureTime.UTC().Format("2006-01-02"),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	found := decode[domain.Page[services.TripSummary]](t, env.Data)
	require.Len(t, found.Items, 1)

	w, env = s.do(http.MethodGet, fmt.Sprintf("/api/trips/%d", s.f.Trip.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPost, "/api/orders/checkout", "", map[string]any{"tripId": s.f.Trip.ID})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.do(http.MethodPost, "/api/orders/checkout", customer, map[string]any{
		"tripId": s.f.Trip.ID,
		"passengers": []map[string]any{
			{"seatNumber": 1, "fullName": "Ngô Bảo Châu", "phone": "0912345678"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decode[models.Order](t, env.Data)
	require.Len(t, order.Tickets, 1)
	ticketID := order.Tickets[0].ID

	w, env = s.do(http.MethodGet, fmt.Sprintf("/api/trips/seats/%d", s.f.Trip.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	seats := decode[services.SeatMap](t, env.Data)
	assert.True(t, seats.Seats[0].Booked)
	assert.Equal(t, 9, seats.AvailableSeats)

	w, env = s.do(http.MethodGet, "/api/orders/mine", customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[domain.Page[models.Order]](t, env.Data).Items, 1)

	w, _ = s.do(http.MethodGet, fmt.Sprintf("/api/tickets/%d/e-ticket", ticketID), customer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".pdf")

	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/tickets/%d/cancel", ticketID), customer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.TicketCancelled, decode[models.Ticket](t, env.Data).Status)

	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/tickets/%d/cancel", ticketID), customer, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", env.Code)
}

func TestCouponValidateEndpoint(t *testing.T) {
	s := newServer(t)
	require.NoError(t, s.db.Create(&models.Coupon{
		Code: "HE2025", DiscountType: models.DiscountFixed, DiscountValue: 100000, MaxUses: 5,
		ValidFrom: time.Now().Add(-time.Hour), ValidTo: time.Now().Add(time.Hour),
	}).Error)

	w, env := s.do(http.MethodPost, "/api/coupons/validate", "", map[string]any{"code": "he2025", "tripId": s.f.Trip.ID, "seats": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	q := decode[services.CouponQuote](t, env.Data)
	assert.Equal(t, int64(350000), q.Total)
}

func TestCompanyAreaEndpoints(t *testing.T) {
	s := newServer(t)
	owner, company := s.user("owner@example.com", domain.RoleCompany, testutil.RoleCompanyID)
	_, customer := s.user("khach@example.com", domain.RoleUser, testutil.RoleUserID)
	require.NoError(t, s.db.Model(&models.BusCompany{}).Where("id = ?", s.f.Company.ID).Update("owner_id", owner.ID).Error)
	require.NoError(t, s.db.Create(&models.CompanyPolicy{
		BusCompanyID: s.f.Company.ID, PolicyType: models.PolicyBaggage, Title: "Hành lý tối đa 20kg", IsActive: true,
	}).Error)

	w, _ := s.do(http.MethodGet, "/api/company/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = s.do(http.MethodGet, "/api/company/profile", customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := s.do(http.MethodGet, "/api/company/profile", company, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, s.f.Company.Name, decode[models.BusCompany](t, env.Data).Name)

	w, env = s.do(http.MethodGet, "/api/company/policies", company, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.CompanyPolicy](t, env.Data), 1)
}

func TestClosedEnumsRejectedOnWrite(t *testing.T) {
	s := newServer(t)
	_, admin := s.user("admin@example.com", domain.RoleAdmin, testutil.RoleAdminID)

	w, env := s.do(http.MethodPost, "/api/points", admin, map[string]any{"locationName": "Ngã ba Vũng Tàu", "type": "teleport"})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, "validation_error", env.Code)

	w, env = s.do(http.MethodPost, "/api/points", admin, map[string]any{"locationName": "Ngã ba Vũng Tàu", "type": "pickup"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	point := decode[models.Point](t, env.Data)
	w, _ = s.do(http.MethodPatch, fmt.Sprintf("/api/points/%d", point.ID), admin, map[string]any{"type": "teleport"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	coupon := map[string]any{
		"code": "BOGUS1", "discountType": "fixed", "discountValue": 10000, "maxUses": 5,
		"validFrom": time.Now().Add(-time.Hour).Format(time.RFC3339),
		"validTo":   time.Now().Add(time.Hour).Format(time.RFC3339),
		"status":    "bogus",
	}
	w, env = s.do(http.MethodPost, "/api/coupons", admin, coupon)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Equal(t, "validation_error", env.Code)

	coupon["status"] = "inactive"
	w, env = s.do(http.MethodPost, "/api/coupons", admin, coupon)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, models.CouponInactive, decode[models.Coupon](t, env.Data).Status)
}

func TestCustomerReviews(t *testing.T) {
	s := newServer(t)
	_, customer := s.user("khach@example.com", domain.RoleUser, testutil.RoleUserID)
	_, admin := s.user("admin@example.com", domain.RoleAdmin, testutil.RoleAdminID)
	body := map[string]any{"tripId": s.f.Trip.ID, "rating": 5, "commentText": "Tài xế lái cẩn thận"}

	w, _ := s.do(http.MethodPost, "/api/reviews", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = s.do(http.MethodPost, "/api/reviews", customer, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodPost, "/api/orders/checkout", customer, map[string]any{
		"tripId": s.f.Trip.ID,
		"passengers": []map[string]any{
			{"seatNumber": 1, "fullName": "Ngô Bảo Châu", "phone": "0912345678"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := s.do(http.MethodPost, "/api/reviews", customer, map[string]any{"tripId": s.f.Trip.ID, "rating": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", env.Code)

	w, env = s.do(http.MethodPost, "/api/reviews", customer, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	review := decode[models.Review](t, env.Data)
	assert.Equal(t, 5, review.Rating)
	require.NotNil(t, review.BusCompanyID)
	assert.Equal(t, s.f.Company.ID, *review.BusCompanyID)
	path := fmt.Sprintf("/api/reviews/%d", review.ID)

	w, _ = s.do(http.MethodPost, "/api/reviews", customer, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.do(http.MethodPatch, path, customer, map[string]any{"isVisible": false})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = s.do(http.MethodDelete, path, customer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = s.do(http.MethodGet, "/api/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[domain.Page[models.Review]](t, env.Data).Items, 1)

	w, env = s.do(http.MethodPatch, path, admin, map[string]any{"isVisible": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, decode[models.Review](t, env.Data).IsVisible)
}

func TestCompanyWritesStayInOwnCompany(t *testing.T) {
	s := newServer(t)
	owner, company := s.user("owner@example.com", domain.RoleCompany, testutil.RoleCompanyID)
	_, orphan := s.user("chua-gan@example.com", domain.RoleCompany, testutil.RoleCompanyID)
	_, admin := s.user("admin@example.com", domain.RoleAdmin, testutil.RoleAdminID)
	require.NoError(t, s.db.Model(&models.BusCompany{}).Where("id = ?", s.f.Company.ID).Update("owner_id", owner.ID).Error)

	rival := models.BusCompany{Name: "Nhà xe Phương Trang", IsActive: true}
	require.NoError(t, s.db.Create(&rival).Error)
	foreign := models.CompanyPolicy{BusCompanyID: rival.ID, PolicyType: models.PolicyGeneral, Title: "Quy định chung", IsActive: true}
	require.NoError(t, s.db.Create(&foreign).Error)
	foreignPath := fmt.Sprintf("/api/company-policies/%d", foreign.ID)

	w, _ := s.do(http.MethodPatch, foreignPath, company, map[string]any{"title": "Bị sửa"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = s.do(http.MethodDelete, foreignPath, company, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	body := map[string]any{"companyId": rival.ID, "policyType": "BAGGAGE", "title": "Hành lý tối đa 20kg"}
	w, _ = s.do(http.MethodPost, "/api/company-policies", orphan, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := s.do(http.MethodPost, "/api/company-policies", company, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	own := decode[models.CompanyPolicy](t, env.Data)
	assert.Equal(t, s.f.Company.ID, own.BusCompanyID)

	w, env = s.do(http.MethodPatch, fmt.Sprintf("/api/company-policies/%d", own.ID), company, map[string]any{"companyId": rival.ID, "title": "Hành lý tối đa 25kg"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	own = decode[models.CompanyPolicy](t, env.Data)
	assert.Equal(t, s.f.Company.ID, own.BusCompanyID)
	assert.Equal(t, "Hành lý tối đa 25kg", own.Title)

	w, _ = s.do(http.MethodPatch, foreignPath, admin, map[string]any{"title": "Quy định chung mới"})
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.CompanyPolicy
	require.NoError(t, s.db.First(&stored, foreign.ID).Error)
	assert.Equal(t, "Quy định chung mới", stored.Title)
}
