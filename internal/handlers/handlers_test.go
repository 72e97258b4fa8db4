package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/million_tracker/internal/apperrors"
	"github.com/SscSPs/million_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/million_tracker/internal/core/ports/services"
	"github.com/SscSPs/million_tracker/internal/dto"
	"github.com/SscSPs/million_tracker/internal/handlers"
	"github.com/SscSPs/million_tracker/internal/platform/config"
	"github.com/SscSPs/million_tracker/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	cfg           *config.Config
	mockDashboard *MockDashboardService
	mockRates     *MockRateService
	mockAuth      *MockAuthService
	asOf          time.Time
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.asOf = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.cfg = &config.Config{
		IsProduction:   true,
		JWTSecret:      "test-secret-key-that-is-long-enough",
		JWTIssuer:      "million-tracker-test",
		RateLimit:      "1000-M",
		LoginRateLimit: "5-M",
	}
	suite.mockDashboard = new(MockDashboardService)
	suite.mockRates = new(MockRateService)
	suite.mockAuth = &MockAuthService{enabled: true}

	suite.router = gin.New()
	err := handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		Dashboard: suite.mockDashboard,
		Rates:     suite.mockRates,
		Auth:      suite.mockAuth,
	})
	suite.Require().NoError(err)
}

// generateTestToken creates a valid token for the configured secret and issuer.
func (suite *HandlerTestSuite) generateTestToken() string {
	token, _, err := utils.IssueToken("owner", suite.cfg.JWTSecret, suite.cfg.JWTIssuer, time.Now(), time.Hour)
	suite.Require().NoError(err)
	return token
}

func (suite *HandlerTestSuite) do(req *http.Request, authenticated bool) *httptest.ResponseRecorder {
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken())
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) get(url string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	return suite.do(req, true)
}

func (suite *HandlerTestSuite) errorBody(w *httptest.ResponseRecorder) string {
	var body handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := suite.do(req, false)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestProtectedRoutesRequireToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/dashboard/current", nil)
	w := suite.do(req, false)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockDashboard.AssertNotCalled(suite.T(), "Current", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestLogin_Success() {
	expiresAt := suite.asOf.Add(time.Hour)
	suite.mockAuth.On("Login", mock.Anything, "owner", "secret").Return("signed-token", expiresAt, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"owner","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	w := suite.do(req, false)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.LoginResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("signed-token", body.Token)
	suite.True(expiresAt.Equal(body.ExpiresAt))
	suite.mockAuth.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockAuth.On("Login", mock.Anything, "owner", "wrong").
		Return("", time.Time{}, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"owner","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	w := suite.do(req, false)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestLogin_MissingFields() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"owner"}`))
	req.Header.Set("Content-Type", "application/json")
	w := suite.do(req, false)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAuth.AssertNotCalled(suite.T(), "Login", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestLogin_RateLimited() {
	suite.mockAuth.On("Login", mock.Anything, "owner", "wrong").
		Return("", time.Time{}, apperrors.ErrUnauthorized)

	var last int
	for i := 0; i < 6; i++ {
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"owner","password":"wrong"}`))
		req.Header.Set("Content-Type", "application/json")
		last = suite.do(req, false).Code
	}
	suite.Equal(http.StatusTooManyRequests, last)
}

func (suite *HandlerTestSuite) TestGetCurrent_Success() {
	snapshot := testSnapshot(suite.asOf)
	view := &domain.CurrentView{
		Period:           "2024-02",
		AvailablePeriods: []string{"2024-01", "2024-02"},
		Records: []domain.LedgerRecord{
			{DateLabel: "2024-02", Amount: decimal.NewFromInt(500), Currency: domain.USD, Category: "Cash"},
		},
		TotalUSD:   decimal.NewFromInt(500),
		Progress:   &domain.GoalProgress{Target: domain.DefaultGoalTarget, Current: decimal.NewFromInt(500), Fraction: decimal.RequireFromString("0.0005")},
		ByCurrency: []domain.AggregateRow{{Key: "USD", Amount: decimal.NewFromInt(500)}},
		ByCategory: []domain.AggregateRow{{Key: "Cash", Amount: decimal.NewFromInt(500)}},
		Rates:      &snapshot,
	}
	suite.mockDashboard.On("Current", mock.Anything, "2024-02").Return(view, nil).Once()

	w := suite.get("/api/v1/dashboard/current?period=2024-02")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.CurrentResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("2024-02", body.Period)
	suite.Equal([]string{"2024-01", "2024-02"}, body.AvailablePeriods)
	suite.Require().NotNil(body.TotalUSD)
	suite.True(decimal.NewFromInt(500).Equal(body.TotalUSD.Amount))
	suite.Len(body.Records, 1)
	suite.Require().Len(body.ByCategoryUSD, 1)
	suite.Equal("Cash", body.ByCategoryUSD[0].Category)
	suite.Equal("USD", body.ByCategoryUSD[0].TotalUSD.Currency)
	suite.mockDashboard.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetCurrent_UnknownPeriod() {
	suite.mockDashboard.On("Current", mock.Anything, "1999-01").
		Return(nil, fmt.Errorf("%w: no ledger entries for period %q", apperrors.ErrNotFound, "1999-01")).Once()

	w := suite.get("/api/v1/dashboard/current?period=1999-01")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Contains(suite.errorBody(w), "1999-01")
}

func (suite *HandlerTestSuite) TestGetCurrent_ErrorMapping() {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: Amount", apperrors.ErrMissingColumns), http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: timeout", apperrors.ErrDataSource), http.StatusBadGateway},
		{fmt.Errorf("%w: no spreadsheet", apperrors.ErrNotConfigured), http.StatusNotImplemented},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		suite.mockDashboard.On("Current", mock.Anything, "").Return(nil, tc.err).Once()
		w := suite.get("/api/v1/dashboard/current")
		suite.Equal(tc.status, w.Code, tc.err.Error())
	}
	// Internal errors are not echoed to the client.
	suite.mockDashboard.On("Current", mock.Anything, "").Return(nil, errors.New("pq: secret detail")).Once()
	w := suite.get("/api/v1/dashboard/current")
	suite.NotContains(suite.errorBody(w), "secret detail")
}

func (suite *HandlerTestSuite) TestGetEvolution_Success() {
	view := &domain.EvolutionView{
		Granularity: domain.ByMonth,
		Series: []domain.AggregateRow{
			{Key: "2024-01", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(200)},
			{Key: "2024-02", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(500)},
		},
		Delta: domain.PeriodDelta{
			Initial:       decimal.NewFromInt(200),
			Current:       decimal.NewFromInt(500),
			Change:        decimal.NewFromInt(300),
			GrowthPercent: decimal.NewFromInt(150),
		},
		Target: domain.DefaultGoalTarget,
	}
	suite.mockDashboard.On("Evolution", mock.Anything, domain.ByMonth).Return(view, nil).Once()

	w := suite.get("/api/v1/dashboard/evolution?granularity=month")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.EvolutionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("month", body.Granularity)
	suite.Len(body.Series, 2)
	suite.Equal("150.00%", body.Delta.GrowthDisplay)
}

func (suite *HandlerTestSuite) TestGetEvolution_InvalidGranularity() {
	w := suite.get("/api/v1/dashboard/evolution?granularity=week")
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockDashboard.AssertNotCalled(suite.T(), "Evolution", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetBreakdown_RatesUnavailable() {
	suite.mockDashboard.On("Breakdown", mock.Anything).
		Return(nil, fmt.Errorf("%w: connection refused", apperrors.ErrRateFetch)).Once()

	w := suite.get("/api/v1/dashboard/breakdown")

	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *HandlerTestSuite) TestGetBreakdown_Success() {
	view := &domain.BreakdownView{
		ByInvestment: []domain.MultiCurrencyRow{{Key: "ITSA4", Amounts: domain.CurrencyAmounts{domain.USD: decimal.NewFromInt(200)}}},
		Totals:       domain.CurrencyAmounts{domain.USD: decimal.NewFromInt(200)},
		Rates:        testSnapshot(suite.asOf),
	}
	suite.mockDashboard.On("Breakdown", mock.Anything).Return(view, nil).Once()

	w := suite.get("/api/v1/dashboard/breakdown")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.BreakdownResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.ByInvestment, 1)
}

func (suite *HandlerTestSuite) TestUploadBreakdown() {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "ledger.csv")
	suite.Require().NoError(err)
	_, _ = part.Write([]byte("Date;Amount;Currency\n2024-01;1.000,00;BRL\n"))
	suite.Require().NoError(mw.Close())

	suite.mockDashboard.On("BreakdownFromTable", mock.Anything, mock.MatchedBy(func(t domain.RawTable) bool {
		return len(t.Header) == 3 && len(t.Rows) == 1 && t.Rows[0][1] == "1.000,00"
	})).Return(&domain.BreakdownView{Rates: testSnapshot(suite.asOf)}, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/dashboard/breakdown/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := suite.do(req, true)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockDashboard.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestUploadBreakdown_MissingFile() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/dashboard/breakdown/upload", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := suite.do(req, true)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetRates() {
	suite.mockRates.On("GetRates", mock.Anything).Return(testSnapshot(suite.asOf), nil).Once()

	w := suite.get("/api/v1/rates")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.RatesResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("USD", body.Base)
	suite.True(decimal.NewFromInt(5).Equal(body.Rates["BRL"]))
	suite.True(decimal.NewFromInt(1).Equal(body.Rates["USD"]))
}

func (suite *HandlerTestSuite) TestGetRateHistory() {
	suite.mockRates.On("History", mock.Anything, 0).
		Return([]domain.ArchivedSnapshot{{SnapshotID: "abc", Snapshot: testSnapshot(suite.asOf)}}, nil).Once()

	w := suite.get("/api/v1/rates/history")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.RateHistoryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body.Snapshots, 1)
	suite.Equal("abc", body.Snapshots[0].SnapshotID)
}

func (suite *HandlerTestSuite) TestGetRateHistory_Validation() {
	w := suite.get("/api/v1/rates/history?limit=500")
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.mockRates.On("History", mock.Anything, 10).
		Return(nil, fmt.Errorf("%w: rate history requires PGSQL_URL", apperrors.ErrNotConfigured)).Once()
	w = suite.get("/api/v1/rates/history?limit=10")
	suite.Equal(http.StatusNotImplemented, w.Code)
}

func (suite *HandlerTestSuite) TestConvert_LocaleAmount() {
	snapshot := testSnapshot(suite.asOf)
	suite.mockDashboard.On("Convert", mock.Anything,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.RequireFromString("1000.5")) }),
		domain.BRL, domain.USD,
	).Return(decimal.RequireFromString("200.1"), snapshot, nil).Once()

	w := suite.get("/api/v1/rates/convert?amount=1.000,50&from=brl&to=USD")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ConvertResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("BRL", body.From.Currency)
	suite.True(decimal.RequireFromString("200.1").Equal(body.To.Amount))
	suite.True(suite.asOf.Equal(body.RatesAsOf))
}

func (suite *HandlerTestSuite) TestConvert_Validation() {
	for _, url := range []string{
		"/api/v1/rates/convert?amount=10&from=GBP&to=USD",
		"/api/v1/rates/convert?amount=10&from=USD",
		"/api/v1/rates/convert?amount=abc&from=USD&to=EUR",
	} {
		w := suite.get(url)
		suite.Equal(http.StatusBadRequest, w.Code, url)
	}
	suite.mockDashboard.AssertNotCalled(suite.T(), "Convert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestAuthDisabled_OpenAPI() {
	suite.mockAuth.enabled = false
	router := gin.New()
	suite.Require().NoError(handlers.RegisterRoutes(router, suite.cfg, &portssvc.ServiceContainer{
		Dashboard: suite.mockDashboard,
		Rates:     suite.mockRates,
		Auth:      suite.mockAuth,
	}))
	suite.mockRates.On("GetRates", mock.Anything).Return(testSnapshot(suite.asOf), nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/rates", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
}

func TestRegisterRoutes_InvalidRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{IsProduction: true, RateLimit: "lots", LoginRateLimit: "5-M"}
	err := handlers.RegisterRoutes(gin.New(), cfg, &portssvc.ServiceContainer{Auth: &MockAuthService{}})
	if err == nil {
		t.Fatal("expected an error for an invalid rate limit")
	}
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
