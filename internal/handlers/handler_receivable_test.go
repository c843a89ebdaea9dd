package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/BalansDev/branch_accounting_app/internal/apperrors"
	"github.com/BalansDev/branch_accounting_app/internal/core/domain"
	portssvc "github.com/BalansDev/branch_accounting_app/internal/core/ports/services"
	"github.com/BalansDev/branch_accounting_app/internal/dto"
	"github.com/BalansDev/branch_accounting_app/internal/handlers"
	"github.com/BalansDev/branch_accounting_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReceivableService ---
type MockReceivableService struct {
	mock.Mock
}

func (m *MockReceivableService) CreateReceivable(ctx context.Context, req dto.CreateReceivableRequest) (*domain.Receivable, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableService) UpdateReceivable(ctx context.Context, receivableID int64, req dto.UpdateReceivableRequest) (*domain.Receivable, error) {
	args := m.Called(ctx, receivableID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableService) DeleteReceivable(ctx context.Context, receivableID int64) error {
	args := m.Called(ctx, receivableID)
	return args.Error(0)
}

func (m *MockReceivableService) GetReceivableByID(ctx context.Context, receivableID int64) (*domain.Receivable, error) {
	args := m.Called(ctx, receivableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableService) ListReceivables(ctx context.Context, query domain.LedgerQuery) ([]domain.Receivable, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receivable), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ReceivableSvcFacade = (*MockReceivableService)(nil)

// --- Test Suite ---
type ReceivableHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockReceivableService
	jwtSecret   string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ReceivableHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "baa-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *ReceivableHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockReceivableService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterReceivableRoutes(v1, suite.mockService)
}

func (suite *ReceivableHandlerTestSuite) authedRequest(method, url string, body string) *http.Request {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- Test Cases ---

func (suite *ReceivableHandlerTestSuite) TestListReceivables_Success() {
	expected := []domain.Receivable{
		{ID: 1, ClientName: "Olmos Savdo", Branch: "Zarkent Filiali", Outstanding: decimal.NewFromInt(2500)},
		{ID: 2, ClientName: "Baraka Servis", Branch: "Zarkent Filiali", Outstanding: decimal.NewFromInt(100)},
	}

	suite.mockService.On("ListReceivables",
		mock.AnythingOfType("*context.valueCtx"),
		domain.LedgerQuery{Branch: "Zarkent Filiali", Limit: 10},
	).Return(expected, nil).Once()

	req := suite.authedRequest(http.MethodGet, "/api/v1/receivables?branch=Zarkent%20Filiali&limit=10", "")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody []dto.ReceivableResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err)
	suite.Len(responseBody, 2)
	suite.Equal("Olmos Savdo", responseBody[0].ClientName)

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReceivableHandlerTestSuite) TestListReceivables_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/receivables", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListReceivables", mock.Anything, mock.Anything)
}

func (suite *ReceivableHandlerTestSuite) TestCreateReceivable_ValidationError() {
	suite.mockService.On("CreateReceivable",
		mock.AnythingOfType("*context.valueCtx"),
		mock.AnythingOfType("dto.CreateReceivableRequest"),
	).Return(nil, apperrors.ErrValidation).Once()

	body := `{"clientName":"Client","branch":"Nowhere Filiali"}`
	req := suite.authedRequest(http.MethodPost, "/api/v1/receivables", body)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReceivableHandlerTestSuite) TestGetReceivable_NotFound() {
	suite.mockService.On("GetReceivableByID",
		mock.AnythingOfType("*context.valueCtx"), int64(99),
	).Return(nil, apperrors.ErrNotFound).Once()

	req := suite.authedRequest(http.MethodGet, "/api/v1/receivables/99", "")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReceivableHandlerTestSuite) TestGetReceivable_InvalidID() {
	req := suite.authedRequest(http.MethodGet, "/api/v1/receivables/not-a-number", "")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "GetReceivableByID", mock.Anything, mock.Anything)
}

func (suite *ReceivableHandlerTestSuite) TestExportReceivables_QuotedCSV() {
	expected := []domain.Receivable{
		{
			ID:            1,
			ClientName:    `Olmos "Savdo"`,
			Branch:        "Zarkent Filiali",
			PriorCarry:    domain.PriorPeriodCarry{Months: 2, Amount: decimal.NewFromInt(100)},
			MonthlyCharge: decimal.NewFromInt(200),
			TotalDue:      decimal.NewFromInt(300),
			Paid:          domain.PaymentBreakdown{Cash: decimal.NewFromInt(50), Total: decimal.NewFromInt(50)},
			Outstanding:   decimal.NewFromInt(250),
		},
	}

	suite.mockService.On("ListReceivables",
		mock.AnythingOfType("*context.valueCtx"), domain.LedgerQuery{},
	).Return(expected, nil).Once()

	req := suite.authedRequest(http.MethodGet, "/api/v1/receivables/export", "")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "text/csv")
	suite.Contains(w.Header().Get("Content-Disposition"), "receivables_")

	body := w.Body.String()
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	suite.Require().Len(lines, 2)
	suite.Equal(`"Client","Tax ID","Phone","Contact","Service","Branch","Segment","Prior Months","Prior Amount","Monthly Charge","Total Due","Cash","Bank Transfer","Card","Paid Total","Outstanding"`, lines[0])
	// Text cells are always quoted, with embedded quotes doubled; numbers are not.
	suite.Equal(`"Olmos ""Savdo""","","","","","Zarkent Filiali","",2,100,200,300,50,0,0,50,250`, lines[1])

	suite.mockService.AssertExpectations(suite.T())
}

func (suite *ReceivableHandlerTestSuite) TestDeleteReceivable_Success() {
	suite.mockService.On("DeleteReceivable",
		mock.AnythingOfType("*context.valueCtx"), int64(5),
	).Return(nil).Once()

	req := suite.authedRequest(http.MethodDelete, "/api/v1/receivables/5", "")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestReceivableHandler(t *testing.T) {
	suite.Run(t, new(ReceivableHandlerTestSuite))
}
