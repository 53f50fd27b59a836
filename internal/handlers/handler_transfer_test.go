package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wareflow/wms_backend/internal/apperrors"
	"github.com/wareflow/wms_backend/internal/core/domain"
	portssvc "github.com/wareflow/wms_backend/internal/core/ports/services"
	"github.com/wareflow/wms_backend/internal/dto"
	"github.com/wareflow/wms_backend/internal/handlers"
	"github.com/wareflow/wms_backend/internal/middleware"
	"github.com/wareflow/wms_backend/internal/utils"
)

// --- Mock TransferService ---

type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) GetDocument(ctx context.Context, transferID string, actorID string) (*domain.TransferDocument, error) {
	args := m.Called(ctx, transferID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferDocument), args.Error(1)
}

func (m *MockTransferService) ListDocuments(ctx context.Context, actorID string, params dto.ListTransfersParams) (*dto.ListTransfersResponse, error) {
	args := m.Called(ctx, actorID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransfersResponse), args.Error(1)
}

func (m *MockTransferService) GetHistory(ctx context.Context, transferID string, actorID string) ([]domain.StatusHistory, error) {
	args := m.Called(ctx, transferID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusHistory), args.Error(1)
}

func (m *MockTransferService) CreateDocument(ctx context.Context, req dto.CreateTransferRequest, actorID string) (*domain.TransferDocument, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferDocument), args.Error(1)
}

func (m *MockTransferService) DeleteDocument(ctx context.Context, transferID string, actorID string) error {
	args := m.Called(ctx, transferID, actorID)
	return args.Error(0)
}

func (m *MockTransferService) Submit(ctx context.Context, transferID string, actorID string) (*domain.TransferDocument, error) {
	args := m.Called(ctx, transferID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferDocument), args.Error(1)
}

func (m *MockTransferService) Approve(ctx context.Context, transferID string, actorID string, notes string) (*domain.TransferDocument, error) {
	args := m.Called(ctx, transferID, actorID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferDocument), args.Error(1)
}

func (m *MockTransferService) Reject(ctx context.Context, transferID string, actorID string, reason string) (*domain.TransferDocument, error) {
	args := m.Called(ctx, transferID, actorID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferDocument), args.Error(1)
}

func (m *MockTransferService) Reopen(ctx context.Context, transferID string, actorID string) (*domain.TransferDocument, error) {
	args := m.Called(ctx, transferID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferDocument), args.Error(1)
}

func (m *MockTransferService) RetryPost(ctx context.Context, transferID string, actorID string) (*domain.TransferDocument, error) {
	args := m.Called(ctx, transferID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferDocument), args.Error(1)
}

func (m *MockTransferService) AddLine(ctx context.Context, transferID string, req dto.AddLineRequest, actorID string) (*domain.TransferLine, error) {
	args := m.Called(ctx, transferID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferLine), args.Error(1)
}

func (m *MockTransferService) AddSerialLine(ctx context.Context, transferID string, req dto.AddSerialLineRequest, actorID string) (*domain.TransferLine, error) {
	args := m.Called(ctx, transferID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferLine), args.Error(1)
}

func (m *MockTransferService) DeleteLine(ctx context.Context, lineID string, actorID string) error {
	args := m.Called(ctx, lineID, actorID)
	return args.Error(0)
}

func (m *MockTransferService) RevalidateSerial(ctx context.Context, serialID string, actorID string) (*domain.SerialEntry, error) {
	args := m.Called(ctx, serialID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SerialEntry), args.Error(1)
}

func (m *MockTransferService) DeleteSerial(ctx context.Context, serialID string, actorID string) error {
	args := m.Called(ctx, serialID, actorID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.TransferSvcFacade = (*MockTransferService)(nil)

// --- Test Suite ---

type TransferHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockTransferService *MockTransferService
	jwtSecret           string
}

func (suite *TransferHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockTransferService = new(MockTransferService)

	suite.router = gin.New()
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterTransferRoutes(v1, suite.mockTransferService)
}

func (suite *TransferHandlerTestSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(userID, suite.jwtSecret, time.Hour, "wms-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *TransferHandlerTestSuite) doRequest(method, url, token string, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TransferHandlerTestSuite) TestSubmitTransfer_Success() {
	userID := "user-1"
	doc := &domain.TransferDocument{
		TransferID:     "transfer-1",
		TransferNumber: "TR-1001",
		Status:         domain.StatusSubmitted,
		OwnerID:        userID,
	}
	suite.mockTransferService.On("Submit", mock.Anything, "transfer-1", userID).
		Return(doc, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transfers/transfer-1/submit", suite.generateTestToken(userID), "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("transfer-1", resp.TransferID)
	suite.Equal(string(domain.StatusSubmitted), resp.Status)
	suite.mockTransferService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestSubmitTransfer_UnvalidatedSerials() {
	userID := "user-1"
	suite.mockTransferService.On("Submit", mock.Anything, "transfer-1", userID).
		Return(nil, &apperrors.ValidationRequiredError{UnvalidatedCount: 3}).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transfers/transfer-1/submit", suite.generateTestToken(userID), "")

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.Error, "3 serial numbers are not validated")
}

func (suite *TransferHandlerTestSuite) TestSubmitTransfer_NoToken() {
	w := suite.doRequest(http.MethodPost, "/api/v1/transfers/transfer-1/submit", "", "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTransferService.AssertNotCalled(suite.T(), "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferHandlerTestSuite) TestApproveTransfer_WithNotes() {
	userID := "qc-1"
	doc := &domain.TransferDocument{
		TransferID: "transfer-1",
		Status:     domain.StatusPosted,
	}
	suite.mockTransferService.On("Approve", mock.Anything, "transfer-1", userID, "all good").
		Return(doc, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transfers/transfer-1/approve",
		suite.generateTestToken(userID), `{"notes":"all good"}`)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TransferResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(string(domain.StatusPosted), resp.Status)
	suite.mockTransferService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestApproveTransfer_ERPDown() {
	userID := "qc-1"
	erpErr := apperrors.NewExternalServiceError("erp stock transfer post", true,
		errors.New("connection refused"))
	suite.mockTransferService.On("Approve", mock.Anything, "transfer-1", userID, "").
		Return(nil, erpErr).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transfers/transfer-1/approve", suite.generateTestToken(userID), "")

	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *TransferHandlerTestSuite) TestRejectTransfer_PassesReason() {
	userID := "qc-1"
	doc := &domain.TransferDocument{
		TransferID: "transfer-1",
		Status:     domain.StatusRejected,
	}
	suite.mockTransferService.On("Reject", mock.Anything, "transfer-1", userID, "wrong batch").
		Return(doc, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transfers/transfer-1/reject",
		suite.generateTestToken(userID), `{"notes":"wrong batch"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockTransferService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestRetryPost_InvalidTransition() {
	userID := "qc-1"
	suite.mockTransferService.On("RetryPost", mock.Anything, "transfer-1", userID).
		Return(nil, apperrors.NewInvalidTransition("draft", "posted")).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transfers/transfer-1/post", suite.generateTestToken(userID), "")

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TransferHandlerTestSuite) TestGetTransfer_NotFound() {
	userID := "user-1"
	suite.mockTransferService.On("GetDocument", mock.Anything, "missing", userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transfers/missing", suite.generateTestToken(userID), "")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TransferHandlerTestSuite) TestGetTransfer_Forbidden() {
	userID := "user-2"
	suite.mockTransferService.On("GetDocument", mock.Anything, "transfer-1", userID).
		Return(nil, apperrors.ErrPermissionDenied).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/transfers/transfer-1", suite.generateTestToken(userID), "")

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TransferHandlerTestSuite) TestAddLine_InvalidBody() {
	userID := "user-1"

	w := suite.doRequest(http.MethodPost, "/api/v1/transfers/transfer-1/lines",
		suite.generateTestToken(userID), `{"itemName":"Widget"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTransferService.AssertNotCalled(suite.T(), "AddLine", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferHandlerTestSuite) TestDeleteLine_NoContent() {
	userID := "user-1"
	suite.mockTransferService.On("DeleteLine", mock.Anything, "line-1", userID).
		Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/lines/line-1", suite.generateTestToken(userID), "")

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockTransferService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestDeleteLine_MissingLine() {
	userID := "user-1"
	suite.mockTransferService.On("DeleteLine", mock.Anything, "line-gone", userID).
		Return(apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/lines/line-gone", suite.generateTestToken(userID), "")

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockTransferService.AssertExpectations(suite.T())
}

func (suite *TransferHandlerTestSuite) TestCreateTransfer_DuplicateRequest() {
	userID := "user-1"
	suite.mockTransferService.On("CreateDocument", mock.Anything, mock.AnythingOfType("dto.CreateTransferRequest"), userID).
		Return(nil, fmt.Errorf("%w: a document already exists for transfer request TR-1001", apperrors.ErrDuplicateItem)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/transfers", suite.generateTestToken(userID),
		`{"transferNumber":"TR-1001","fromWarehouse":"WH-A","toWarehouse":"WH-B"}`)

	suite.Equal(http.StatusConflict, w.Code)
	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.Error, "already exists")
}

func TestTransferHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TransferHandlerTestSuite))
}
