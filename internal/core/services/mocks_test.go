package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/wareflow/wms_backend/internal/core/domain"
	portsrepo "github.com/wareflow/wms_backend/internal/core/ports/repositories"
	portssvc "github.com/wareflow/wms_backend/internal/core/ports/services"
)

// --- Mock TransferRepository ---

type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) FindDocumentByID(ctx context.Context, transferID string) (*domain.TransferDocument, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferDocument), args.Error(1)
}

func (m *MockTransferRepository) FindDocumentWithLines(ctx context.Context, transferID string) (*domain.TransferDocument, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferDocument), args.Error(1)
}

func (m *MockTransferRepository) FindDocumentByNumber(ctx context.Context, transferNumber string) (*domain.TransferDocument, error) {
	args := m.Called(ctx, transferNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferDocument), args.Error(1)
}

func (m *MockTransferRepository) ListDocumentsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.TransferDocument, *string, error) {
	args := m.Called(ctx, ownerID, limit, nextToken)
	var docs []domain.TransferDocument
	if args.Get(0) != nil {
		docs = args.Get(0).([]domain.TransferDocument)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return docs, token, args.Error(2)
}

func (m *MockTransferRepository) ListDocumentsByStatus(ctx context.Context, status domain.TransferStatus, limit int, nextToken *string) ([]domain.TransferDocument, *string, error) {
	args := m.Called(ctx, status, limit, nextToken)
	var docs []domain.TransferDocument
	if args.Get(0) != nil {
		docs = args.Get(0).([]domain.TransferDocument)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return docs, token, args.Error(2)
}

func (m *MockTransferRepository) SaveDocument(ctx context.Context, doc domain.TransferDocument, history domain.StatusHistory) error {
	args := m.Called(ctx, doc, history)
	return args.Error(0)
}

func (m *MockTransferRepository) TransitionStatus(ctx context.Context, params portsrepo.TransitionParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func (m *MockTransferRepository) DeleteDraftDocument(ctx context.Context, transferID string) error {
	args := m.Called(ctx, transferID)
	return args.Error(0)
}

func (m *MockTransferRepository) FindLineByID(ctx context.Context, lineID string) (*domain.TransferLine, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferLine), args.Error(1)
}

func (m *MockTransferRepository) FindSerialByID(ctx context.Context, serialID string) (*domain.SerialEntry, error) {
	args := m.Called(ctx, serialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SerialEntry), args.Error(1)
}

func (m *MockTransferRepository) AddLine(ctx context.Context, line domain.TransferLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockTransferRepository) DeleteLine(ctx context.Context, lineID string) error {
	args := m.Called(ctx, lineID)
	return args.Error(0)
}

func (m *MockTransferRepository) UpdateSerialValidation(ctx context.Context, serial domain.SerialEntry) error {
	args := m.Called(ctx, serial)
	return args.Error(0)
}

func (m *MockTransferRepository) DeleteSerial(ctx context.Context, serialID string) error {
	args := m.Called(ctx, serialID)
	return args.Error(0)
}

func (m *MockTransferRepository) ListHistoryByTransfer(ctx context.Context, transferID string) ([]domain.StatusHistory, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusHistory), args.Error(1)
}

var _ portsrepo.TransferRepositoryFacade = (*MockTransferRepository)(nil)

// --- Mock TransferRequestRepository ---

type MockTransferRequestRepository struct {
	mock.Mock
}

func (m *MockTransferRequestRepository) FindRequestByNumber(ctx context.Context, requestNumber string) (*domain.TransferRequest, error) {
	args := m.Called(ctx, requestNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransferRequest), args.Error(1)
}

func (m *MockTransferRequestRepository) ListRequests(ctx context.Context, onlyOpen bool, limit int, nextToken *string) ([]domain.TransferRequest, *string, error) {
	args := m.Called(ctx, onlyOpen, limit, nextToken)
	var requests []domain.TransferRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.TransferRequest)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return requests, token, args.Error(2)
}

func (m *MockTransferRequestRepository) UpsertRequests(ctx context.Context, requests []domain.TransferRequest) error {
	args := m.Called(ctx, requests)
	return args.Error(0)
}

func (m *MockTransferRequestRepository) MarkRequestProcessed(ctx context.Context, erpDocEntry int) error {
	args := m.Called(ctx, erpDocEntry)
	return args.Error(0)
}

var _ portsrepo.TransferRequestRepositoryFacade = (*MockTransferRequestRepository)(nil)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Mock ERPClient ---

type MockERPClient struct {
	mock.Mock
}

func (m *MockERPClient) LookupSerial(ctx context.Context, serialNumber string) (*domain.SerialLookupResult, error) {
	args := m.Called(ctx, serialNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SerialLookupResult), args.Error(1)
}

func (m *MockERPClient) PostStockTransfer(ctx context.Context, doc domain.TransferDocument) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

func (m *MockERPClient) FetchWarehouses(ctx context.Context) ([]domain.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Warehouse), args.Error(1)
}

func (m *MockERPClient) FetchBinLocations(ctx context.Context, warehouseCode string) ([]domain.BinLocation, error) {
	args := m.Called(ctx, warehouseCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BinLocation), args.Error(1)
}

func (m *MockERPClient) FetchBatches(ctx context.Context, itemCode string) ([]domain.Batch, error) {
	args := m.Called(ctx, itemCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Batch), args.Error(1)
}

func (m *MockERPClient) FetchOpenTransferRequests(ctx context.Context) ([]domain.TransferRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransferRequest), args.Error(1)
}

func (m *MockERPClient) FetchPickList(ctx context.Context, absEntry int) (*domain.PickList, error) {
	args := m.Called(ctx, absEntry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PickList), args.Error(1)
}

var _ portssvc.ERPClient = (*MockERPClient)(nil)

// --- Mock SerialValidator ---

type MockSerialValidator struct {
	mock.Mock
}

func (m *MockSerialValidator) ValidateSerial(ctx context.Context, serialNumber, itemCode, warehouseCode string) domain.SerialVerdict {
	args := m.Called(ctx, serialNumber, itemCode, warehouseCode)
	return args.Get(0).(domain.SerialVerdict)
}

var _ portssvc.SerialValidatorSvc = (*MockSerialValidator)(nil)

// --- Mock PickListRepository ---

type MockPickListRepository struct {
	mock.Mock
}

func (m *MockPickListRepository) FindPickListByID(ctx context.Context, pickListID string) (*domain.PickList, error) {
	args := m.Called(ctx, pickListID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PickList), args.Error(1)
}

func (m *MockPickListRepository) FindPickListByAbsEntry(ctx context.Context, absEntry int) (*domain.PickList, error) {
	args := m.Called(ctx, absEntry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PickList), args.Error(1)
}

func (m *MockPickListRepository) ListPickLists(ctx context.Context, limit int, nextToken *string) ([]domain.PickList, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var pickLists []domain.PickList
	if args.Get(0) != nil {
		pickLists = args.Get(0).([]domain.PickList)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return pickLists, token, args.Error(2)
}

func (m *MockPickListRepository) UpsertPickList(ctx context.Context, pickList domain.PickList) error {
	args := m.Called(ctx, pickList)
	return args.Error(0)
}

func (m *MockPickListRepository) UpdateLinePick(ctx context.Context, lineID string, pickedQuantity decimal.Decimal, status domain.PickStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, lineID, pickedQuantity, status, updatedBy, updatedAt)
	return args.Error(0)
}

var _ portsrepo.PickListRepositoryFacade = (*MockPickListRepository)(nil)
