package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wareflow/wms_backend/internal/core/domain"
	portssvc "github.com/wareflow/wms_backend/internal/core/ports/services"
	"github.com/wareflow/wms_backend/internal/core/services"
	"github.com/wareflow/wms_backend/internal/dto"
)

type MockMasterDataCache struct {
	mock.Mock
}

func (m *MockMasterDataCache) GetWarehouses(ctx context.Context) ([]domain.Warehouse, bool, error) {
	args := m.Called(ctx)
	var warehouses []domain.Warehouse
	if args.Get(0) != nil {
		warehouses = args.Get(0).([]domain.Warehouse)
	}
	return warehouses, args.Bool(1), args.Error(2)
}

func (m *MockMasterDataCache) SetWarehouses(ctx context.Context, warehouses []domain.Warehouse, ttl time.Duration) error {
	args := m.Called(ctx, warehouses, ttl)
	return args.Error(0)
}

func (m *MockMasterDataCache) GetBins(ctx context.Context, warehouseCode string) ([]domain.BinLocation, bool, error) {
	args := m.Called(ctx, warehouseCode)
	var bins []domain.BinLocation
	if args.Get(0) != nil {
		bins = args.Get(0).([]domain.BinLocation)
	}
	return bins, args.Bool(1), args.Error(2)
}

func (m *MockMasterDataCache) SetBins(ctx context.Context, warehouseCode string, bins []domain.BinLocation, ttl time.Duration) error {
	args := m.Called(ctx, warehouseCode, bins, ttl)
	return args.Error(0)
}

func (m *MockMasterDataCache) GetBatches(ctx context.Context, itemCode string) ([]domain.Batch, bool, error) {
	args := m.Called(ctx, itemCode)
	var batches []domain.Batch
	if args.Get(0) != nil {
		batches = args.Get(0).([]domain.Batch)
	}
	return batches, args.Bool(1), args.Error(2)
}

func (m *MockMasterDataCache) SetBatches(ctx context.Context, itemCode string, batches []domain.Batch, ttl time.Duration) error {
	args := m.Called(ctx, itemCode, batches, ttl)
	return args.Error(0)
}

var _ portssvc.MasterDataCache = (*MockMasterDataCache)(nil)

type MasterDataServiceTestSuite struct {
	suite.Suite
	mockRequestRepo *MockTransferRequestRepository
	mockERPClient   *MockERPClient
	mockCache       *MockMasterDataCache
	service         *services.MasterDataService
	ctx             context.Context
}

func (suite *MasterDataServiceTestSuite) SetupTest() {
	suite.mockRequestRepo = new(MockTransferRequestRepository)
	suite.mockERPClient = new(MockERPClient)
	suite.mockCache = new(MockMasterDataCache)
	suite.service = services.NewMasterDataService(suite.mockRequestRepo, suite.mockERPClient, suite.mockCache, 15*time.Minute)
	suite.ctx = context.Background()
}

func (suite *MasterDataServiceTestSuite) TestGetWarehouses_CacheHit() {
	cached := []domain.Warehouse{{WarehouseCode: "WH-A", WarehouseName: "Main"}}
	suite.mockCache.On("GetWarehouses", suite.ctx).Return(cached, true, nil).Once()

	warehouses, err := suite.service.GetWarehouses(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(cached, warehouses)
	suite.mockERPClient.AssertNotCalled(suite.T(), "FetchWarehouses", mock.Anything)
}

func (suite *MasterDataServiceTestSuite) TestGetWarehouses_CacheMissFetchesAndStores() {
	fetched := []domain.Warehouse{{WarehouseCode: "WH-A"}, {WarehouseCode: "WH-B"}}
	suite.mockCache.On("GetWarehouses", suite.ctx).Return(nil, false, nil).Once()
	suite.mockERPClient.On("FetchWarehouses", suite.ctx).Return(fetched, nil).Once()
	suite.mockCache.On("SetWarehouses", suite.ctx, fetched, 15*time.Minute).Return(nil).Once()

	warehouses, err := suite.service.GetWarehouses(suite.ctx)

	suite.Require().NoError(err)
	suite.Len(warehouses, 2)
	suite.mockCache.AssertExpectations(suite.T())
	suite.mockERPClient.AssertExpectations(suite.T())
}

func (suite *MasterDataServiceTestSuite) TestGetWarehouses_CacheFailureFallsThroughToERP() {
	fetched := []domain.Warehouse{{WarehouseCode: "WH-A"}}
	suite.mockCache.On("GetWarehouses", suite.ctx).Return(nil, false, errors.New("redis down")).Once()
	suite.mockERPClient.On("FetchWarehouses", suite.ctx).Return(fetched, nil).Once()
	suite.mockCache.On("SetWarehouses", suite.ctx, fetched, 15*time.Minute).Return(errors.New("redis down")).Once()

	warehouses, err := suite.service.GetWarehouses(suite.ctx)

	suite.Require().NoError(err)
	suite.Len(warehouses, 1)
}

func (suite *MasterDataServiceTestSuite) TestGetBins_ERPFailurePropagates() {
	erpErr := errors.New("service layer timeout")
	suite.mockCache.On("GetBins", suite.ctx, "WH-A").Return(nil, false, nil).Once()
	suite.mockERPClient.On("FetchBinLocations", suite.ctx, "WH-A").Return(nil, erpErr).Once()

	_, err := suite.service.GetBins(suite.ctx, "WH-A")

	suite.Require().Error(err)
	suite.ErrorIs(err, erpErr)
	suite.mockCache.AssertNotCalled(suite.T(), "SetBins", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MasterDataServiceTestSuite) TestSyncTransferRequests_AssignsIDs() {
	fetched := []domain.TransferRequest{
		{ERPDocEntry: 900, RequestNumber: "TR-1001", DocumentStatus: "Open"},
		{ERPDocEntry: 901, RequestNumber: "TR-1002", DocumentStatus: "Open"},
	}
	suite.mockERPClient.On("FetchOpenTransferRequests", suite.ctx).Return(fetched, nil).Once()
	suite.mockRequestRepo.On("UpsertRequests", suite.ctx,
		mock.MatchedBy(func(reqs []domain.TransferRequest) bool {
			return len(reqs) == 2 && reqs[0].RequestID != "" && reqs[1].RequestID != ""
		})).Return(nil).Once()

	count, err := suite.service.SyncTransferRequests(suite.ctx, "user-1")

	suite.Require().NoError(err)
	suite.Equal(2, count)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *MasterDataServiceTestSuite) TestListTransferRequests() {
	stored := []domain.TransferRequest{{RequestID: "req-1", RequestNumber: "TR-1001", DocumentStatus: "Open"}}
	suite.mockRequestRepo.On("ListRequests", suite.ctx, true, 20, (*string)(nil)).
		Return(stored, nil, nil).Once()

	resp, err := suite.service.ListTransferRequests(suite.ctx, dto.ListTransferRequestsParams{OnlyOpen: true, Limit: 20})

	suite.Require().NoError(err)
	suite.Len(resp.Requests, 1)
	suite.Equal("TR-1001", resp.Requests[0].RequestNumber)
}

func TestMasterDataServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MasterDataServiceTestSuite))
}
