package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/wareflow/wms_backend/internal/apperrors"
	"github.com/wareflow/wms_backend/internal/core/domain"
	"github.com/wareflow/wms_backend/internal/core/services"
	"github.com/wareflow/wms_backend/internal/dto"
)

type PickListServiceTestSuite struct {
	suite.Suite
	mockPickListRepo *MockPickListRepository
	mockERPClient    *MockERPClient
	service          *services.PickListService
	ctx              context.Context
}

func (suite *PickListServiceTestSuite) SetupTest() {
	suite.mockPickListRepo = new(MockPickListRepository)
	suite.mockERPClient = new(MockERPClient)
	suite.service = services.NewPickListService(suite.mockPickListRepo, suite.mockERPClient)
	suite.ctx = context.Background()
}

func (suite *PickListServiceTestSuite) TestSyncPickList_AssignsIdentifiers() {
	fetched := &domain.PickList{
		AbsoluteEntry: 117,
		Status:        domain.PickReleased,
		Lines: []domain.PickListLine{
			{
				LineNumber: 0,
				ItemCode:   "ITM-1",
				Quantity:   decimal.NewFromInt(10),
				BinAllocations: []domain.BinAllocation{
					{BinAbsEntry: 4, Quantity: decimal.NewFromInt(10)},
				},
			},
		},
	}
	stored := &domain.PickList{PickListID: "pl-1", AbsoluteEntry: 117, Status: domain.PickReleased}

	suite.mockERPClient.On("FetchPickList", suite.ctx, 117).Return(fetched, nil).Once()
	suite.mockPickListRepo.On("UpsertPickList", suite.ctx,
		mock.MatchedBy(func(p domain.PickList) bool {
			if p.PickListID == "" || len(p.Lines) != 1 {
				return false
			}
			line := p.Lines[0]
			return line.LineID != "" && line.PickListID == p.PickListID &&
				len(line.BinAllocations) == 1 &&
				line.BinAllocations[0].AllocationID != "" &&
				line.BinAllocations[0].PickListLineID == line.LineID
		})).Return(nil).Once()
	suite.mockPickListRepo.On("FindPickListByAbsEntry", suite.ctx, 117).Return(stored, nil).Once()

	result, err := suite.service.SyncPickList(suite.ctx, 117, "user-1")

	suite.Require().NoError(err)
	suite.Equal("pl-1", result.PickListID)
	suite.mockPickListRepo.AssertExpectations(suite.T())
	suite.mockERPClient.AssertExpectations(suite.T())
}

func (suite *PickListServiceTestSuite) TestSyncPickList_ERPFailure() {
	erpErr := &apperrors.ExternalServiceError{Op: "FetchPickList"}
	suite.mockERPClient.On("FetchPickList", suite.ctx, 117).Return(nil, erpErr).Once()

	_, err := suite.service.SyncPickList(suite.ctx, 117, "user-1")

	suite.Require().Error(err)
	suite.mockPickListRepo.AssertNotCalled(suite.T(), "UpsertPickList", mock.Anything, mock.Anything)
}

func (suite *PickListServiceTestSuite) TestUpdateLinePick_UnknownStatus() {
	req := dto.UpdatePickRequest{PickedQuantity: decimal.NewFromInt(2), PickStatus: "done"}

	err := suite.service.UpdateLinePick(suite.ctx, "line-1", req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidInput)
}

func (suite *PickListServiceTestSuite) TestUpdateLinePick_NegativeQuantity() {
	req := dto.UpdatePickRequest{PickedQuantity: decimal.NewFromInt(-1), PickStatus: string(domain.PickPicked)}

	err := suite.service.UpdateLinePick(suite.ctx, "line-1", req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidInput)
	suite.mockPickListRepo.AssertNotCalled(suite.T(), "UpdateLinePick",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PickListServiceTestSuite) TestUpdateLinePick_Success() {
	qty := decimal.NewFromInt(7)
	suite.mockPickListRepo.On("UpdateLinePick", suite.ctx, "line-1", qty, domain.PickPicked,
		"user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	req := dto.UpdatePickRequest{PickedQuantity: qty, PickStatus: string(domain.PickPicked)}
	err := suite.service.UpdateLinePick(suite.ctx, "line-1", req, "user-1")

	suite.Require().NoError(err)
	suite.mockPickListRepo.AssertExpectations(suite.T())
}

func TestPickListServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PickListServiceTestSuite))
}
