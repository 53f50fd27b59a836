package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wareflow/wms_backend/internal/apperrors"
	"github.com/wareflow/wms_backend/internal/core/domain"
	portsrepo "github.com/wareflow/wms_backend/internal/core/ports/repositories"
	portssvc "github.com/wareflow/wms_backend/internal/core/ports/services"
	"github.com/wareflow/wms_backend/internal/dto"
	"github.com/wareflow/wms_backend/internal/middleware"
)

// PickListService mirrors ERP pick lists locally and records picking progress.
type PickListService struct {
	pickListRepo portsrepo.PickListRepositoryFacade
	erpClient    portssvc.ERPClient
}

// NewPickListService creates a new pick list service.
func NewPickListService(pickListRepo portsrepo.PickListRepositoryFacade, erpClient portssvc.ERPClient) *PickListService {
	return &PickListService{pickListRepo: pickListRepo, erpClient: erpClient}
}

// Ensure PickListService implements portssvc.PickListSvcFacade
var _ portssvc.PickListSvcFacade = (*PickListService)(nil)

// GetPickList retrieves a pick list with lines and bin allocations.
func (s *PickListService) GetPickList(ctx context.Context, pickListID string) (*domain.PickList, error) {
	return s.pickListRepo.FindPickListByID(ctx, pickListID)
}

// ListPickLists retrieves a paginated list of pick list headers.
func (s *PickListService) ListPickLists(ctx context.Context, params dto.ListPickListsParams) (*dto.ListPickListsResponse, error) {
	pickLists, nextToken, err := s.pickListRepo.ListPickLists(ctx, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.PickListResponse, len(pickLists))
	for i := range pickLists {
		responses[i] = dto.ToPickListResponse(&pickLists[i])
	}
	return &dto.ListPickListsResponse{PickLists: responses, NextToken: nextToken}, nil
}

// SyncPickList pulls one pick list from the ERP by AbsoluteEntry and upserts
// it locally. New rows get fresh identifiers; an existing header keeps its ID
// through the upsert keyed on AbsoluteEntry.
func (s *PickListService) SyncPickList(ctx context.Context, absEntry int, actorID string) (*domain.PickList, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	pickList, err := s.erpClient.FetchPickList(ctx, absEntry)
	if err != nil {
		logger.Error("ERP pick list fetch failed", slog.Int("abs_entry", absEntry), slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now()
	pickList.PickListID = uuid.NewString()
	pickList.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}
	for i := range pickList.Lines {
		lineID := uuid.NewString()
		pickList.Lines[i].LineID = lineID
		pickList.Lines[i].PickListID = pickList.PickListID
		for j := range pickList.Lines[i].BinAllocations {
			pickList.Lines[i].BinAllocations[j].AllocationID = uuid.NewString()
			pickList.Lines[i].BinAllocations[j].PickListLineID = lineID
		}
	}

	if err := s.pickListRepo.UpsertPickList(ctx, *pickList); err != nil {
		return nil, err
	}

	logger.Info("Pick list synced", slog.Int("abs_entry", absEntry), slog.Int("lines", len(pickList.Lines)))
	return s.pickListRepo.FindPickListByAbsEntry(ctx, absEntry)
}

// UpdateLinePick records picked quantity and status for one line.
func (s *PickListService) UpdateLinePick(ctx context.Context, lineID string, req dto.UpdatePickRequest, actorID string) error {
	status := domain.PickStatus(req.PickStatus)
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown pick status %q", apperrors.ErrInvalidInput, req.PickStatus)
	}
	if req.PickedQuantity.IsNegative() {
		return fmt.Errorf("%w: picked quantity cannot be negative", apperrors.ErrInvalidInput)
	}
	return s.pickListRepo.UpdateLinePick(ctx, lineID, req.PickedQuantity, status, actorID, time.Now())
}
