package services

import (
	"context"

	"github.com/wareflow/wms_backend/internal/core/domain"
	"github.com/wareflow/wms_backend/internal/dto"
)

// PickListReaderSvc defines read operations for pick lists
type PickListReaderSvc interface {
	// GetPickList retrieves a pick list with lines and bin allocations.
	GetPickList(ctx context.Context, pickListID string) (*domain.PickList, error)

	// ListPickLists retrieves a paginated list of pick list headers.
	ListPickLists(ctx context.Context, params dto.ListPickListsParams) (*dto.ListPickListsResponse, error)
}

// PickListWriterSvc defines write operations for pick lists
type PickListWriterSvc interface {
	// SyncPickList pulls one pick list from the ERP by AbsoluteEntry and upserts it locally.
	SyncPickList(ctx context.Context, absEntry int, actorID string) (*domain.PickList, error)

	// UpdateLinePick records picked quantity and status for one line.
	UpdateLinePick(ctx context.Context, lineID string, req dto.UpdatePickRequest, actorID string) error
}

// PickListSvcFacade combines all pick-list service interfaces
type PickListSvcFacade interface {
	PickListReaderSvc
	PickListWriterSvc
}
