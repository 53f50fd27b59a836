package services

import (
	"context"

	"github.com/wareflow/wms_backend/internal/core/domain"
	"github.com/wareflow/wms_backend/internal/dto"
)

// MasterDataSvcFacade serves ERP reference data (warehouses, bins, batches,
// transfer requests) through a cache. An ERP failure is surfaced to the
// caller as ExternalServiceFailure; the service never substitutes made-up data.
type MasterDataSvcFacade interface {
	// GetWarehouses lists warehouse master data, cache first.
	GetWarehouses(ctx context.Context) ([]domain.Warehouse, error)

	// GetBins lists bin locations of a warehouse, cache first.
	GetBins(ctx context.Context, warehouseCode string) ([]domain.BinLocation, error)

	// GetBatches lists available batches for an item, cache first.
	GetBatches(ctx context.Context, itemCode string) ([]domain.Batch, error)

	// SyncTransferRequests pulls open transfer requests from the ERP into the local reference table.
	SyncTransferRequests(ctx context.Context, actorID string) (int, error)

	// ListTransferRequests lists synced transfer requests.
	ListTransferRequests(ctx context.Context, params dto.ListTransferRequestsParams) (*dto.ListTransferRequestsResponse, error)
}
