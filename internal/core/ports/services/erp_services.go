package services

import (
	"context"
	"time"

	"github.com/wareflow/wms_backend/internal/core/domain"
)

// ERPClient is the outbound port to the ERP (SAP Business One Service Layer).
// Implementations must bound every call with a timeout and surface transport
// failures as errors; they never fabricate data.
type ERPClient interface {
	// LookupSerial queries the ERP for one serial number. A missing serial is
	// reported via Found=false on the result, not as an error.
	LookupSerial(ctx context.Context, serialNumber string) (*domain.SerialLookupResult, error)

	// PostStockTransfer creates the stock transfer document in the ERP and
	// returns the new ERP document number.
	PostStockTransfer(ctx context.Context, doc domain.TransferDocument) (string, error)

	// FetchWarehouses retrieves the warehouse master data list.
	FetchWarehouses(ctx context.Context) ([]domain.Warehouse, error)

	// FetchBinLocations retrieves the bins of one warehouse.
	FetchBinLocations(ctx context.Context, warehouseCode string) ([]domain.BinLocation, error)

	// FetchBatches retrieves available batches for one item.
	FetchBatches(ctx context.Context, itemCode string) ([]domain.Batch, error)

	// FetchOpenTransferRequests retrieves open inventory transfer requests.
	FetchOpenTransferRequests(ctx context.Context) ([]domain.TransferRequest, error)

	// FetchPickList retrieves one pick list by its ERP AbsoluteEntry.
	FetchPickList(ctx context.Context, absEntry int) (*domain.PickList, error)
}

// SerialValidatorSvc applies the warehouse-aware validation policy to one
// serial number. Re-validation is idempotent: the verdict depends only on the
// inputs and current ERP state.
type SerialValidatorSvc interface {
	ValidateSerial(ctx context.Context, serialNumber, itemCode, warehouseCode string) domain.SerialVerdict
}

// MasterDataCache caches ERP master data between requests. A miss is reported
// via found=false; cache failures must not fail the caller's request.
type MasterDataCache interface {
	GetWarehouses(ctx context.Context) ([]domain.Warehouse, bool, error)
	SetWarehouses(ctx context.Context, warehouses []domain.Warehouse, ttl time.Duration) error

	GetBins(ctx context.Context, warehouseCode string) ([]domain.BinLocation, bool, error)
	SetBins(ctx context.Context, warehouseCode string, bins []domain.BinLocation, ttl time.Duration) error

	GetBatches(ctx context.Context, itemCode string) ([]domain.Batch, bool, error)
	SetBatches(ctx context.Context, itemCode string, batches []domain.Batch, ttl time.Duration) error
}
