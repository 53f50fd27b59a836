package repositories

import (
	"context"

	"github.com/wareflow/wms_backend/internal/core/domain"
)

// TransferRequestReader defines read operations for ERP transfer request reference rows
type TransferRequestReader interface {
	// FindRequestByNumber retrieves a transfer request by its ERP request number.
	FindRequestByNumber(ctx context.Context, requestNumber string) (*domain.TransferRequest, error)

	// ListRequests retrieves a paginated list of synced transfer requests.
	ListRequests(ctx context.Context, onlyOpen bool, limit int, nextToken *string) ([]domain.TransferRequest, *string, error)
}

// TransferRequestWriter defines write operations for ERP transfer request reference rows
type TransferRequestWriter interface {
	// UpsertRequests inserts or refreshes synced requests keyed by ERP DocEntry.
	UpsertRequests(ctx context.Context, requests []domain.TransferRequest) error

	// MarkRequestProcessed flags a request as consumed by a local document.
	MarkRequestProcessed(ctx context.Context, erpDocEntry int) error
}

// TransferRequestRepositoryFacade combines the transfer request repository interfaces
type TransferRequestRepositoryFacade interface {
	TransferRequestReader
	TransferRequestWriter
}
