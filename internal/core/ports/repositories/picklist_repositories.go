package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wareflow/wms_backend/internal/core/domain"
)

// PickListReader defines read operations for pick lists
type PickListReader interface {
	// FindPickListByID retrieves a pick list with its lines and bin allocations.
	FindPickListByID(ctx context.Context, pickListID string) (*domain.PickList, error)

	// FindPickListByAbsEntry retrieves a pick list by its ERP AbsoluteEntry.
	FindPickListByAbsEntry(ctx context.Context, absEntry int) (*domain.PickList, error)

	// ListPickLists retrieves a paginated list of pick list headers.
	ListPickLists(ctx context.Context, limit int, nextToken *string) ([]domain.PickList, *string, error)
}

// PickListWriter defines write operations for pick lists
type PickListWriter interface {
	// UpsertPickList inserts or refreshes a pick list (header, lines and bin
	// allocations) from ERP data in one transaction, keyed by AbsoluteEntry.
	UpsertPickList(ctx context.Context, pickList domain.PickList) error

	// UpdateLinePick updates the picked quantity and status of a line and
	// refreshes the header's picked-items count in one transaction.
	UpdateLinePick(ctx context.Context, lineID string, pickedQuantity decimal.Decimal, status domain.PickStatus, updatedBy string, updatedAt time.Time) error
}

// PickListRepositoryFacade combines all pick-list repository interfaces
type PickListRepositoryFacade interface {
	PickListReader
	PickListWriter
}
