package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// PickList is the persisted header of a pick list mirrored from the ERP.
type PickList struct {
	PickListID     string         `json:"pickListID" db:"pick_list_id"` // Primary Key (UUID)
	AbsoluteEntry  int            `json:"absoluteEntry" db:"absolute_entry"`
	PickListNumber string         `json:"pickListNumber" db:"pick_list_number"`
	OwnerCode      sql.NullInt32  `json:"ownerCode" db:"owner_code"`
	OwnerName      string         `json:"ownerName" db:"owner_name"`
	PickDate       sql.NullTime   `json:"pickDate" db:"pick_date"`
	Status         string         `json:"status" db:"status"`
	Remarks        string         `json:"remarks" db:"remarks"`
	TotalItems     int            `json:"totalItems" db:"total_items"`
	PickedItems    int            `json:"pickedItems" db:"picked_items"`
	SyncedAt       time.Time      `json:"syncedAt" db:"synced_at"`
	AuditFields
}

// PickListLine is a persisted pick list line row.
type PickListLine struct {
	LineID         string          `json:"lineID" db:"line_id"` // Primary Key (UUID)
	PickListID     string          `json:"pickListID" db:"pick_list_id"`
	LineNumber     int             `json:"lineNumber" db:"line_number"`
	OrderEntry     sql.NullInt32   `json:"orderEntry" db:"order_entry"`
	OrderRowID     sql.NullInt32   `json:"orderRowID" db:"order_row_id"`
	ItemCode       string          `json:"itemCode" db:"item_code"`
	ItemName       string          `json:"itemName" db:"item_name"`
	Quantity       decimal.Decimal `json:"quantity" db:"quantity"`
	PickedQuantity decimal.Decimal `json:"pickedQuantity" db:"picked_quantity"`
	PickStatus     string          `json:"pickStatus" db:"pick_status"`
	WarehouseCode  string          `json:"warehouseCode" db:"warehouse_code"`
	UnitOfMeasure  string          `json:"unitOfMeasure" db:"unit_of_measure"`
}

// BinAllocation is a persisted bin allocation row for a pick list line.
type BinAllocation struct {
	AllocationID   string          `json:"allocationID" db:"allocation_id"` // Primary Key (UUID)
	PickListLineID string          `json:"pickListLineID" db:"pick_list_line_id"`
	BinAbsEntry    int             `json:"binAbsEntry" db:"bin_abs_entry"`
	BinCode        string          `json:"binCode" db:"bin_code"`
	WarehouseCode  string          `json:"warehouseCode" db:"warehouse_code"`
	Quantity       decimal.Decimal `json:"quantity" db:"quantity"`
	PickedQuantity decimal.Decimal `json:"pickedQuantity" db:"picked_quantity"`
}
