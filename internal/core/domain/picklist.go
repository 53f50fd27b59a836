package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PickStatus mirrors the ERP pick list status values. No local workflow is
// layered on top; pick lists track what the ERP reports plus local progress.
type PickStatus string

const (
	PickOpen     PickStatus = "ps_Open"
	PickReleased PickStatus = "ps_Released"
	PickPicked   PickStatus = "ps_Picked"
	PickClosed   PickStatus = "ps_Closed"
)

// IsValid reports whether s is a known ERP pick status.
func (s PickStatus) IsValid() bool {
	switch s {
	case PickOpen, PickReleased, PickPicked, PickClosed:
		return true
	}
	return false
}

// PickList is a pick list header synced from the ERP.
type PickList struct {
	PickListID     string         `json:"pickListID"`    // Primary Key (UUID)
	AbsoluteEntry  int            `json:"absoluteEntry"` // ERP AbsoluteEntry
	PickListNumber string         `json:"pickListNumber"`
	OwnerCode      *int           `json:"ownerCode,omitempty"`
	OwnerName      string         `json:"ownerName,omitempty"`
	PickDate       *time.Time     `json:"pickDate,omitempty"`
	Status         PickStatus     `json:"status"`
	Remarks        string         `json:"remarks,omitempty"`
	TotalItems     int            `json:"totalItems"`
	PickedItems    int            `json:"pickedItems"`
	Lines          []PickListLine `json:"lines,omitempty"`
	SyncedAt       time.Time      `json:"syncedAt"`
	AuditFields
}

// PickListLine is one line of a pick list.
type PickListLine struct {
	LineID          string          `json:"lineID"` // Primary Key (UUID)
	PickListID      string          `json:"pickListID"`
	LineNumber      int             `json:"lineNumber"`
	OrderEntry      *int            `json:"orderEntry,omitempty"` // ERP base document entry
	OrderRowID      *int            `json:"orderRowID,omitempty"`
	ItemCode        string          `json:"itemCode"`
	ItemName        string          `json:"itemName"`
	Quantity        decimal.Decimal `json:"quantity"`
	PickedQuantity  decimal.Decimal `json:"pickedQuantity"`
	PickStatus      PickStatus      `json:"pickStatus"`
	WarehouseCode   string          `json:"warehouseCode"`
	UnitOfMeasure   string          `json:"unitOfMeasure,omitempty"`
	BinAllocations  []BinAllocation `json:"binAllocations,omitempty"`
}

// BinAllocation records which bin a pick list line draws from.
type BinAllocation struct {
	AllocationID   string          `json:"allocationID"` // Primary Key (UUID)
	PickListLineID string          `json:"pickListLineID"`
	BinAbsEntry    int             `json:"binAbsEntry"`
	BinCode        string          `json:"binCode"`
	WarehouseCode  string          `json:"warehouseCode"`
	Quantity       decimal.Decimal `json:"quantity"`
	PickedQuantity decimal.Decimal `json:"pickedQuantity"`
}
