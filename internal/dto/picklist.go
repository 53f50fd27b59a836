package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wareflow/wms_backend/internal/core/domain"
)

// ListPickListsParams defines query parameters for listing pick lists.
type ListPickListsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// UpdatePickRequest records picking progress on one pick list line.
type UpdatePickRequest struct {
	PickedQuantity decimal.Decimal `json:"pickedQuantity" binding:"required"`
	PickStatus     string          `json:"pickStatus" binding:"required"`
}

// BinAllocationResponse defines the data returned for one bin allocation.
type BinAllocationResponse struct {
	AllocationID   string          `json:"allocationID"`
	BinAbsEntry    int             `json:"binAbsEntry"`
	BinCode        string          `json:"binCode"`
	WarehouseCode  string          `json:"warehouseCode"`
	Quantity       decimal.Decimal `json:"quantity"`
	PickedQuantity decimal.Decimal `json:"pickedQuantity"`
}

// PickListLineResponse defines the data returned for one pick list line.
type PickListLineResponse struct {
	LineID         string                  `json:"lineID"`
	LineNumber     int                     `json:"lineNumber"`
	ItemCode       string                  `json:"itemCode"`
	ItemName       string                  `json:"itemName"`
	Quantity       decimal.Decimal         `json:"quantity"`
	PickedQuantity decimal.Decimal         `json:"pickedQuantity"`
	PickStatus     string                  `json:"pickStatus"`
	WarehouseCode  string                  `json:"warehouseCode"`
	BinAllocations []BinAllocationResponse `json:"binAllocations,omitempty"`
}

// PickListResponse defines the data returned for a pick list.
type PickListResponse struct {
	PickListID     string                 `json:"pickListID"`
	AbsoluteEntry  int                    `json:"absoluteEntry"`
	PickListNumber string                 `json:"pickListNumber"`
	OwnerName      string                 `json:"ownerName,omitempty"`
	PickDate       *time.Time             `json:"pickDate,omitempty"`
	Status         string                 `json:"status"`
	Remarks        string                 `json:"remarks,omitempty"`
	TotalItems     int                    `json:"totalItems"`
	PickedItems    int                    `json:"pickedItems"`
	Lines          []PickListLineResponse `json:"lines,omitempty"`
	SyncedAt       time.Time              `json:"syncedAt"`
}

// ListPickListsResponse wraps a page of pick list headers.
type ListPickListsResponse struct {
	PickLists []PickListResponse `json:"pickLists"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToPickListResponse converts a domain.PickList to PickListResponse DTO.
func ToPickListResponse(p *domain.PickList) PickListResponse {
	lines := make([]PickListLineResponse, len(p.Lines))
	for i := range p.Lines {
		lines[i] = toPickListLineResponse(&p.Lines[i])
	}
	if len(lines) == 0 {
		lines = nil
	}
	return PickListResponse{
		PickListID:     p.PickListID,
		AbsoluteEntry:  p.AbsoluteEntry,
		PickListNumber: p.PickListNumber,
		OwnerName:      p.OwnerName,
		PickDate:       p.PickDate,
		Status:         string(p.Status),
		Remarks:        p.Remarks,
		TotalItems:     p.TotalItems,
		PickedItems:    p.PickedItems,
		Lines:          lines,
		SyncedAt:       p.SyncedAt,
	}
}

func toPickListLineResponse(l *domain.PickListLine) PickListLineResponse {
	bins := make([]BinAllocationResponse, len(l.BinAllocations))
	for i, b := range l.BinAllocations {
		bins[i] = BinAllocationResponse{
			AllocationID:   b.AllocationID,
			BinAbsEntry:    b.BinAbsEntry,
			BinCode:        b.BinCode,
			WarehouseCode:  b.WarehouseCode,
			Quantity:       b.Quantity,
			PickedQuantity: b.PickedQuantity,
		}
	}
	if len(bins) == 0 {
		bins = nil
	}
	return PickListLineResponse{
		LineID:         l.LineID,
		LineNumber:     l.LineNumber,
		ItemCode:       l.ItemCode,
		ItemName:       l.ItemName,
		Quantity:       l.Quantity,
		PickedQuantity: l.PickedQuantity,
		PickStatus:     string(l.PickStatus),
		WarehouseCode:  l.WarehouseCode,
		BinAllocations: bins,
	}
}
