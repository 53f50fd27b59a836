package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wareflow/wms_backend/internal/core/domain"
)

// ListTransferRequestsParams defines query parameters for listing synced ERP transfer requests.
type ListTransferRequestsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
	OnlyOpen  bool    `form:"onlyOpen,default=true"`
}

// TransferRequestResponse defines the data returned for one synced ERP transfer request.
type TransferRequestResponse struct {
	RequestID      string          `json:"requestID"`
	ERPDocEntry    int             `json:"erpDocEntry"`
	RequestNumber  string          `json:"requestNumber"`
	FromWarehouse  string          `json:"fromWarehouse"`
	ToWarehouse    string          `json:"toWarehouse"`
	DocumentStatus string          `json:"documentStatus"`
	TotalLines     int             `json:"totalLines"`
	TotalQuantity  decimal.Decimal `json:"totalQuantity"`
	DocumentDate   *time.Time      `json:"documentDate,omitempty"`
	DueDate        *time.Time      `json:"dueDate,omitempty"`
	IsProcessed    bool            `json:"isProcessed"`
}

// ListTransferRequestsResponse wraps a page of synced transfer requests.
type ListTransferRequestsResponse struct {
	Requests  []TransferRequestResponse `json:"requests"`
	NextToken *string                   `json:"nextToken,omitempty"`
}

// ToTransferRequestResponse converts a domain.TransferRequest to its DTO.
func ToTransferRequestResponse(r *domain.TransferRequest) TransferRequestResponse {
	return TransferRequestResponse{
		RequestID:      r.RequestID,
		ERPDocEntry:    r.ERPDocEntry,
		RequestNumber:  r.RequestNumber,
		FromWarehouse:  r.FromWarehouse,
		ToWarehouse:    r.ToWarehouse,
		DocumentStatus: r.DocumentStatus,
		TotalLines:     r.TotalLines,
		TotalQuantity:  r.TotalQuantity,
		DocumentDate:   r.DocumentDate,
		DueDate:        r.DueDate,
		IsProcessed:    r.IsProcessed,
	}
}
