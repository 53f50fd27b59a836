package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferRequest is a read-only reference row mirroring an ERP inventory
// transfer request. Documents are created against one of these numbers.
type TransferRequest struct {
	RequestID      string          `json:"requestID"` // Primary Key (UUID)
	ERPDocEntry    int             `json:"erpDocEntry"`
	RequestNumber  string          `json:"requestNumber"`
	FromWarehouse  string          `json:"fromWarehouse"`
	ToWarehouse    string          `json:"toWarehouse"`
	DocumentStatus string          `json:"documentStatus"` // Open, Closed
	TotalLines     int             `json:"totalLines"`
	TotalQuantity  decimal.Decimal `json:"totalQuantity"`
	CreatedByName  string          `json:"createdByName,omitempty"`
	DocumentDate   *time.Time      `json:"documentDate,omitempty"`
	DueDate        *time.Time      `json:"dueDate,omitempty"`
	Comments       string          `json:"comments,omitempty"`
	SyncedAt       time.Time       `json:"syncedAt"`
	IsProcessed    bool            `json:"isProcessed"`
}
