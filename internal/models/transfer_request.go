package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// TransferRequest is a persisted copy of an open ERP inventory transfer
// request, refreshed by the master data sync.
type TransferRequest struct {
	RequestID      string          `json:"requestID" db:"request_id"` // Primary Key (UUID)
	ERPDocEntry    int             `json:"erpDocEntry" db:"erp_doc_entry"`
	RequestNumber  string          `json:"requestNumber" db:"request_number"`
	FromWarehouse  string          `json:"fromWarehouse" db:"from_warehouse"`
	ToWarehouse    string          `json:"toWarehouse" db:"to_warehouse"`
	DocumentStatus string          `json:"documentStatus" db:"document_status"`
	TotalLines     int             `json:"totalLines" db:"total_lines"`
	TotalQuantity  decimal.Decimal `json:"totalQuantity" db:"total_quantity"`
	CreatedByName  string          `json:"createdByName" db:"created_by_name"`
	DocumentDate   sql.NullTime    `json:"documentDate" db:"document_date"`
	DueDate        sql.NullTime    `json:"dueDate" db:"due_date"`
	Comments       string          `json:"comments" db:"comments"`
	SyncedAt       time.Time       `json:"syncedAt" db:"synced_at"`
	IsProcessed    bool            `json:"isProcessed" db:"is_processed"`
}
