package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SerialLookupResult is the normalized ERP answer for one serial number.
type SerialLookupResult struct {
	Found           bool
	SerialNumber    string // canonical serial as the ERP stores it
	SystemNumber    *int64
	ItemCode        string
	ItemDescription string
	WarehouseOnHand map[string]decimal.Decimal // on-hand stock per warehouse code
	ManufactureDate *time.Time
	ExpiryDate      *time.Time
	AdmissionDate   *time.Time
}

// SerialVerdict is the outcome of validating one serial against the ERP.
// Invalid verdicts always carry a reason; a failed lookup is never valid.
type SerialVerdict struct {
	Valid           bool
	Reason          string
	CanonicalSerial string
	SystemNumber    *int64
	ManufactureDate *time.Time
	ExpiryDate      *time.Time
	AdmissionDate   *time.Time
}

// Warehouse is an ERP warehouse master data row.
type Warehouse struct {
	WarehouseCode string `json:"warehouseCode"`
	WarehouseName string `json:"warehouseName"`
	BinActivated  bool   `json:"binActivated"`
}

// BinLocation is an ERP bin master data row.
type BinLocation struct {
	AbsEntry      int    `json:"absEntry"`
	BinCode       string `json:"binCode"`
	WarehouseCode string `json:"warehouseCode"`
}

// Batch is an available batch for an item as reported by the ERP.
type Batch struct {
	BatchNumber     string          `json:"batchNumber"`
	ItemCode        string          `json:"itemCode"`
	Quantity        decimal.Decimal `json:"quantity"`
	ExpiryDate      *time.Time      `json:"expiryDate,omitempty"`
	ManufactureDate *time.Time      `json:"manufactureDate,omitempty"`
}
