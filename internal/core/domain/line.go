package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// QCStatus is the per-line quality control verdict.
type QCStatus string

const (
	QCPending  QCStatus = "pending"
	QCApproved QCStatus = "approved"
	QCRejected QCStatus = "rejected"
)

// LineKind tags the two line variants: quantity-tracked lines carry a
// quantity, serial-tracked lines carry an owned set of serial entries.
type LineKind string

const (
	LineQuantity LineKind = "quantity"
	LineSerial   LineKind = "serial"
)

// TransferLine is one line of a transfer document. ItemCode is the business
// key: unique within a document, enforced at insertion time.
type TransferLine struct {
	LineID            string           `json:"lineID"` // Primary Key (UUID)
	TransferID        string           `json:"transferID"`
	Kind              LineKind         `json:"kind"`
	ItemCode          string           `json:"itemCode"`
	ItemName          string           `json:"itemName"`
	Quantity          decimal.Decimal  `json:"quantity"` // zero for serial-tracked lines
	UnitOfMeasure     string           `json:"unitOfMeasure"`
	FromWarehouseCode string           `json:"fromWarehouseCode"`
	ToWarehouseCode   string           `json:"toWarehouseCode"`
	FromBin           *string          `json:"fromBin,omitempty"`
	ToBin             *string          `json:"toBin,omitempty"`
	BatchNumber       *string          `json:"batchNumber,omitempty"`
	UnitPrice         *decimal.Decimal `json:"unitPrice,omitempty"`
	TotalValue        *decimal.Decimal `json:"totalValue,omitempty"`
	QCStatus          QCStatus         `json:"qcStatus"`
	BaseEntry         *int             `json:"baseEntry,omitempty"`  // ERP transfer request DocEntry
	BaseLine          *int             `json:"baseLine,omitempty"`   // ERP transfer request line number
	ERPLineNum        *int             `json:"erpLineNum,omitempty"` // Line number in the posted ERP document
	Serials           []SerialEntry    `json:"serials,omitempty"`    // only for Kind == LineSerial
	AuditFields
}

// EffectiveQuantity is the quantity the line moves: the stored quantity for
// quantity-tracked lines, the serial count for serial-tracked lines.
func (l TransferLine) EffectiveQuantity() decimal.Decimal {
	if l.Kind == LineSerial {
		return decimal.NewFromInt(int64(len(l.Serials)))
	}
	return l.Quantity
}

// SerialEntry is one serial number owned by a serial-tracked line.
// (LineID, SerialNumber) pairs are unique.
type SerialEntry struct {
	SerialID        string     `json:"serialID"` // Primary Key (UUID)
	LineID          string     `json:"lineID"`
	SerialNumber    string     `json:"serialNumber"`             // as entered by the user
	InternalSerial  string     `json:"internalSerial"`           // canonical serial from the ERP
	SystemNumber    *int64     `json:"systemNumber,omitempty"`   // ERP SystemNumber
	IsValidated     bool       `json:"isValidated"`
	ValidationError *string    `json:"validationError,omitempty"`
	ManufactureDate *time.Time `json:"manufactureDate,omitempty"`
	ExpiryDate      *time.Time `json:"expiryDate,omitempty"`
	AdmissionDate   *time.Time `json:"admissionDate,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}
