package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus indicates the workflow state of a transfer document.
type TransferStatus string

const (
	StatusDraft      TransferStatus = "draft"
	StatusSubmitted  TransferStatus = "submitted"
	StatusQCApproved TransferStatus = "qc_approved"
	StatusPosted     TransferStatus = "posted"
	StatusRejected   TransferStatus = "rejected"
)

// TransferDocument is the persisted header row of a warehouse transfer.
type TransferDocument struct {
	TransferID     string         `json:"transferID" db:"transfer_id"` // Primary Key (UUID)
	TransferNumber string         `json:"transferNumber" db:"transfer_number"`
	ERPDocNum      sql.NullString `json:"erpDocNum" db:"erp_doc_num"` // Set once posted to the ERP
	Status         TransferStatus `json:"status" db:"status"`
	TransferType   string         `json:"transferType" db:"transfer_type"`
	Priority       string         `json:"priority" db:"priority"`
	ReasonCode     string         `json:"reasonCode" db:"reason_code"`
	Notes          string         `json:"notes" db:"notes"`
	OwnerID        string         `json:"ownerID" db:"owner_id"`
	QCApproverID   sql.NullString `json:"qcApproverID" db:"qc_approver_id"`
	QCApprovedAt   sql.NullTime   `json:"qcApprovedAt" db:"qc_approved_at"`
	QCNotes        sql.NullString `json:"qcNotes" db:"qc_notes"`
	FromWarehouse  string         `json:"fromWarehouse" db:"from_warehouse"`
	ToWarehouse    string         `json:"toWarehouse" db:"to_warehouse"`
	AuditFields
}

// TransferLine is a persisted line row. Serial-tracked lines keep their
// quantity at zero and own rows in serial_entries instead.
type TransferLine struct {
	LineID            string              `json:"lineID" db:"line_id"` // Primary Key (UUID)
	TransferID        string              `json:"transferID" db:"transfer_id"`
	Kind              string              `json:"kind" db:"kind"`
	ItemCode          string              `json:"itemCode" db:"item_code"`
	ItemName          string              `json:"itemName" db:"item_name"`
	Quantity          decimal.Decimal     `json:"quantity" db:"quantity"`
	UnitOfMeasure     string              `json:"unitOfMeasure" db:"unit_of_measure"`
	FromWarehouseCode string              `json:"fromWarehouseCode" db:"from_warehouse_code"`
	ToWarehouseCode   string              `json:"toWarehouseCode" db:"to_warehouse_code"`
	FromBin           sql.NullString      `json:"fromBin" db:"from_bin"`
	ToBin             sql.NullString      `json:"toBin" db:"to_bin"`
	BatchNumber       sql.NullString      `json:"batchNumber" db:"batch_number"`
	UnitPrice         decimal.NullDecimal `json:"unitPrice" db:"unit_price"`
	TotalValue        decimal.NullDecimal `json:"totalValue" db:"total_value"`
	QCStatus          string              `json:"qcStatus" db:"qc_status"`
	BaseEntry         sql.NullInt32       `json:"baseEntry" db:"base_entry"`
	BaseLine          sql.NullInt32       `json:"baseLine" db:"base_line"`
	ERPLineNum        sql.NullInt32       `json:"erpLineNum" db:"erp_line_num"`
	AuditFields
}

// SerialEntry is a persisted serial number row owned by a serial-tracked line.
type SerialEntry struct {
	SerialID        string         `json:"serialID" db:"serial_id"` // Primary Key (UUID)
	LineID          string         `json:"lineID" db:"line_id"`
	SerialNumber    string         `json:"serialNumber" db:"serial_number"`
	InternalSerial  string         `json:"internalSerial" db:"internal_serial"`
	SystemNumber    sql.NullInt64  `json:"systemNumber" db:"system_number"`
	IsValidated     bool           `json:"isValidated" db:"is_validated"`
	ValidationError sql.NullString `json:"validationError" db:"validation_error"`
	ManufactureDate sql.NullTime   `json:"manufactureDate" db:"manufacture_date"`
	ExpiryDate      sql.NullTime   `json:"expiryDate" db:"expiry_date"`
	AdmissionDate   sql.NullTime   `json:"admissionDate" db:"admission_date"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
}

// StatusHistory is one persisted audit record of a workflow transition.
type StatusHistory struct {
	HistoryID      string         `json:"historyID" db:"history_id"` // Primary Key (UUID)
	TransferID     string         `json:"transferID" db:"transfer_id"`
	PreviousStatus sql.NullString `json:"previousStatus" db:"previous_status"` // NULL on creation
	NewStatus      string         `json:"newStatus" db:"new_status"`
	ChangedByID    string         `json:"changedByID" db:"changed_by_id"`
	ChangeReason   string         `json:"changeReason" db:"change_reason"`
	ChangedAt      time.Time      `json:"changedAt" db:"changed_at"`
}
