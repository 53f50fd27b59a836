package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wareflow/wms_backend/internal/core/domain"
)

// CreateTransferRequest defines the data needed to create a draft transfer document.
type CreateTransferRequest struct {
	TransferNumber string `json:"transferNumber" binding:"required"`
	TransferType   string `json:"transferType"` // warehouse, bin, emergency, serial; defaults to warehouse
	Priority       string `json:"priority"`     // low, normal, high, urgent; defaults to normal
	ReasonCode     string `json:"reasonCode"`
	Notes          string `json:"notes"`
	FromWarehouse  string `json:"fromWarehouse" binding:"required"`
	ToWarehouse    string `json:"toWarehouse" binding:"required"`
}

// AddLineRequest defines the data for one quantity-tracked line.
type AddLineRequest struct {
	ItemCode          string           `json:"itemCode" binding:"required"`
	ItemName          string           `json:"itemName" binding:"required"`
	Quantity          decimal.Decimal  `json:"quantity" binding:"required"`
	UnitOfMeasure     string           `json:"unitOfMeasure"`
	FromWarehouseCode string           `json:"fromWarehouseCode"`
	ToWarehouseCode   string           `json:"toWarehouseCode"`
	FromBin           *string          `json:"fromBin"`
	ToBin             *string          `json:"toBin"`
	BatchNumber       *string          `json:"batchNumber"`
	UnitPrice         *decimal.Decimal `json:"unitPrice"`
	BaseEntry         *int             `json:"baseEntry"`
	BaseLine          *int             `json:"baseLine"`
}

// AddSerialLineRequest defines the data for one serial-tracked line. Serial
// numbers are validated against the ERP before the line is persisted.
type AddSerialLineRequest struct {
	ItemCode      string   `json:"itemCode" binding:"required"`
	ItemName      string   `json:"itemName" binding:"required"`
	UnitOfMeasure string   `json:"unitOfMeasure"`
	SerialNumbers []string `json:"serialNumbers" binding:"required,min=1"`
}

// QCActionRequest carries the notes or reason for an approve/reject action.
type QCActionRequest struct {
	Notes string `json:"notes"`
}

// ListTransfersParams defines query parameters for listing transfer documents.
type ListTransfersParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
	Status    *string `form:"status"` // filter on one workflow status
}

// SerialResponse defines the data returned for one serial entry.
type SerialResponse struct {
	SerialID        string     `json:"serialID"`
	SerialNumber    string     `json:"serialNumber"`
	InternalSerial  string     `json:"internalSerial"`
	SystemNumber    *int64     `json:"systemNumber,omitempty"`
	IsValidated     bool       `json:"isValidated"`
	ValidationError *string    `json:"validationError,omitempty"`
	ManufactureDate *time.Time `json:"manufactureDate,omitempty"`
	ExpiryDate      *time.Time `json:"expiryDate,omitempty"`
	AdmissionDate   *time.Time `json:"admissionDate,omitempty"`
}

// LineResponse defines the data returned for one transfer line.
type LineResponse struct {
	LineID            string           `json:"lineID"`
	Kind              string           `json:"kind"`
	ItemCode          string           `json:"itemCode"`
	ItemName          string           `json:"itemName"`
	Quantity          decimal.Decimal  `json:"quantity"`
	UnitOfMeasure     string           `json:"unitOfMeasure"`
	FromWarehouseCode string           `json:"fromWarehouseCode"`
	ToWarehouseCode   string           `json:"toWarehouseCode"`
	FromBin           *string          `json:"fromBin,omitempty"`
	ToBin             *string          `json:"toBin,omitempty"`
	BatchNumber       *string          `json:"batchNumber,omitempty"`
	UnitPrice         *decimal.Decimal `json:"unitPrice,omitempty"`
	TotalValue        *decimal.Decimal `json:"totalValue,omitempty"`
	QCStatus          string           `json:"qcStatus"`
	Serials           []SerialResponse `json:"serials,omitempty"`
}

// TransferResponse defines the data returned for a transfer document.
type TransferResponse struct {
	TransferID     string         `json:"transferID"`
	TransferNumber string         `json:"transferNumber"`
	ERPDocNum      *string        `json:"erpDocNum,omitempty"`
	Status         string         `json:"status"`
	TransferType   string         `json:"transferType"`
	Priority       string         `json:"priority"`
	ReasonCode     string         `json:"reasonCode,omitempty"`
	Notes          string         `json:"notes,omitempty"`
	OwnerID        string         `json:"ownerID"`
	QCApproverID   *string        `json:"qcApproverID,omitempty"`
	QCApprovedAt   *time.Time     `json:"qcApprovedAt,omitempty"`
	QCNotes        *string        `json:"qcNotes,omitempty"`
	FromWarehouse  string         `json:"fromWarehouse"`
	ToWarehouse    string         `json:"toWarehouse"`
	Lines          []LineResponse `json:"lines,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	LastUpdatedAt  time.Time      `json:"lastUpdatedAt"`
}

// ListTransfersResponse wraps a page of transfer documents.
type ListTransfersResponse struct {
	Transfers []TransferResponse `json:"transfers"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// HistoryResponse defines the data returned for one status history record.
type HistoryResponse struct {
	HistoryID      string    `json:"historyID"`
	PreviousStatus *string   `json:"previousStatus,omitempty"`
	NewStatus      string    `json:"newStatus"`
	ChangedByID    string    `json:"changedByID"`
	ChangeReason   string    `json:"changeReason,omitempty"`
	ChangedAt      time.Time `json:"changedAt"`
}

// ToSerialResponse converts a domain.SerialEntry to SerialResponse DTO.
func ToSerialResponse(s *domain.SerialEntry) SerialResponse {
	return SerialResponse{
		SerialID:        s.SerialID,
		SerialNumber:    s.SerialNumber,
		InternalSerial:  s.InternalSerial,
		SystemNumber:    s.SystemNumber,
		IsValidated:     s.IsValidated,
		ValidationError: s.ValidationError,
		ManufactureDate: s.ManufactureDate,
		ExpiryDate:      s.ExpiryDate,
		AdmissionDate:   s.AdmissionDate,
	}
}

// ToLineResponse converts a domain.TransferLine to LineResponse DTO.
func ToLineResponse(l *domain.TransferLine) LineResponse {
	serials := make([]SerialResponse, len(l.Serials))
	for i := range l.Serials {
		serials[i] = ToSerialResponse(&l.Serials[i])
	}
	if len(serials) == 0 {
		serials = nil
	}
	return LineResponse{
		LineID:            l.LineID,
		Kind:              string(l.Kind),
		ItemCode:          l.ItemCode,
		ItemName:          l.ItemName,
		Quantity:          l.EffectiveQuantity(),
		UnitOfMeasure:     l.UnitOfMeasure,
		FromWarehouseCode: l.FromWarehouseCode,
		ToWarehouseCode:   l.ToWarehouseCode,
		FromBin:           l.FromBin,
		ToBin:             l.ToBin,
		BatchNumber:       l.BatchNumber,
		UnitPrice:         l.UnitPrice,
		TotalValue:        l.TotalValue,
		QCStatus:          string(l.QCStatus),
		Serials:           serials,
	}
}

// ToTransferResponse converts a domain.TransferDocument to TransferResponse DTO.
func ToTransferResponse(d *domain.TransferDocument) TransferResponse {
	lines := make([]LineResponse, len(d.Lines))
	for i := range d.Lines {
		lines[i] = ToLineResponse(&d.Lines[i])
	}
	if len(lines) == 0 {
		lines = nil
	}
	return TransferResponse{
		TransferID:     d.TransferID,
		TransferNumber: d.TransferNumber,
		ERPDocNum:      d.ERPDocNum,
		Status:         string(d.Status),
		TransferType:   string(d.TransferType),
		Priority:       string(d.Priority),
		ReasonCode:     d.ReasonCode,
		Notes:          d.Notes,
		OwnerID:        d.OwnerID,
		QCApproverID:   d.QCApproverID,
		QCApprovedAt:   d.QCApprovedAt,
		QCNotes:        d.QCNotes,
		FromWarehouse:  d.FromWarehouse,
		ToWarehouse:    d.ToWarehouse,
		Lines:          lines,
		CreatedAt:      d.CreatedAt,
		LastUpdatedAt:  d.LastUpdatedAt,
	}
}

// ToHistoryResponse converts a domain.StatusHistory to HistoryResponse DTO.
func ToHistoryResponse(h *domain.StatusHistory) HistoryResponse {
	var prev *string
	if h.PreviousStatus != nil {
		s := string(*h.PreviousStatus)
		prev = &s
	}
	return HistoryResponse{
		HistoryID:      h.HistoryID,
		PreviousStatus: prev,
		NewStatus:      string(h.NewStatus),
		ChangedByID:    h.ChangedByID,
		ChangeReason:   h.ChangeReason,
		ChangedAt:      h.ChangedAt,
	}
}
