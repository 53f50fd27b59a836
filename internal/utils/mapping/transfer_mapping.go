package mapping

import (
	"database/sql"

	"github.com/wareflow/wms_backend/internal/core/domain"
	"github.com/wareflow/wms_backend/internal/models"
)

// ToModelTransferDocument converts a domain TransferDocument to its model.
// Lines are persisted separately and are not carried over.
func ToModelTransferDocument(d domain.TransferDocument) models.TransferDocument {
	return models.TransferDocument{
		TransferID:     d.TransferID,
		TransferNumber: d.TransferNumber,
		ERPDocNum:      nullStringFromPtr(d.ERPDocNum),
		Status:         models.TransferStatus(d.Status),
		TransferType:   string(d.TransferType),
		Priority:       string(d.Priority),
		ReasonCode:     d.ReasonCode,
		Notes:          d.Notes,
		OwnerID:        d.OwnerID,
		QCApproverID:   nullStringFromPtr(d.QCApproverID),
		QCApprovedAt:   nullTimeFromPtr(d.QCApprovedAt),
		QCNotes:        nullStringFromPtr(d.QCNotes),
		FromWarehouse:  d.FromWarehouse,
		ToWarehouse:    d.ToWarehouse,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransferDocument converts a model TransferDocument to its domain form.
func ToDomainTransferDocument(m models.TransferDocument) domain.TransferDocument {
	return domain.TransferDocument{
		TransferID:     m.TransferID,
		TransferNumber: m.TransferNumber,
		ERPDocNum:      ptrFromNullString(m.ERPDocNum),
		Status:         domain.TransferStatus(m.Status),
		TransferType:   domain.TransferType(m.TransferType),
		Priority:       domain.TransferPriority(m.Priority),
		ReasonCode:     m.ReasonCode,
		Notes:          m.Notes,
		OwnerID:        m.OwnerID,
		QCApproverID:   ptrFromNullString(m.QCApproverID),
		QCApprovedAt:   ptrFromNullTime(m.QCApprovedAt),
		QCNotes:        ptrFromNullString(m.QCNotes),
		FromWarehouse:  m.FromWarehouse,
		ToWarehouse:    m.ToWarehouse,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransferLine converts a domain TransferLine to its model.
// Serial entries are persisted separately and are not carried over.
func ToModelTransferLine(l domain.TransferLine) models.TransferLine {
	return models.TransferLine{
		LineID:            l.LineID,
		TransferID:        l.TransferID,
		Kind:              string(l.Kind),
		ItemCode:          l.ItemCode,
		ItemName:          l.ItemName,
		Quantity:          l.Quantity,
		UnitOfMeasure:     l.UnitOfMeasure,
		FromWarehouseCode: l.FromWarehouseCode,
		ToWarehouseCode:   l.ToWarehouseCode,
		FromBin:           nullStringFromPtr(l.FromBin),
		ToBin:             nullStringFromPtr(l.ToBin),
		BatchNumber:       nullStringFromPtr(l.BatchNumber),
		UnitPrice:         nullDecimalFromPtr(l.UnitPrice),
		TotalValue:        nullDecimalFromPtr(l.TotalValue),
		QCStatus:          string(l.QCStatus),
		BaseEntry:         nullInt32FromPtr(l.BaseEntry),
		BaseLine:          nullInt32FromPtr(l.BaseLine),
		ERPLineNum:        nullInt32FromPtr(l.ERPLineNum),
		AuditFields:       ToModelAuditFields(l.AuditFields),
	}
}

// ToDomainTransferLine converts a model TransferLine to its domain form.
func ToDomainTransferLine(m models.TransferLine) domain.TransferLine {
	return domain.TransferLine{
		LineID:            m.LineID,
		TransferID:        m.TransferID,
		Kind:              domain.LineKind(m.Kind),
		ItemCode:          m.ItemCode,
		ItemName:          m.ItemName,
		Quantity:          m.Quantity,
		UnitOfMeasure:     m.UnitOfMeasure,
		FromWarehouseCode: m.FromWarehouseCode,
		ToWarehouseCode:   m.ToWarehouseCode,
		FromBin:           ptrFromNullString(m.FromBin),
		ToBin:             ptrFromNullString(m.ToBin),
		BatchNumber:       ptrFromNullString(m.BatchNumber),
		UnitPrice:         ptrFromNullDecimal(m.UnitPrice),
		TotalValue:        ptrFromNullDecimal(m.TotalValue),
		QCStatus:          domain.QCStatus(m.QCStatus),
		BaseEntry:         ptrFromNullInt32(m.BaseEntry),
		BaseLine:          ptrFromNullInt32(m.BaseLine),
		ERPLineNum:        ptrFromNullInt32(m.ERPLineNum),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelSerialEntry converts a domain SerialEntry to its model.
func ToModelSerialEntry(s domain.SerialEntry) models.SerialEntry {
	return models.SerialEntry{
		SerialID:        s.SerialID,
		LineID:          s.LineID,
		SerialNumber:    s.SerialNumber,
		InternalSerial:  s.InternalSerial,
		SystemNumber:    nullInt64FromPtr(s.SystemNumber),
		IsValidated:     s.IsValidated,
		ValidationError: nullStringFromPtr(s.ValidationError),
		ManufactureDate: nullTimeFromPtr(s.ManufactureDate),
		ExpiryDate:      nullTimeFromPtr(s.ExpiryDate),
		AdmissionDate:   nullTimeFromPtr(s.AdmissionDate),
		CreatedAt:       s.CreatedAt,
	}
}

// ToDomainSerialEntry converts a model SerialEntry to its domain form.
func ToDomainSerialEntry(m models.SerialEntry) domain.SerialEntry {
	return domain.SerialEntry{
		SerialID:        m.SerialID,
		LineID:          m.LineID,
		SerialNumber:    m.SerialNumber,
		InternalSerial:  m.InternalSerial,
		SystemNumber:    ptrFromNullInt64(m.SystemNumber),
		IsValidated:     m.IsValidated,
		ValidationError: ptrFromNullString(m.ValidationError),
		ManufactureDate: ptrFromNullTime(m.ManufactureDate),
		ExpiryDate:      ptrFromNullTime(m.ExpiryDate),
		AdmissionDate:   ptrFromNullTime(m.AdmissionDate),
		CreatedAt:       m.CreatedAt,
	}
}

// ToModelStatusHistory converts a domain StatusHistory to its model.
func ToModelStatusHistory(h domain.StatusHistory) models.StatusHistory {
	var prev sql.NullString
	if h.PreviousStatus != nil {
		prev = sql.NullString{String: string(*h.PreviousStatus), Valid: true}
	}
	return models.StatusHistory{
		HistoryID:      h.HistoryID,
		TransferID:     h.TransferID,
		PreviousStatus: prev,
		NewStatus:      string(h.NewStatus),
		ChangedByID:    h.ChangedByID,
		ChangeReason:   h.ChangeReason,
		ChangedAt:      h.ChangedAt,
	}
}

// ToDomainStatusHistory converts a model StatusHistory to its domain form.
func ToDomainStatusHistory(m models.StatusHistory) domain.StatusHistory {
	var prev *domain.TransferStatus
	if m.PreviousStatus.Valid {
		s := domain.TransferStatus(m.PreviousStatus.String)
		prev = &s
	}
	return domain.StatusHistory{
		HistoryID:      m.HistoryID,
		TransferID:     m.TransferID,
		PreviousStatus: prev,
		NewStatus:      domain.TransferStatus(m.NewStatus),
		ChangedByID:    m.ChangedByID,
		ChangeReason:   m.ChangeReason,
		ChangedAt:      m.ChangedAt,
	}
}
