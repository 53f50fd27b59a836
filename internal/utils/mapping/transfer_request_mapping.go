package mapping

import (
	"github.com/wareflow/wms_backend/internal/core/domain"
	"github.com/wareflow/wms_backend/internal/models"
)

// ToModelTransferRequest converts a domain TransferRequest to its model.
func ToModelTransferRequest(d domain.TransferRequest) models.TransferRequest {
	return models.TransferRequest{
		RequestID:      d.RequestID,
		ERPDocEntry:    d.ERPDocEntry,
		RequestNumber:  d.RequestNumber,
		FromWarehouse:  d.FromWarehouse,
		ToWarehouse:    d.ToWarehouse,
		DocumentStatus: d.DocumentStatus,
		TotalLines:     d.TotalLines,
		TotalQuantity:  d.TotalQuantity,
		CreatedByName:  d.CreatedByName,
		DocumentDate:   nullTimeFromPtr(d.DocumentDate),
		DueDate:        nullTimeFromPtr(d.DueDate),
		Comments:       d.Comments,
		SyncedAt:       d.SyncedAt,
		IsProcessed:    d.IsProcessed,
	}
}

// ToDomainTransferRequest converts a model TransferRequest to its domain form.
func ToDomainTransferRequest(m models.TransferRequest) domain.TransferRequest {
	return domain.TransferRequest{
		RequestID:      m.RequestID,
		ERPDocEntry:    m.ERPDocEntry,
		RequestNumber:  m.RequestNumber,
		FromWarehouse:  m.FromWarehouse,
		ToWarehouse:    m.ToWarehouse,
		DocumentStatus: m.DocumentStatus,
		TotalLines:     m.TotalLines,
		TotalQuantity:  m.TotalQuantity,
		CreatedByName:  m.CreatedByName,
		DocumentDate:   ptrFromNullTime(m.DocumentDate),
		DueDate:        ptrFromNullTime(m.DueDate),
		Comments:       m.Comments,
		SyncedAt:       m.SyncedAt,
		IsProcessed:    m.IsProcessed,
	}
}
