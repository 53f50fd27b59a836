package mapping

import (
	"github.com/wareflow/wms_backend/internal/core/domain"
	"github.com/wareflow/wms_backend/internal/models"
)

// ToModelPickList converts a domain PickList header to its model.
// Lines are persisted separately.
func ToModelPickList(p domain.PickList) models.PickList {
	return models.PickList{
		PickListID:     p.PickListID,
		AbsoluteEntry:  p.AbsoluteEntry,
		PickListNumber: p.PickListNumber,
		OwnerCode:      nullInt32FromPtr(p.OwnerCode),
		OwnerName:      p.OwnerName,
		PickDate:       nullTimeFromPtr(p.PickDate),
		Status:         string(p.Status),
		Remarks:        p.Remarks,
		TotalItems:     p.TotalItems,
		PickedItems:    p.PickedItems,
		SyncedAt:       p.SyncedAt,
		AuditFields:    ToModelAuditFields(p.AuditFields),
	}
}

// ToDomainPickList converts a model PickList header to its domain form.
func ToDomainPickList(m models.PickList) domain.PickList {
	return domain.PickList{
		PickListID:     m.PickListID,
		AbsoluteEntry:  m.AbsoluteEntry,
		PickListNumber: m.PickListNumber,
		OwnerCode:      ptrFromNullInt32(m.OwnerCode),
		OwnerName:      m.OwnerName,
		PickDate:       ptrFromNullTime(m.PickDate),
		Status:         domain.PickStatus(m.Status),
		Remarks:        m.Remarks,
		TotalItems:     m.TotalItems,
		PickedItems:    m.PickedItems,
		SyncedAt:       m.SyncedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPickListLine converts a domain PickListLine to its model.
func ToModelPickListLine(l domain.PickListLine) models.PickListLine {
	return models.PickListLine{
		LineID:         l.LineID,
		PickListID:     l.PickListID,
		LineNumber:     l.LineNumber,
		OrderEntry:     nullInt32FromPtr(l.OrderEntry),
		OrderRowID:     nullInt32FromPtr(l.OrderRowID),
		ItemCode:       l.ItemCode,
		ItemName:       l.ItemName,
		Quantity:       l.Quantity,
		PickedQuantity: l.PickedQuantity,
		PickStatus:     string(l.PickStatus),
		WarehouseCode:  l.WarehouseCode,
		UnitOfMeasure:  l.UnitOfMeasure,
	}
}

// ToDomainPickListLine converts a model PickListLine to its domain form.
func ToDomainPickListLine(m models.PickListLine) domain.PickListLine {
	return domain.PickListLine{
		LineID:         m.LineID,
		PickListID:     m.PickListID,
		LineNumber:     m.LineNumber,
		OrderEntry:     ptrFromNullInt32(m.OrderEntry),
		OrderRowID:     ptrFromNullInt32(m.OrderRowID),
		ItemCode:       m.ItemCode,
		ItemName:       m.ItemName,
		Quantity:       m.Quantity,
		PickedQuantity: m.PickedQuantity,
		PickStatus:     domain.PickStatus(m.PickStatus),
		WarehouseCode:  m.WarehouseCode,
		UnitOfMeasure:  m.UnitOfMeasure,
	}
}

// ToModelBinAllocation converts a domain BinAllocation to its model.
func ToModelBinAllocation(b domain.BinAllocation) models.BinAllocation {
	return models.BinAllocation{
		AllocationID:   b.AllocationID,
		PickListLineID: b.PickListLineID,
		BinAbsEntry:    b.BinAbsEntry,
		BinCode:        b.BinCode,
		WarehouseCode:  b.WarehouseCode,
		Quantity:       b.Quantity,
		PickedQuantity: b.PickedQuantity,
	}
}

// ToDomainBinAllocation converts a model BinAllocation to its domain form.
func ToDomainBinAllocation(m models.BinAllocation) domain.BinAllocation {
	return domain.BinAllocation{
		AllocationID:   m.AllocationID,
		PickListLineID: m.PickListLineID,
		BinAbsEntry:    m.BinAbsEntry,
		BinCode:        m.BinCode,
		WarehouseCode:  m.WarehouseCode,
		Quantity:       m.Quantity,
		PickedQuantity: m.PickedQuantity,
	}
}
