package services

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/wareflow/wms_backend/internal/core/ports/services"
	"github.com/wareflow/wms_backend/internal/core/domain"
	"github.com/wareflow/wms_backend/internal/middleware"
)

// SerialValidator checks serial numbers against the ERP. A lookup failure
// never yields a valid verdict: when the ERP cannot be reached the serial
// stays unvalidated with the failure recorded as the reason.
type SerialValidator struct {
	erpClient portssvc.ERPClient
}

// NewSerialValidator creates a new serial validation service.
func NewSerialValidator(erpClient portssvc.ERPClient) *SerialValidator {
	return &SerialValidator{erpClient: erpClient}
}

// Ensure SerialValidator implements portssvc.SerialValidatorSvc
var _ portssvc.SerialValidatorSvc = (*SerialValidator)(nil)

// ValidateSerial applies the warehouse-aware validation policy: the serial
// must exist in the ERP, belong to the expected item, and the item must have
// positive stock in the source warehouse. The verdict depends only on the
// inputs and current ERP state, so re-running it is idempotent.
func (v *SerialValidator) ValidateSerial(ctx context.Context, serialNumber, itemCode, warehouseCode string) domain.SerialVerdict {
	logger := middleware.GetLoggerFromCtx(ctx)

	result, err := v.erpClient.LookupSerial(ctx, serialNumber)
	if err != nil {
		logger.Warn("Serial lookup against ERP failed",
			slog.String("serial_number", serialNumber),
			slog.String("error", err.Error()))
		return domain.SerialVerdict{
			Valid:  false,
			Reason: fmt.Sprintf("Validation failed: %v", err),
		}
	}

	if !result.Found {
		return domain.SerialVerdict{
			Valid:  false,
			Reason: fmt.Sprintf("Serial number %s not found in system", serialNumber),
		}
	}

	if result.ItemCode != itemCode {
		return domain.SerialVerdict{
			Valid:  false,
			Reason: fmt.Sprintf("Serial number belongs to item %s, not %s", result.ItemCode, itemCode),
		}
	}

	if warehouseCode != "" {
		onHand, ok := result.WarehouseOnHand[warehouseCode]
		if !ok || !onHand.IsPositive() {
			return domain.SerialVerdict{
				Valid:  false,
				Reason: fmt.Sprintf("Item %s has no stock in warehouse %s", itemCode, warehouseCode),
			}
		}
	}

	return domain.SerialVerdict{
		Valid:           true,
		CanonicalSerial: result.SerialNumber,
		SystemNumber:    result.SystemNumber,
		ManufactureDate: result.ManufactureDate,
		ExpiryDate:      result.ExpiryDate,
		AdmissionDate:   result.AdmissionDate,
	}
}
