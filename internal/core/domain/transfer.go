package domain

import "time"

// TransferStatus indicates where a transfer document sits in the QC workflow.
type TransferStatus string

const (
	StatusDraft      TransferStatus = "draft"
	StatusSubmitted  TransferStatus = "submitted"
	StatusQCApproved TransferStatus = "qc_approved"
	StatusPosted     TransferStatus = "posted"
	StatusRejected   TransferStatus = "rejected"
)

// allowedTransitions is the full transition table for transfer documents.
// Posted is terminal; rejected can only go back to draft via reopen.
var allowedTransitions = map[TransferStatus][]TransferStatus{
	StatusDraft:      {StatusSubmitted},
	StatusSubmitted:  {StatusQCApproved, StatusRejected},
	StatusQCApproved: {StatusPosted},
	StatusRejected:   {StatusDraft},
}

// IsValid reports whether s is a member of the closed status set.
func (s TransferStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusQCApproved, StatusPosted, StatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether the transition s -> to is in the table.
func (s TransferStatus) CanTransitionTo(to TransferStatus) bool {
	for _, next := range allowedTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// TransferType distinguishes the kind of stock movement a document describes.
type TransferType string

const (
	TransferWarehouse TransferType = "warehouse"
	TransferBin       TransferType = "bin"
	TransferEmergency TransferType = "emergency"
	TransferSerial    TransferType = "serial"
)

// TransferPriority is the handling priority of a transfer document.
type TransferPriority string

const (
	PriorityLow    TransferPriority = "low"
	PriorityNormal TransferPriority = "normal"
	PriorityHigh   TransferPriority = "high"
	PriorityUrgent TransferPriority = "urgent"
)

// TransferDocument is the header of a transfer: it owns an ordered set of
// lines and moves through the QC workflow. Status is only ever changed by the
// transfer service, never assigned directly.
type TransferDocument struct {
	TransferID     string           `json:"transferID"` // Primary Key (UUID)
	TransferNumber string           `json:"transferNumber"`
	ERPDocNum      *string          `json:"erpDocNum,omitempty"` // Set once posted to the ERP
	Status         TransferStatus   `json:"status"`
	TransferType   TransferType     `json:"transferType"`
	Priority       TransferPriority `json:"priority"`
	ReasonCode     string           `json:"reasonCode,omitempty"` // adjustment, relocation, damaged, expired
	Notes          string           `json:"notes,omitempty"`
	OwnerID        string           `json:"ownerID"`
	QCApproverID   *string          `json:"qcApproverID,omitempty"`
	QCApprovedAt   *time.Time       `json:"qcApprovedAt,omitempty"`
	QCNotes        *string          `json:"qcNotes,omitempty"`
	FromWarehouse  string           `json:"fromWarehouse"`
	ToWarehouse    string           `json:"toWarehouse"`
	Lines          []TransferLine   `json:"lines,omitempty"`
	AuditFields
}

// IsSerialTracked reports whether the document carries serial-tracked lines.
func (d TransferDocument) IsSerialTracked() bool {
	return d.TransferType == TransferSerial
}

// UnvalidatedSerialCount counts serial entries across all lines that have not
// passed ERP validation.
func (d TransferDocument) UnvalidatedSerialCount() int {
	count := 0
	for _, line := range d.Lines {
		for _, serial := range line.Serials {
			if !serial.IsValidated {
				count++
			}
		}
	}
	return count
}

// StatusHistory is an append-only audit record of one status change.
// History is informational only; it is never read back to decide legality.
type StatusHistory struct {
	HistoryID      string          `json:"historyID"` // Primary Key (UUID)
	TransferID     string          `json:"transferID"`
	PreviousStatus *TransferStatus `json:"previousStatus,omitempty"` // nil for the creation record
	NewStatus      TransferStatus  `json:"newStatus"`
	ChangedByID    string          `json:"changedByID"`
	ChangeReason   string          `json:"changeReason,omitempty"`
	ChangedAt      time.Time       `json:"changedAt"`
}
