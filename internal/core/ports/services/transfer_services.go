package services

import (
	"context"

	"github.com/wareflow/wms_backend/internal/core/domain"
	"github.com/wareflow/wms_backend/internal/dto"
)

// TransferReaderSvc defines read operations for transfer documents
type TransferReaderSvc interface {
	// GetDocument retrieves a document with its lines for an actor allowed to see it.
	GetDocument(ctx context.Context, transferID string, actorID string) (*domain.TransferDocument, error)

	// ListDocuments retrieves a paginated list of the actor's documents.
	ListDocuments(ctx context.Context, actorID string, params dto.ListTransfersParams) (*dto.ListTransfersResponse, error)

	// GetHistory retrieves the status audit trail of a document.
	GetHistory(ctx context.Context, transferID string, actorID string) ([]domain.StatusHistory, error)
}

// TransferWriterSvc defines the document lifecycle operations
type TransferWriterSvc interface {
	// CreateDocument creates a new draft document for the given transfer request number.
	CreateDocument(ctx context.Context, req dto.CreateTransferRequest, actorID string) (*domain.TransferDocument, error)

	// DeleteDocument removes a draft document. Submitted documents are never deleted.
	DeleteDocument(ctx context.Context, transferID string, actorID string) error
}

// TransferWorkflowSvc defines the status transitions of the QC workflow.
// Every method runs as one atomic unit of work and appends a history record.
type TransferWorkflowSvc interface {
	// Submit moves a draft document to submitted. Fails with ValidationRequired
	// when the document has no lines or any serial entry is unvalidated.
	Submit(ctx context.Context, transferID string, actorID string) (*domain.TransferDocument, error)

	// Approve moves a submitted document to qc_approved and posts it to the
	// ERP. A failed post leaves the document qc_approved so the post can be
	// retried; the returned error then wraps ExternalServiceFailure.
	Approve(ctx context.Context, transferID string, actorID string, notes string) (*domain.TransferDocument, error)

	// Reject moves a submitted document to rejected. Reason must be non-empty.
	Reject(ctx context.Context, transferID string, actorID string, reason string) (*domain.TransferDocument, error)

	// Reopen moves a rejected document back to draft, clearing QC fields and
	// resetting every line's QC status to pending.
	Reopen(ctx context.Context, transferID string, actorID string) (*domain.TransferDocument, error)

	// RetryPost re-attempts the ERP post of a qc_approved document.
	RetryPost(ctx context.Context, transferID string, actorID string) (*domain.TransferDocument, error)
}

// TransferLineSvc defines line and serial entry operations
type TransferLineSvc interface {
	// AddLine appends a quantity-tracked line; duplicate item codes are rejected.
	AddLine(ctx context.Context, transferID string, req dto.AddLineRequest, actorID string) (*domain.TransferLine, error)

	// AddSerialLine appends a serial-tracked line, validating every serial
	// number against the ERP before persisting it.
	AddSerialLine(ctx context.Context, transferID string, req dto.AddSerialLineRequest, actorID string) (*domain.TransferLine, error)

	// DeleteLine removes a line from a draft document.
	DeleteLine(ctx context.Context, lineID string, actorID string) error

	// RevalidateSerial re-runs ERP validation for one serial entry. Idempotent.
	RevalidateSerial(ctx context.Context, serialID string, actorID string) (*domain.SerialEntry, error)

	// DeleteSerial removes one serial entry from a draft document.
	DeleteSerial(ctx context.Context, serialID string, actorID string) error
}

// TransferSvcFacade combines all transfer-related service interfaces
type TransferSvcFacade interface {
	TransferReaderSvc
	TransferWriterSvc
	TransferWorkflowSvc
	TransferLineSvc
}
