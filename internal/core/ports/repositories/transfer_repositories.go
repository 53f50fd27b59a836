package repositories

import (
	"context"
	"time"

	"github.com/wareflow/wms_backend/internal/core/domain"
)

// TransitionParams describes one atomic status change: the header update, the
// optional field patches, the per-line QC status sweep and the history append
// all commit together or not at all. From guards against concurrent
// transitions: the update only applies while the document still holds that
// status.
type TransitionParams struct {
	TransferID string
	From       domain.TransferStatus
	To         domain.TransferStatus

	SetQCApproverID *string
	SetQCApprovedAt *time.Time
	SetQCNotes      *string
	ClearQCFields   bool
	SetERPDocNum    *string
	SetLineQCStatus *domain.QCStatus // applied to every line when non-nil

	History   domain.StatusHistory
	UpdatedBy string
	UpdatedAt time.Time
}

// TransferReader defines read operations for transfer documents
type TransferReader interface {
	// FindDocumentByID retrieves a document header by its unique identifier.
	FindDocumentByID(ctx context.Context, transferID string) (*domain.TransferDocument, error)

	// FindDocumentWithLines retrieves a document with its lines and serial entries.
	FindDocumentWithLines(ctx context.Context, transferID string) (*domain.TransferDocument, error)

	// FindDocumentByNumber retrieves a document by its business transfer number.
	FindDocumentByNumber(ctx context.Context, transferNumber string) (*domain.TransferDocument, error)

	// ListDocumentsByOwner retrieves a paginated list of documents created by one user.
	ListDocumentsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.TransferDocument, *string, error)

	// ListDocumentsByStatus retrieves a paginated list of documents in the given status.
	ListDocumentsByStatus(ctx context.Context, status domain.TransferStatus, limit int, nextToken *string) ([]domain.TransferDocument, *string, error)
}

// TransferWriter defines write operations for transfer document headers
type TransferWriter interface {
	// SaveDocument persists a new draft document and its creation history record atomically.
	SaveDocument(ctx context.Context, doc domain.TransferDocument, history domain.StatusHistory) error

	// TransitionStatus applies one status change atomically per TransitionParams.
	TransitionStatus(ctx context.Context, params TransitionParams) error

	// DeleteDraftDocument removes a document and its lines; only legal while the document is draft.
	DeleteDraftDocument(ctx context.Context, transferID string) error
}

// LineReader defines read operations for lines and serial entries
type LineReader interface {
	// FindLineByID retrieves a single line including its serial entries.
	FindLineByID(ctx context.Context, lineID string) (*domain.TransferLine, error)

	// FindSerialByID retrieves a single serial entry.
	FindSerialByID(ctx context.Context, serialID string) (*domain.SerialEntry, error)
}

// LineWriter defines write operations for lines and serial entries
type LineWriter interface {
	// AddLine inserts a line (plus any owned serial entries) in one transaction.
	// The duplicate item-code check runs inside the same transaction; a line
	// whose item code already exists on the document fails with DuplicateItem.
	AddLine(ctx context.Context, line domain.TransferLine) error

	// DeleteLine removes a line and its serial entries.
	DeleteLine(ctx context.Context, lineID string) error

	// UpdateSerialValidation overwrites the validation outcome of one serial entry.
	UpdateSerialValidation(ctx context.Context, serial domain.SerialEntry) error

	// DeleteSerial removes a single serial entry.
	DeleteSerial(ctx context.Context, serialID string) error
}

// HistoryReader defines read operations for the status audit trail
type HistoryReader interface {
	// ListHistoryByTransfer retrieves all history records for a document, oldest first.
	ListHistoryByTransfer(ctx context.Context, transferID string) ([]domain.StatusHistory, error)
}

// TransferRepositoryFacade combines all transfer-related repository interfaces
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
	LineReader
	LineWriter
	HistoryReader
}
