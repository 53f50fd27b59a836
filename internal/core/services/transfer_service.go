package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wareflow/wms_backend/internal/apperrors"
	"github.com/wareflow/wms_backend/internal/core/domain"
	portsrepo "github.com/wareflow/wms_backend/internal/core/ports/repositories"
	portssvc "github.com/wareflow/wms_backend/internal/core/ports/services"
	"github.com/wareflow/wms_backend/internal/dto"
	"github.com/wareflow/wms_backend/internal/middleware"
)

// TransferService drives transfer documents through the QC workflow. Status
// only ever changes through the transition table; the repository enforces
// atomicity with a status guard so concurrent transitions cannot both win.
type TransferService struct {
	transferRepo portsrepo.TransferRepositoryFacade
	requestRepo  portsrepo.TransferRequestRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
	erpClient    portssvc.ERPClient
	validator    portssvc.SerialValidatorSvc
}

// NewTransferService creates a new transfer document service.
func NewTransferService(
	transferRepo portsrepo.TransferRepositoryFacade,
	requestRepo portsrepo.TransferRequestRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	erpClient portssvc.ERPClient,
	validator portssvc.SerialValidatorSvc,
) *TransferService {
	return &TransferService{
		transferRepo: transferRepo,
		requestRepo:  requestRepo,
		userRepo:     userRepo,
		erpClient:    erpClient,
		validator:    validator,
	}
}

// Ensure TransferService implements portssvc.TransferSvcFacade
var _ portssvc.TransferSvcFacade = (*TransferService)(nil)

func (s *TransferService) fetchActor(ctx context.Context, actorID string) (*domain.User, error) {
	actor, err := s.userRepo.FindUserByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrPermissionDenied
		}
		return nil, fmt.Errorf("failed to fetch acting user: %w", err)
	}
	return actor, nil
}

// canView: owners see their own documents, QC-capable roles see everything.
func canView(actor *domain.User, doc *domain.TransferDocument) bool {
	return doc.OwnerID == actor.UserID || actor.HasQCCapability()
}

// canEdit: the owner edits their drafts, elevated roles may step in.
func canEdit(actor *domain.User, doc *domain.TransferDocument) bool {
	return doc.OwnerID == actor.UserID || actor.HasElevatedRole()
}

// CreateDocument creates a new draft document against an open ERP transfer request.
func (s *TransferService) CreateDocument(ctx context.Context, req dto.CreateTransferRequest, actorID string) (*domain.TransferDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transferType := domain.TransferType(req.TransferType)
	if req.TransferType == "" {
		transferType = domain.TransferWarehouse
	}
	switch transferType {
	case domain.TransferWarehouse, domain.TransferBin, domain.TransferEmergency, domain.TransferSerial:
	default:
		return nil, fmt.Errorf("%w: unknown transfer type %q", apperrors.ErrInvalidInput, req.TransferType)
	}

	priority := domain.TransferPriority(req.Priority)
	if req.Priority == "" {
		priority = domain.PriorityNormal
	}
	switch priority {
	case domain.PriorityLow, domain.PriorityNormal, domain.PriorityHigh, domain.PriorityUrgent:
	default:
		return nil, fmt.Errorf("%w: unknown priority %q", apperrors.ErrInvalidInput, req.Priority)
	}

	if req.FromWarehouse == req.ToWarehouse {
		return nil, fmt.Errorf("%w: source and destination warehouse must differ", apperrors.ErrInvalidInput)
	}

	// The document number references an ERP transfer request; it must be synced and open.
	request, err := s.requestRepo.FindRequestByNumber(ctx, req.TransferNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: transfer request %s not found", apperrors.ErrNotFound, req.TransferNumber)
		}
		return nil, fmt.Errorf("failed to look up transfer request: %w", err)
	}
	if request.DocumentStatus != "Open" {
		return nil, fmt.Errorf("%w: transfer request %s is not open", apperrors.ErrInvalidInput, req.TransferNumber)
	}
	if request.IsProcessed {
		return nil, fmt.Errorf("%w: transfer request %s has already been processed", apperrors.ErrInvalidInput, req.TransferNumber)
	}
	if _, err := s.transferRepo.FindDocumentByNumber(ctx, req.TransferNumber); err == nil {
		return nil, fmt.Errorf("%w: a document already exists for transfer request %s", apperrors.ErrDuplicateItem, req.TransferNumber)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for an existing document: %w", err)
	}

	now := time.Now()
	doc := domain.TransferDocument{
		TransferID:     uuid.NewString(),
		TransferNumber: req.TransferNumber,
		Status:         domain.StatusDraft,
		TransferType:   transferType,
		Priority:       priority,
		ReasonCode:     req.ReasonCode,
		Notes:          req.Notes,
		OwnerID:        actorID,
		FromWarehouse:  req.FromWarehouse,
		ToWarehouse:    req.ToWarehouse,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	history := domain.StatusHistory{
		HistoryID:    uuid.NewString(),
		TransferID:   doc.TransferID,
		NewStatus:    domain.StatusDraft,
		ChangedByID:  actorID,
		ChangeReason: "document created",
		ChangedAt:    now,
	}

	if err := s.transferRepo.SaveDocument(ctx, doc, history); err != nil {
		logger.Error("Failed to save transfer document", slog.String("transfer_number", req.TransferNumber), slog.String("error", err.Error()))
		return nil, err
	}

	// The document is already saved at this point; a stale open flag only
	// affects request listings, so a failed mark is logged, not returned.
	if err := s.requestRepo.MarkRequestProcessed(ctx, request.ERPDocEntry); err != nil {
		logger.Error("Failed to mark transfer request processed",
			slog.Int("erp_doc_entry", request.ERPDocEntry),
			slog.String("error", err.Error()))
	}

	logger.Info("Transfer document created", slog.String("transfer_id", doc.TransferID), slog.String("transfer_number", doc.TransferNumber))
	return &doc, nil
}

// GetDocument retrieves a document with its lines for an actor allowed to see it.
func (s *TransferService) GetDocument(ctx context.Context, transferID string, actorID string) (*domain.TransferDocument, error) {
	actor, err := s.fetchActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	doc, err := s.transferRepo.FindDocumentWithLines(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if !canView(actor, doc) {
		return nil, apperrors.ErrPermissionDenied
	}
	return doc, nil
}

// ListDocuments retrieves a paginated list of documents visible to the actor.
// QC-capable actors may filter by status across all owners; everyone else
// sees only their own documents.
func (s *TransferService) ListDocuments(ctx context.Context, actorID string, params dto.ListTransfersParams) (*dto.ListTransfersResponse, error) {
	actor, err := s.fetchActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var docs []domain.TransferDocument
	var nextToken *string
	if params.Status != nil && *params.Status != "" {
		status := domain.TransferStatus(*params.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidInput, *params.Status)
		}
		if !actor.HasQCCapability() {
			return nil, apperrors.ErrPermissionDenied
		}
		docs, nextToken, err = s.transferRepo.ListDocumentsByStatus(ctx, status, params.Limit, params.NextToken)
	} else {
		docs, nextToken, err = s.transferRepo.ListDocumentsByOwner(ctx, actor.UserID, params.Limit, params.NextToken)
	}
	if err != nil {
		return nil, err
	}

	transfers := make([]dto.TransferResponse, len(docs))
	for i := range docs {
		transfers[i] = dto.ToTransferResponse(&docs[i])
	}
	return &dto.ListTransfersResponse{Transfers: transfers, NextToken: nextToken}, nil
}

// GetHistory retrieves the status audit trail of a document.
func (s *TransferService) GetHistory(ctx context.Context, transferID string, actorID string) ([]domain.StatusHistory, error) {
	actor, err := s.fetchActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	doc, err := s.transferRepo.FindDocumentByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if !canView(actor, doc) {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.transferRepo.ListHistoryByTransfer(ctx, transferID)
}

// DeleteDocument removes a draft document. Submitted documents are never deleted.
func (s *TransferService) DeleteDocument(ctx context.Context, transferID string, actorID string) error {
	actor, err := s.fetchActor(ctx, actorID)
	if err != nil {
		return err
	}
	doc, err := s.transferRepo.FindDocumentByID(ctx, transferID)
	if err != nil {
		return err
	}
	if !canEdit(actor, doc) {
		return apperrors.ErrPermissionDenied
	}
	if doc.Status != domain.StatusDraft {
		return fmt.Errorf("%w: only draft documents can be deleted", apperrors.ErrInvalidInput)
	}
	return s.transferRepo.DeleteDraftDocument(ctx, transferID)
}

// Submit moves a draft document to submitted. The document needs at least one
// line and every serial entry must be validated.
func (s *TransferService) Submit(ctx context.Context, transferID string, actorID string) (*domain.TransferDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.fetchActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	doc, err := s.transferRepo.FindDocumentWithLines(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if !canEdit(actor, doc) {
		return nil, apperrors.ErrPermissionDenied
	}
	if !doc.Status.CanTransitionTo(domain.StatusSubmitted) {
		return nil, apperrors.NewInvalidTransition(string(doc.Status), string(domain.StatusSubmitted))
	}
	if len(doc.Lines) == 0 {
		return nil, fmt.Errorf("%w: document has no lines", apperrors.ErrInvalidInput)
	}
	if unvalidated := doc.UnvalidatedSerialCount(); unvalidated > 0 {
		return nil, &apperrors.ValidationRequiredError{UnvalidatedCount: unvalidated}
	}

	now := time.Now()
	prev := doc.Status
	err = s.transferRepo.TransitionStatus(ctx, portsrepo.TransitionParams{
		TransferID: transferID,
		From:       domain.StatusDraft,
		To:         domain.StatusSubmitted,
		History: domain.StatusHistory{
			HistoryID:      uuid.NewString(),
			TransferID:     transferID,
			PreviousStatus: &prev,
			NewStatus:      domain.StatusSubmitted,
			ChangedByID:    actorID,
			ChangeReason:   "submitted for QC",
			ChangedAt:      now,
		},
		UpdatedBy: actorID,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Transfer document submitted", slog.String("transfer_id", transferID))
	return s.transferRepo.FindDocumentWithLines(ctx, transferID)
}

// Approve moves a submitted document to qc_approved and posts it to the ERP.
// A failed post leaves the document qc_approved so the post can be retried.
func (s *TransferService) Approve(ctx context.Context, transferID string, actorID string, notes string) (*domain.TransferDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.fetchActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.HasQCCapability() {
		return nil, apperrors.ErrPermissionDenied
	}
	doc, err := s.transferRepo.FindDocumentWithLines(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if !doc.Status.CanTransitionTo(domain.StatusQCApproved) {
		return nil, apperrors.NewInvalidTransition(string(doc.Status), string(domain.StatusQCApproved))
	}
	// Serial validation is rechecked at approval; stock may have moved since submit.
	if unvalidated := doc.UnvalidatedSerialCount(); unvalidated > 0 {
		return nil, &apperrors.ValidationRequiredError{UnvalidatedCount: unvalidated}
	}

	now := time.Now()
	prev := doc.Status
	approvedQC := domain.QCApproved
	err = s.transferRepo.TransitionStatus(ctx, portsrepo.TransitionParams{
		TransferID:      transferID,
		From:            domain.StatusSubmitted,
		To:              domain.StatusQCApproved,
		SetQCApproverID: &actorID,
		SetQCApprovedAt: &now,
		SetQCNotes:      &notes,
		SetLineQCStatus: &approvedQC,
		History: domain.StatusHistory{
			HistoryID:      uuid.NewString(),
			TransferID:     transferID,
			PreviousStatus: &prev,
			NewStatus:      domain.StatusQCApproved,
			ChangedByID:    actorID,
			ChangeReason:   "QC approved",
			ChangedAt:      now,
		},
		UpdatedBy: actorID,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Transfer document QC approved", slog.String("transfer_id", transferID), slog.String("approver_id", actorID))

	return s.postToERP(ctx, transferID, actorID)
}

// RetryPost re-attempts the ERP post of a qc_approved document.
func (s *TransferService) RetryPost(ctx context.Context, transferID string, actorID string) (*domain.TransferDocument, error) {
	actor, err := s.fetchActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.HasQCCapability() {
		return nil, apperrors.ErrPermissionDenied
	}
	doc, err := s.transferRepo.FindDocumentByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if !doc.Status.CanTransitionTo(domain.StatusPosted) {
		return nil, apperrors.NewInvalidTransition(string(doc.Status), string(domain.StatusPosted))
	}
	return s.postToERP(ctx, transferID, actorID)
}

// postToERP posts a qc_approved document to the ERP and, on success, moves it
// to posted with the ERP document number. On failure the document stays
// qc_approved and the error is returned alongside its current state.
func (s *TransferService) postToERP(ctx context.Context, transferID string, actorID string) (*domain.TransferDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.transferRepo.FindDocumentWithLines(ctx, transferID)
	if err != nil {
		return nil, err
	}

	docNum, err := s.erpClient.PostStockTransfer(ctx, *doc)
	if err != nil {
		logger.Error("ERP stock transfer post failed", slog.String("transfer_id", transferID), slog.String("error", err.Error()))
		return doc, err
	}

	now := time.Now()
	prev := doc.Status
	err = s.transferRepo.TransitionStatus(ctx, portsrepo.TransitionParams{
		TransferID:   transferID,
		From:         domain.StatusQCApproved,
		To:           domain.StatusPosted,
		SetERPDocNum: &docNum,
		History: domain.StatusHistory{
			HistoryID:      uuid.NewString(),
			TransferID:     transferID,
			PreviousStatus: &prev,
			NewStatus:      domain.StatusPosted,
			ChangedByID:    actorID,
			ChangeReason:   "posted to ERP as document " + docNum,
			ChangedAt:      now,
		},
		UpdatedBy: actorID,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Transfer document posted to ERP", slog.String("transfer_id", transferID), slog.String("erp_doc_num", docNum))
	return s.transferRepo.FindDocumentWithLines(ctx, transferID)
}

// Reject moves a submitted document to rejected. Reason must be non-empty.
func (s *TransferService) Reject(ctx context.Context, transferID string, actorID string, reason string) (*domain.TransferDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.fetchActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.HasQCCapability() {
		return nil, apperrors.ErrPermissionDenied
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", apperrors.ErrInvalidInput)
	}
	doc, err := s.transferRepo.FindDocumentByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if !doc.Status.CanTransitionTo(domain.StatusRejected) {
		return nil, apperrors.NewInvalidTransition(string(doc.Status), string(domain.StatusRejected))
	}

	now := time.Now()
	prev := doc.Status
	rejectedQC := domain.QCRejected
	err = s.transferRepo.TransitionStatus(ctx, portsrepo.TransitionParams{
		TransferID:      transferID,
		From:            domain.StatusSubmitted,
		To:              domain.StatusRejected,
		SetQCApproverID: &actorID,
		SetQCNotes:      &reason,
		SetLineQCStatus: &rejectedQC,
		History: domain.StatusHistory{
			HistoryID:      uuid.NewString(),
			TransferID:     transferID,
			PreviousStatus: &prev,
			NewStatus:      domain.StatusRejected,
			ChangedByID:    actorID,
			ChangeReason:   reason,
			ChangedAt:      now,
		},
		UpdatedBy: actorID,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Transfer document rejected", slog.String("transfer_id", transferID), slog.String("reason", reason))
	return s.transferRepo.FindDocumentWithLines(ctx, transferID)
}

// Reopen moves a rejected document back to draft, clearing the QC fields and
// resetting every line's QC status to pending so the document can be reworked.
func (s *TransferService) Reopen(ctx context.Context, transferID string, actorID string) (*domain.TransferDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.fetchActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	doc, err := s.transferRepo.FindDocumentByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if !canEdit(actor, doc) {
		return nil, apperrors.ErrPermissionDenied
	}
	if !doc.Status.CanTransitionTo(domain.StatusDraft) {
		return nil, apperrors.NewInvalidTransition(string(doc.Status), string(domain.StatusDraft))
	}

	now := time.Now()
	prev := doc.Status
	pendingQC := domain.QCPending
	err = s.transferRepo.TransitionStatus(ctx, portsrepo.TransitionParams{
		TransferID:      transferID,
		From:            domain.StatusRejected,
		To:              domain.StatusDraft,
		ClearQCFields:   true,
		SetLineQCStatus: &pendingQC,
		History: domain.StatusHistory{
			HistoryID:      uuid.NewString(),
			TransferID:     transferID,
			PreviousStatus: &prev,
			NewStatus:      domain.StatusDraft,
			ChangedByID:    actorID,
			ChangeReason:   "reopened for rework",
			ChangedAt:      now,
		},
		UpdatedBy: actorID,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Transfer document reopened", slog.String("transfer_id", transferID))
	return s.transferRepo.FindDocumentWithLines(ctx, transferID)
}

// editableDocument loads a document and checks the actor may modify its lines.
func (s *TransferService) editableDocument(ctx context.Context, transferID string, actorID string) (*domain.TransferDocument, error) {
	actor, err := s.fetchActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	doc, err := s.transferRepo.FindDocumentByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if !canEdit(actor, doc) {
		return nil, apperrors.ErrPermissionDenied
	}
	if doc.Status != domain.StatusDraft {
		return nil, fmt.Errorf("%w: lines can only be changed while the document is draft", apperrors.ErrInvalidInput)
	}
	return doc, nil
}

// AddLine appends a quantity-tracked line; duplicate item codes are rejected.
func (s *TransferService) AddLine(ctx context.Context, transferID string, req dto.AddLineRequest, actorID string) (*domain.TransferLine, error) {
	doc, err := s.editableDocument(ctx, transferID, actorID)
	if err != nil {
		return nil, err
	}
	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrInvalidInput)
	}

	fromWarehouse := req.FromWarehouseCode
	if fromWarehouse == "" {
		fromWarehouse = doc.FromWarehouse
	}
	toWarehouse := req.ToWarehouseCode
	if toWarehouse == "" {
		toWarehouse = doc.ToWarehouse
	}

	var totalValue *decimal.Decimal
	if req.UnitPrice != nil {
		tv := req.UnitPrice.Mul(req.Quantity)
		totalValue = &tv
	}

	now := time.Now()
	line := domain.TransferLine{
		LineID:            uuid.NewString(),
		TransferID:        transferID,
		Kind:              domain.LineQuantity,
		ItemCode:          req.ItemCode,
		ItemName:          req.ItemName,
		Quantity:          req.Quantity,
		UnitOfMeasure:     req.UnitOfMeasure,
		FromWarehouseCode: fromWarehouse,
		ToWarehouseCode:   toWarehouse,
		FromBin:           req.FromBin,
		ToBin:             req.ToBin,
		BatchNumber:       req.BatchNumber,
		UnitPrice:         req.UnitPrice,
		TotalValue:        totalValue,
		QCStatus:          domain.QCPending,
		BaseEntry:         req.BaseEntry,
		BaseLine:          req.BaseLine,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.transferRepo.AddLine(ctx, line); err != nil {
		return nil, err
	}
	return &line, nil
}

// AddSerialLine appends a serial-tracked line, validating every serial number
// against the ERP before persisting it. Serials that fail validation are
// stored unvalidated with the reason; they block submission until fixed.
func (s *TransferService) AddSerialLine(ctx context.Context, transferID string, req dto.AddSerialLineRequest, actorID string) (*domain.TransferLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.editableDocument(ctx, transferID, actorID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(req.SerialNumbers))
	for _, sn := range req.SerialNumbers {
		if sn == "" {
			return nil, fmt.Errorf("%w: empty serial number", apperrors.ErrInvalidInput)
		}
		if _, dup := seen[sn]; dup {
			return nil, fmt.Errorf("%w: serial number %s listed twice", apperrors.ErrInvalidInput, sn)
		}
		seen[sn] = struct{}{}
	}

	now := time.Now()
	lineID := uuid.NewString()
	serials := make([]domain.SerialEntry, 0, len(req.SerialNumbers))
	validatedCount := 0
	for _, sn := range req.SerialNumbers {
		verdict := s.validator.ValidateSerial(ctx, sn, req.ItemCode, doc.FromWarehouse)
		entry := domain.SerialEntry{
			SerialID:     uuid.NewString(),
			LineID:       lineID,
			SerialNumber: sn,
			CreatedAt:    now,
		}
		if verdict.Valid {
			entry.InternalSerial = verdict.CanonicalSerial
			entry.SystemNumber = verdict.SystemNumber
			entry.IsValidated = true
			entry.ManufactureDate = verdict.ManufactureDate
			entry.ExpiryDate = verdict.ExpiryDate
			entry.AdmissionDate = verdict.AdmissionDate
			validatedCount++
		} else {
			reason := verdict.Reason
			entry.ValidationError = &reason
		}
		serials = append(serials, entry)
	}

	line := domain.TransferLine{
		LineID:            lineID,
		TransferID:        transferID,
		Kind:              domain.LineSerial,
		ItemCode:          req.ItemCode,
		ItemName:          req.ItemName,
		Quantity:          decimal.Zero,
		UnitOfMeasure:     req.UnitOfMeasure,
		FromWarehouseCode: doc.FromWarehouse,
		ToWarehouseCode:   doc.ToWarehouse,
		QCStatus:          domain.QCPending,
		Serials:           serials,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.transferRepo.AddLine(ctx, line); err != nil {
		return nil, err
	}

	logger.Info("Serial line added",
		slog.String("transfer_id", transferID),
		slog.String("item_code", req.ItemCode),
		slog.Int("serial_count", len(serials)),
		slog.Int("validated_count", validatedCount))
	return &line, nil
}

// DeleteLine removes a line from a draft document.
func (s *TransferService) DeleteLine(ctx context.Context, lineID string, actorID string) error {
	line, err := s.transferRepo.FindLineByID(ctx, lineID)
	if err != nil {
		return err
	}
	if _, err := s.editableDocument(ctx, line.TransferID, actorID); err != nil {
		return err
	}
	return s.transferRepo.DeleteLine(ctx, lineID)
}

// RevalidateSerial re-runs ERP validation for one serial entry. The outcome
// replaces the previous one entirely, so repeating the call is idempotent.
func (s *TransferService) RevalidateSerial(ctx context.Context, serialID string, actorID string) (*domain.SerialEntry, error) {
	serial, err := s.transferRepo.FindSerialByID(ctx, serialID)
	if err != nil {
		return nil, err
	}
	line, err := s.transferRepo.FindLineByID(ctx, serial.LineID)
	if err != nil {
		return nil, err
	}
	doc, err := s.editableDocument(ctx, line.TransferID, actorID)
	if err != nil {
		return nil, err
	}

	warehouse := line.FromWarehouseCode
	if warehouse == "" {
		warehouse = doc.FromWarehouse
	}
	verdict := s.validator.ValidateSerial(ctx, serial.SerialNumber, line.ItemCode, warehouse)

	updated := *serial
	if verdict.Valid {
		updated.InternalSerial = verdict.CanonicalSerial
		updated.SystemNumber = verdict.SystemNumber
		updated.IsValidated = true
		updated.ValidationError = nil
		updated.ManufactureDate = verdict.ManufactureDate
		updated.ExpiryDate = verdict.ExpiryDate
		updated.AdmissionDate = verdict.AdmissionDate
	} else {
		reason := verdict.Reason
		updated.InternalSerial = ""
		updated.SystemNumber = nil
		updated.IsValidated = false
		updated.ValidationError = &reason
	}

	if err := s.transferRepo.UpdateSerialValidation(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteSerial removes one serial entry from a draft document.
func (s *TransferService) DeleteSerial(ctx context.Context, serialID string, actorID string) error {
	serial, err := s.transferRepo.FindSerialByID(ctx, serialID)
	if err != nil {
		return err
	}
	line, err := s.transferRepo.FindLineByID(ctx, serial.LineID)
	if err != nil {
		return err
	}
	if _, err := s.editableDocument(ctx, line.TransferID, actorID); err != nil {
		return err
	}
	return s.transferRepo.DeleteSerial(ctx, serialID)
}
