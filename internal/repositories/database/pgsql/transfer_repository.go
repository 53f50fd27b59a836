package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wareflow/wms_backend/internal/apperrors"
	"github.com/wareflow/wms_backend/internal/core/domain"
	portsrepo "github.com/wareflow/wms_backend/internal/core/ports/repositories"
	"github.com/wareflow/wms_backend/internal/models"
	"github.com/wareflow/wms_backend/internal/utils/mapping"
	"github.com/wareflow/wms_backend/internal/utils/pagination"
)

type PgxTransferRepository struct {
	BaseRepository
}

// newPgxTransferRepository creates a new repository for transfer documents, lines and serial entries.
func newPgxTransferRepository(pool *pgxpool.Pool) portsrepo.TransferRepositoryFacade {
	return &PgxTransferRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransferRepository implements portsrepo.TransferRepositoryFacade
var _ portsrepo.TransferRepositoryFacade = (*PgxTransferRepository)(nil)

const documentColumns = `
	transfer_id, transfer_number, erp_doc_num, status, transfer_type, priority,
	reason_code, notes, owner_id, qc_approver_id, qc_approved_at, qc_notes,
	from_warehouse, to_warehouse,
	created_at, created_by, last_updated_at, last_updated_by
`

const lineColumns = `
	line_id, transfer_id, kind, item_code, item_name, quantity, unit_of_measure,
	from_warehouse_code, to_warehouse_code, from_bin, to_bin, batch_number,
	unit_price, total_value, qc_status, base_entry, base_line, erp_line_num,
	created_at, created_by, last_updated_at, last_updated_by
`

const serialColumns = `
	serial_id, line_id, serial_number, internal_serial, system_number,
	is_validated, validation_error, manufacture_date, expiry_date, admission_date,
	created_at
`

func scanDocument(row pgx.Row) (models.TransferDocument, error) {
	var m models.TransferDocument
	err := row.Scan(
		&m.TransferID,
		&m.TransferNumber,
		&m.ERPDocNum,
		&m.Status,
		&m.TransferType,
		&m.Priority,
		&m.ReasonCode,
		&m.Notes,
		&m.OwnerID,
		&m.QCApproverID,
		&m.QCApprovedAt,
		&m.QCNotes,
		&m.FromWarehouse,
		&m.ToWarehouse,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row pgx.Row) (models.TransferLine, error) {
	var m models.TransferLine
	err := row.Scan(
		&m.LineID,
		&m.TransferID,
		&m.Kind,
		&m.ItemCode,
		&m.ItemName,
		&m.Quantity,
		&m.UnitOfMeasure,
		&m.FromWarehouseCode,
		&m.ToWarehouseCode,
		&m.FromBin,
		&m.ToBin,
		&m.BatchNumber,
		&m.UnitPrice,
		&m.TotalValue,
		&m.QCStatus,
		&m.BaseEntry,
		&m.BaseLine,
		&m.ERPLineNum,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanSerial(row pgx.Row) (models.SerialEntry, error) {
	var m models.SerialEntry
	err := row.Scan(
		&m.SerialID,
		&m.LineID,
		&m.SerialNumber,
		&m.InternalSerial,
		&m.SystemNumber,
		&m.IsValidated,
		&m.ValidationError,
		&m.ManufactureDate,
		&m.ExpiryDate,
		&m.AdmissionDate,
		&m.CreatedAt,
	)
	return m, err
}

// FindDocumentByID retrieves a document header by its unique identifier.
func (r *PgxTransferRepository) FindDocumentByID(ctx context.Context, transferID string) (*domain.TransferDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM transfer_documents WHERE transfer_id = $1;`
	m, err := scanDocument(r.Pool.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transfer document "+transferID, err)
	}
	doc := mapping.ToDomainTransferDocument(m)
	return &doc, nil
}

// FindDocumentByNumber retrieves a document by its business transfer number.
func (r *PgxTransferRepository) FindDocumentByNumber(ctx context.Context, transferNumber string) (*domain.TransferDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM transfer_documents WHERE transfer_number = $1;`
	m, err := scanDocument(r.Pool.QueryRow(ctx, query, transferNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transfer document number "+transferNumber, err)
	}
	doc := mapping.ToDomainTransferDocument(m)
	return &doc, nil
}

// FindDocumentWithLines retrieves a document together with its lines and their serial entries.
func (r *PgxTransferRepository) FindDocumentWithLines(ctx context.Context, transferID string) (*domain.TransferDocument, error) {
	doc, err := r.FindDocumentByID(ctx, transferID)
	if err != nil {
		return nil, err
	}

	lineQuery := `SELECT ` + lineColumns + ` FROM transfer_lines WHERE transfer_id = $1 ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, lineQuery, transferID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for transfer "+transferID, err)
	}
	defer rows.Close()

	lines := make([]domain.TransferLine, 0)
	for rows.Next() {
		m, scanErr := scanLine(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for transfer "+transferID, scanErr)
		}
		lines = append(lines, mapping.ToDomainTransferLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for transfer "+transferID, err)
	}

	serialQuery := `
		SELECT ` + serialColumns + `
		FROM serial_entries
		WHERE line_id IN (SELECT line_id FROM transfer_lines WHERE transfer_id = $1)
		ORDER BY created_at ASC;`
	serialRows, err := r.Pool.Query(ctx, serialQuery, transferID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query serial entries for transfer "+transferID, err)
	}
	defer serialRows.Close()

	serialsByLine := make(map[string][]domain.SerialEntry)
	for serialRows.Next() {
		m, scanErr := scanSerial(serialRows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan serial row for transfer "+transferID, scanErr)
		}
		s := mapping.ToDomainSerialEntry(m)
		serialsByLine[s.LineID] = append(serialsByLine[s.LineID], s)
	}
	if err := serialRows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating serial rows for transfer "+transferID, err)
	}

	for i := range lines {
		lines[i].Serials = serialsByLine[lines[i].LineID]
	}
	doc.Lines = lines
	return doc, nil
}

func (r *PgxTransferRepository) listDocuments(ctx context.Context, whereClause string, whereArg interface{}, limit int, nextToken *string) ([]domain.TransferDocument, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + documentColumns + ` FROM transfer_documents WHERE ` + whereClause
	orderByClause := `ORDER BY created_at DESC`

	args := []interface{}{whereArg}
	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND created_at < $2`
		args = append(args, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transfer documents", err)
	}
	defer rows.Close()

	fetched := make([]models.TransferDocument, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanDocument(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transfer document row", scanErr)
		}
		fetched = append(fetched, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transfer document rows", err)
	}

	var nextTokenVal *string
	if len(fetched) > limit {
		last := fetched[limit-1]
		token := pagination.EncodeDateBasedToken(last.CreatedAt)
		nextTokenVal = &token
		fetched = fetched[:limit]
	}

	docs := make([]domain.TransferDocument, len(fetched))
	for i, m := range fetched {
		docs[i] = mapping.ToDomainTransferDocument(m)
	}
	return docs, nextTokenVal, nil
}

// ListDocumentsByOwner retrieves a paginated list of documents created by one user.
func (r *PgxTransferRepository) ListDocumentsByOwner(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.TransferDocument, *string, error) {
	return r.listDocuments(ctx, `owner_id = $1`, ownerID, limit, nextToken)
}

// ListDocumentsByStatus retrieves a paginated list of documents in the given status.
func (r *PgxTransferRepository) ListDocumentsByStatus(ctx context.Context, status domain.TransferStatus, limit int, nextToken *string) ([]domain.TransferDocument, *string, error) {
	return r.listDocuments(ctx, `status = $1`, string(status), limit, nextToken)
}

const insertHistoryQuery = `
	INSERT INTO transfer_status_history (
		history_id, transfer_id, previous_status, new_status, changed_by_id, change_reason, changed_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

func insertHistoryTx(ctx context.Context, tx pgx.Tx, history domain.StatusHistory) error {
	m := mapping.ToModelStatusHistory(history)
	_, err := tx.Exec(ctx, insertHistoryQuery,
		m.HistoryID,
		m.TransferID,
		m.PreviousStatus,
		m.NewStatus,
		m.ChangedByID,
		m.ChangeReason,
		m.ChangedAt,
	)
	return err
}

// SaveDocument persists a new draft document and its creation history record atomically.
func (r *PgxTransferRepository) SaveDocument(ctx context.Context, doc domain.TransferDocument, history domain.StatusHistory) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTransferDocument(doc)
	query := `
		INSERT INTO transfer_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, query,
		m.TransferID,
		m.TransferNumber,
		m.ERPDocNum,
		m.Status,
		m.TransferType,
		m.Priority,
		m.ReasonCode,
		m.Notes,
		m.OwnerID,
		m.QCApproverID,
		m.QCApprovedAt,
		m.QCNotes,
		m.FromWarehouse,
		m.ToWarehouse,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on transfer_number
			return apperrors.NewAppError(409, "transfer number already exists: "+doc.TransferNumber, err)
		}
		return apperrors.NewAppError(500, "failed to insert transfer document "+doc.TransferID, err)
	}

	if err := insertHistoryTx(ctx, tx, history); err != nil {
		return apperrors.NewAppError(500, "failed to insert status history for transfer "+doc.TransferID, err)
	}

	return r.Commit(ctx, tx)
}

// TransitionStatus applies one workflow status change atomically. The header
// update carries a status guard so concurrent transitions cannot both win;
// the loser sees the document in its new status and gets ErrInvalidTransition.
func (r *PgxTransferRepository) TransitionStatus(ctx context.Context, params portsrepo.TransitionParams) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	setClauses := `status = $3, last_updated_at = $4, last_updated_by = $5`
	args := []interface{}{params.TransferID, string(params.From), string(params.To), params.UpdatedAt, params.UpdatedBy}

	if params.SetQCApproverID != nil {
		args = append(args, *params.SetQCApproverID)
		setClauses += `, qc_approver_id = $` + strconv.Itoa(len(args))
	}
	if params.SetQCApprovedAt != nil {
		args = append(args, *params.SetQCApprovedAt)
		setClauses += `, qc_approved_at = $` + strconv.Itoa(len(args))
	}
	if params.SetQCNotes != nil {
		args = append(args, *params.SetQCNotes)
		setClauses += `, qc_notes = $` + strconv.Itoa(len(args))
	}
	if params.ClearQCFields {
		setClauses += `, qc_approver_id = NULL, qc_approved_at = NULL, qc_notes = NULL`
	}
	if params.SetERPDocNum != nil {
		args = append(args, *params.SetERPDocNum)
		setClauses += `, erp_doc_num = $` + strconv.Itoa(len(args))
	}

	query := `UPDATE transfer_documents SET ` + setClauses + ` WHERE transfer_id = $1 AND status = $2;`
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of transfer "+params.TransferID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the document is gone or another transition got there first.
		var current string
		scanErr := tx.QueryRow(ctx, `SELECT status FROM transfer_documents WHERE transfer_id = $1;`, params.TransferID).Scan(&current)
		if scanErr != nil {
			if errors.Is(scanErr, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return apperrors.NewAppError(500, "failed to read status of transfer "+params.TransferID, scanErr)
		}
		return apperrors.NewInvalidTransition(current, string(params.To))
	}

	if params.SetLineQCStatus != nil {
		lineQuery := `UPDATE transfer_lines SET qc_status = $2, last_updated_at = $3, last_updated_by = $4 WHERE transfer_id = $1;`
		if _, err := tx.Exec(ctx, lineQuery, params.TransferID, string(*params.SetLineQCStatus), params.UpdatedAt, params.UpdatedBy); err != nil {
			return apperrors.NewAppError(500, "failed to sweep line QC status for transfer "+params.TransferID, err)
		}
	}

	if err := insertHistoryTx(ctx, tx, params.History); err != nil {
		return apperrors.NewAppError(500, "failed to insert status history for transfer "+params.TransferID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteDraftDocument removes a document, its lines, serial entries and history.
// The status check belongs to the service layer; this method only deletes.
func (r *PgxTransferRepository) DeleteDraftDocument(ctx context.Context, transferID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	queries := []string{
		`DELETE FROM serial_entries WHERE line_id IN (SELECT line_id FROM transfer_lines WHERE transfer_id = $1);`,
		`DELETE FROM transfer_lines WHERE transfer_id = $1;`,
		`DELETE FROM transfer_status_history WHERE transfer_id = $1;`,
	}
	for _, q := range queries {
		if _, err := tx.Exec(ctx, q, transferID); err != nil {
			return apperrors.NewAppError(500, "failed to delete children of transfer "+transferID, err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM transfer_documents WHERE transfer_id = $1;`, transferID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transfer document "+transferID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// FindLineByID retrieves a single line including its serial entries.
func (r *PgxTransferRepository) FindLineByID(ctx context.Context, lineID string) (*domain.TransferLine, error) {
	query := `SELECT ` + lineColumns + ` FROM transfer_lines WHERE line_id = $1;`
	m, err := scanLine(r.Pool.QueryRow(ctx, query, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find line "+lineID, err)
	}
	line := mapping.ToDomainTransferLine(m)

	serialQuery := `SELECT ` + serialColumns + ` FROM serial_entries WHERE line_id = $1 ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, serialQuery, lineID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query serial entries for line "+lineID, err)
	}
	defer rows.Close()

	for rows.Next() {
		sm, scanErr := scanSerial(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan serial row for line "+lineID, scanErr)
		}
		line.Serials = append(line.Serials, mapping.ToDomainSerialEntry(sm))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating serial rows for line "+lineID, err)
	}
	return &line, nil
}

// FindSerialByID retrieves a single serial entry.
func (r *PgxTransferRepository) FindSerialByID(ctx context.Context, serialID string) (*domain.SerialEntry, error) {
	query := `SELECT ` + serialColumns + ` FROM serial_entries WHERE serial_id = $1;`
	m, err := scanSerial(r.Pool.QueryRow(ctx, query, serialID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find serial entry "+serialID, err)
	}
	s := mapping.ToDomainSerialEntry(m)
	return &s, nil
}

// AddLine inserts a line plus any owned serial entries in one transaction.
// The duplicate item-code check runs in the same transaction; the unique
// constraint on (transfer_id, item_code) backs it up under concurrency.
func (r *PgxTransferRepository) AddLine(ctx context.Context, line domain.TransferLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var exists bool
	dupQuery := `SELECT EXISTS(SELECT 1 FROM transfer_lines WHERE transfer_id = $1 AND item_code = $2);`
	if err := tx.QueryRow(ctx, dupQuery, line.TransferID, line.ItemCode).Scan(&exists); err != nil {
		return apperrors.NewAppError(500, "failed to check for duplicate item on transfer "+line.TransferID, err)
	}
	if exists {
		return &apperrors.DuplicateItemError{ItemCode: line.ItemCode}
	}

	m := mapping.ToModelTransferLine(line)
	lineQuery := `
		INSERT INTO transfer_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err = tx.Exec(ctx, lineQuery,
		m.LineID,
		m.TransferID,
		m.Kind,
		m.ItemCode,
		m.ItemName,
		m.Quantity,
		m.UnitOfMeasure,
		m.FromWarehouseCode,
		m.ToWarehouseCode,
		m.FromBin,
		m.ToBin,
		m.BatchNumber,
		m.UnitPrice,
		m.TotalValue,
		m.QCStatus,
		m.BaseEntry,
		m.BaseLine,
		m.ERPLineNum,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on (transfer_id, item_code)
			return &apperrors.DuplicateItemError{ItemCode: line.ItemCode}
		}
		return apperrors.NewAppError(500, "failed to insert line "+line.LineID, err)
	}

	if len(line.Serials) > 0 {
		batch := &pgx.Batch{}
		serialQuery := `
			INSERT INTO serial_entries (` + serialColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
		`
		for _, s := range line.Serials {
			sm := mapping.ToModelSerialEntry(s)
			batch.Queue(serialQuery,
				sm.SerialID,
				sm.LineID,
				sm.SerialNumber,
				sm.InternalSerial,
				sm.SystemNumber,
				sm.IsValidated,
				sm.ValidationError,
				sm.ManufactureDate,
				sm.ExpiryDate,
				sm.AdmissionDate,
				sm.CreatedAt,
			)
		}
		br := tx.SendBatch(ctx, batch)
		for range line.Serials {
			if _, err := br.Exec(); err != nil {
				br.Close()
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on (line_id, serial_number)
					return apperrors.NewAppError(409, "duplicate serial number on line "+line.LineID, err)
				}
				return apperrors.NewAppError(500, "failed to insert serial entries for line "+line.LineID, err)
			}
		}
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to close serial insert batch for line "+line.LineID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteLine removes a line and its serial entries.
func (r *PgxTransferRepository) DeleteLine(ctx context.Context, lineID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM serial_entries WHERE line_id = $1;`, lineID); err != nil {
		return apperrors.NewAppError(500, "failed to delete serial entries of line "+lineID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM transfer_lines WHERE line_id = $1;`, lineID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete line "+lineID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// UpdateSerialValidation overwrites the validation outcome of one serial entry.
func (r *PgxTransferRepository) UpdateSerialValidation(ctx context.Context, serial domain.SerialEntry) error {
	m := mapping.ToModelSerialEntry(serial)
	query := `
		UPDATE serial_entries
		SET internal_serial = $2, system_number = $3, is_validated = $4, validation_error = $5,
		    manufacture_date = $6, expiry_date = $7, admission_date = $8
		WHERE serial_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.SerialID,
		m.InternalSerial,
		m.SystemNumber,
		m.IsValidated,
		m.ValidationError,
		m.ManufactureDate,
		m.ExpiryDate,
		m.AdmissionDate,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update serial entry "+serial.SerialID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSerial removes a single serial entry.
func (r *PgxTransferRepository) DeleteSerial(ctx context.Context, serialID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM serial_entries WHERE serial_id = $1;`, serialID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete serial entry "+serialID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListHistoryByTransfer retrieves all history records for a document, oldest first.
func (r *PgxTransferRepository) ListHistoryByTransfer(ctx context.Context, transferID string) ([]domain.StatusHistory, error) {
	query := `
		SELECT history_id, transfer_id, previous_status, new_status, changed_by_id, change_reason, changed_at
		FROM transfer_status_history
		WHERE transfer_id = $1
		ORDER BY changed_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, transferID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query status history for transfer "+transferID, err)
	}
	defer rows.Close()

	history := make([]domain.StatusHistory, 0)
	for rows.Next() {
		var m models.StatusHistory
		err := rows.Scan(
			&m.HistoryID,
			&m.TransferID,
			&m.PreviousStatus,
			&m.NewStatus,
			&m.ChangedByID,
			&m.ChangeReason,
			&m.ChangedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan history row for transfer "+transferID, err)
		}
		history = append(history, mapping.ToDomainStatusHistory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating history rows for transfer "+transferID, err)
	}
	return history, nil
}
