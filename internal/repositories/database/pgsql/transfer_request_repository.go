package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wareflow/wms_backend/internal/apperrors"
	"github.com/wareflow/wms_backend/internal/core/domain"
	portsrepo "github.com/wareflow/wms_backend/internal/core/ports/repositories"
	"github.com/wareflow/wms_backend/internal/models"
	"github.com/wareflow/wms_backend/internal/utils/mapping"
	"github.com/wareflow/wms_backend/internal/utils/pagination"
)

type PgxTransferRequestRepository struct {
	BaseRepository
}

// newPgxTransferRequestRepository creates a new repository for synced ERP transfer requests.
func newPgxTransferRequestRepository(pool *pgxpool.Pool) portsrepo.TransferRequestRepositoryFacade {
	return &PgxTransferRequestRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransferRequestRepository implements portsrepo.TransferRequestRepositoryFacade
var _ portsrepo.TransferRequestRepositoryFacade = (*PgxTransferRequestRepository)(nil)

const requestColumns = `
	request_id, erp_doc_entry, request_number, from_warehouse, to_warehouse,
	document_status, total_lines, total_quantity, created_by_name,
	document_date, due_date, comments, synced_at, is_processed
`

func scanRequest(row pgx.Row) (models.TransferRequest, error) {
	var m models.TransferRequest
	err := row.Scan(
		&m.RequestID,
		&m.ERPDocEntry,
		&m.RequestNumber,
		&m.FromWarehouse,
		&m.ToWarehouse,
		&m.DocumentStatus,
		&m.TotalLines,
		&m.TotalQuantity,
		&m.CreatedByName,
		&m.DocumentDate,
		&m.DueDate,
		&m.Comments,
		&m.SyncedAt,
		&m.IsProcessed,
	)
	return m, err
}

// FindRequestByNumber retrieves a transfer request by its ERP request number.
func (r *PgxTransferRequestRepository) FindRequestByNumber(ctx context.Context, requestNumber string) (*domain.TransferRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM transfer_requests WHERE request_number = $1;`
	m, err := scanRequest(r.Pool.QueryRow(ctx, query, requestNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transfer request "+requestNumber, err)
	}
	req := mapping.ToDomainTransferRequest(m)
	return &req, nil
}

// ListRequests retrieves a paginated list of synced transfer requests, most recent first.
func (r *PgxTransferRequestRepository) ListRequests(ctx context.Context, onlyOpen bool, limit int, nextToken *string) ([]domain.TransferRequest, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + requestColumns + ` FROM transfer_requests WHERE 1=1`
	args := []interface{}{}
	if onlyOpen {
		query += ` AND document_status = 'Open' AND is_processed = FALSE`
	}
	if nextToken != nil && *nextToken != "" {
		lastSyncedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastSyncedAt)
		query += ` AND synced_at < $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY synced_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transfer requests", err)
	}
	defer rows.Close()

	fetched := make([]models.TransferRequest, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanRequest(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transfer request row", scanErr)
		}
		fetched = append(fetched, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transfer request rows", err)
	}

	var nextTokenVal *string
	if len(fetched) > limit {
		last := fetched[limit-1]
		token := pagination.EncodeDateBasedToken(last.SyncedAt)
		nextTokenVal = &token
		fetched = fetched[:limit]
	}

	requests := make([]domain.TransferRequest, len(fetched))
	for i, m := range fetched {
		requests[i] = mapping.ToDomainTransferRequest(m)
	}
	return requests, nextTokenVal, nil
}

// UpsertRequests inserts or refreshes synced requests keyed by ERP DocEntry.
func (r *PgxTransferRequestRepository) UpsertRequests(ctx context.Context, requests []domain.TransferRequest) error {
	if len(requests) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO transfer_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (erp_doc_entry) DO UPDATE SET
			request_number = EXCLUDED.request_number,
			from_warehouse = EXCLUDED.from_warehouse,
			to_warehouse = EXCLUDED.to_warehouse,
			document_status = EXCLUDED.document_status,
			total_lines = EXCLUDED.total_lines,
			total_quantity = EXCLUDED.total_quantity,
			created_by_name = EXCLUDED.created_by_name,
			document_date = EXCLUDED.document_date,
			due_date = EXCLUDED.due_date,
			comments = EXCLUDED.comments,
			synced_at = EXCLUDED.synced_at;
	`
	batch := &pgx.Batch{}
	for _, req := range requests {
		m := mapping.ToModelTransferRequest(req)
		batch.Queue(query,
			m.RequestID,
			m.ERPDocEntry,
			m.RequestNumber,
			m.FromWarehouse,
			m.ToWarehouse,
			m.DocumentStatus,
			m.TotalLines,
			m.TotalQuantity,
			m.CreatedByName,
			m.DocumentDate,
			m.DueDate,
			m.Comments,
			m.SyncedAt,
			m.IsProcessed,
		)
	}
	br := tx.SendBatch(ctx, batch)
	for range requests {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to upsert transfer requests", err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close transfer request upsert batch", err)
	}

	return r.Commit(ctx, tx)
}

// MarkRequestProcessed flags a request as consumed by a local document.
func (r *PgxTransferRequestRepository) MarkRequestProcessed(ctx context.Context, erpDocEntry int) error {
	query := `UPDATE transfer_requests SET is_processed = TRUE WHERE erp_doc_entry = $1;`
	tag, err := r.Pool.Exec(ctx, query, erpDocEntry)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark transfer request processed", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
