package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/wareflow/wms_backend/internal/apperrors"
	"github.com/wareflow/wms_backend/internal/core/domain"
	portsrepo "github.com/wareflow/wms_backend/internal/core/ports/repositories"
	"github.com/wareflow/wms_backend/internal/models"
	"github.com/wareflow/wms_backend/internal/utils/mapping"
	"github.com/wareflow/wms_backend/internal/utils/pagination"
)

type PgxPickListRepository struct {
	BaseRepository
}

// newPgxPickListRepository creates a new repository for pick lists mirrored from the ERP.
func newPgxPickListRepository(pool *pgxpool.Pool) portsrepo.PickListRepositoryFacade {
	return &PgxPickListRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPickListRepository implements portsrepo.PickListRepositoryFacade
var _ portsrepo.PickListRepositoryFacade = (*PgxPickListRepository)(nil)

const pickListColumns = `
	pick_list_id, absolute_entry, pick_list_number, owner_code, owner_name, pick_date,
	status, remarks, total_items, picked_items, synced_at,
	created_at, created_by, last_updated_at, last_updated_by
`

const pickListLineColumns = `
	line_id, pick_list_id, line_number, order_entry, order_row_id, item_code, item_name,
	quantity, picked_quantity, pick_status, warehouse_code, unit_of_measure
`

func scanPickList(row pgx.Row) (models.PickList, error) {
	var m models.PickList
	err := row.Scan(
		&m.PickListID,
		&m.AbsoluteEntry,
		&m.PickListNumber,
		&m.OwnerCode,
		&m.OwnerName,
		&m.PickDate,
		&m.Status,
		&m.Remarks,
		&m.TotalItems,
		&m.PickedItems,
		&m.SyncedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanPickListLine(row pgx.Row) (models.PickListLine, error) {
	var m models.PickListLine
	err := row.Scan(
		&m.LineID,
		&m.PickListID,
		&m.LineNumber,
		&m.OrderEntry,
		&m.OrderRowID,
		&m.ItemCode,
		&m.ItemName,
		&m.Quantity,
		&m.PickedQuantity,
		&m.PickStatus,
		&m.WarehouseCode,
		&m.UnitOfMeasure,
	)
	return m, err
}

func (r *PgxPickListRepository) findPickList(ctx context.Context, whereClause string, arg interface{}) (*domain.PickList, error) {
	query := `SELECT ` + pickListColumns + ` FROM pick_lists WHERE ` + whereClause + `;`
	m, err := scanPickList(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find pick list", err)
	}
	p := mapping.ToDomainPickList(m)

	lineQuery := `SELECT ` + pickListLineColumns + ` FROM pick_list_lines WHERE pick_list_id = $1 ORDER BY line_number ASC;`
	rows, err := r.Pool.Query(ctx, lineQuery, p.PickListID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for pick list "+p.PickListID, err)
	}
	defer rows.Close()

	lines := make([]domain.PickListLine, 0)
	for rows.Next() {
		lm, scanErr := scanPickListLine(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan pick list line row", scanErr)
		}
		lines = append(lines, mapping.ToDomainPickListLine(lm))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating pick list line rows", err)
	}

	binQuery := `
		SELECT allocation_id, pick_list_line_id, bin_abs_entry, bin_code, warehouse_code, quantity, picked_quantity
		FROM pick_list_bin_allocations
		WHERE pick_list_line_id IN (SELECT line_id FROM pick_list_lines WHERE pick_list_id = $1)
		ORDER BY bin_code ASC;
	`
	binRows, err := r.Pool.Query(ctx, binQuery, p.PickListID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bin allocations for pick list "+p.PickListID, err)
	}
	defer binRows.Close()

	binsByLine := make(map[string][]domain.BinAllocation)
	for binRows.Next() {
		var bm models.BinAllocation
		err := binRows.Scan(
			&bm.AllocationID,
			&bm.PickListLineID,
			&bm.BinAbsEntry,
			&bm.BinCode,
			&bm.WarehouseCode,
			&bm.Quantity,
			&bm.PickedQuantity,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bin allocation row", err)
		}
		b := mapping.ToDomainBinAllocation(bm)
		binsByLine[b.PickListLineID] = append(binsByLine[b.PickListLineID], b)
	}
	if err := binRows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bin allocation rows", err)
	}

	for i := range lines {
		lines[i].BinAllocations = binsByLine[lines[i].LineID]
	}
	p.Lines = lines
	return &p, nil
}

// FindPickListByID retrieves a pick list with its lines and bin allocations.
func (r *PgxPickListRepository) FindPickListByID(ctx context.Context, pickListID string) (*domain.PickList, error) {
	return r.findPickList(ctx, `pick_list_id = $1`, pickListID)
}

// FindPickListByAbsEntry retrieves a pick list by its ERP AbsoluteEntry.
func (r *PgxPickListRepository) FindPickListByAbsEntry(ctx context.Context, absEntry int) (*domain.PickList, error) {
	return r.findPickList(ctx, `absolute_entry = $1`, absEntry)
}

// ListPickLists retrieves a paginated list of pick list headers, most recently synced first.
func (r *PgxPickListRepository) ListPickLists(ctx context.Context, limit int, nextToken *string) ([]domain.PickList, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + pickListColumns + ` FROM pick_lists`
	args := []interface{}{}
	if nextToken != nil && *nextToken != "" {
		lastSyncedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastSyncedAt)
		query += ` WHERE synced_at < $1`
	}
	query += ` ORDER BY synced_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query pick lists", err)
	}
	defer rows.Close()

	fetched := make([]models.PickList, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanPickList(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan pick list row", scanErr)
		}
		fetched = append(fetched, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating pick list rows", err)
	}

	var nextTokenVal *string
	if len(fetched) > limit {
		last := fetched[limit-1]
		token := pagination.EncodeDateBasedToken(last.SyncedAt)
		nextTokenVal = &token
		fetched = fetched[:limit]
	}

	pickLists := make([]domain.PickList, len(fetched))
	for i, m := range fetched {
		pickLists[i] = mapping.ToDomainPickList(m)
	}
	return pickLists, nextTokenVal, nil
}

// UpsertPickList inserts or refreshes a pick list from ERP data in one
// transaction, keyed by AbsoluteEntry. Lines and bin allocations are replaced
// wholesale; local picking progress lives in the ERP fields themselves so a
// refresh carries it forward.
func (r *PgxPickListRepository) UpsertPickList(ctx context.Context, pickList domain.PickList) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelPickList(pickList)
	headerQuery := `
		INSERT INTO pick_lists (` + pickListColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (absolute_entry) DO UPDATE SET
			pick_list_number = EXCLUDED.pick_list_number,
			owner_code = EXCLUDED.owner_code,
			owner_name = EXCLUDED.owner_name,
			pick_date = EXCLUDED.pick_date,
			status = EXCLUDED.status,
			remarks = EXCLUDED.remarks,
			total_items = EXCLUDED.total_items,
			picked_items = EXCLUDED.picked_items,
			synced_at = EXCLUDED.synced_at,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING pick_list_id;
	`
	var pickListID string
	err = tx.QueryRow(ctx, headerQuery,
		m.PickListID,
		m.AbsoluteEntry,
		m.PickListNumber,
		m.OwnerCode,
		m.OwnerName,
		m.PickDate,
		m.Status,
		m.Remarks,
		m.TotalItems,
		m.PickedItems,
		m.SyncedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&pickListID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert pick list "+strconv.Itoa(pickList.AbsoluteEntry), err)
	}

	childQueries := []string{
		`DELETE FROM pick_list_bin_allocations WHERE pick_list_line_id IN (SELECT line_id FROM pick_list_lines WHERE pick_list_id = $1);`,
		`DELETE FROM pick_list_lines WHERE pick_list_id = $1;`,
	}
	for _, q := range childQueries {
		if _, err := tx.Exec(ctx, q, pickListID); err != nil {
			return apperrors.NewAppError(500, "failed to clear children of pick list "+pickListID, err)
		}
	}

	lineQuery := `
		INSERT INTO pick_list_lines (` + pickListLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	binQuery := `
		INSERT INTO pick_list_bin_allocations (allocation_id, pick_list_line_id, bin_abs_entry, bin_code, warehouse_code, quantity, picked_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	queued := 0
	for _, line := range pickList.Lines {
		lm := mapping.ToModelPickListLine(line)
		lm.PickListID = pickListID
		batch.Queue(lineQuery,
			lm.LineID,
			lm.PickListID,
			lm.LineNumber,
			lm.OrderEntry,
			lm.OrderRowID,
			lm.ItemCode,
			lm.ItemName,
			lm.Quantity,
			lm.PickedQuantity,
			lm.PickStatus,
			lm.WarehouseCode,
			lm.UnitOfMeasure,
		)
		queued++
		for _, bin := range line.BinAllocations {
			bm := mapping.ToModelBinAllocation(bin)
			bm.PickListLineID = lm.LineID
			batch.Queue(binQuery,
				bm.AllocationID,
				bm.PickListLineID,
				bm.BinAbsEntry,
				bm.BinCode,
				bm.WarehouseCode,
				bm.Quantity,
				bm.PickedQuantity,
			)
			queued++
		}
	}
	if queued > 0 {
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < queued; i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return apperrors.NewAppError(500, "failed to insert lines for pick list "+pickListID, err)
			}
		}
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to close line insert batch for pick list "+pickListID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateLinePick updates the picked quantity and status of a line and refreshes
// the header's picked-items count in one transaction.
func (r *PgxPickListRepository) UpdateLinePick(ctx context.Context, lineID string, pickedQuantity decimal.Decimal, status domain.PickStatus, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var pickListID string
	lineQuery := `
		UPDATE pick_list_lines
		SET picked_quantity = $2, pick_status = $3
		WHERE line_id = $1
		RETURNING pick_list_id;
	`
	err = tx.QueryRow(ctx, lineQuery, lineID, pickedQuantity, string(status)).Scan(&pickListID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to update pick list line "+lineID, err)
	}

	headerQuery := `
		UPDATE pick_lists
		SET picked_items = (
			SELECT COUNT(*) FROM pick_list_lines
			WHERE pick_list_id = $1 AND pick_status IN ('ps_Picked', 'ps_Closed')
		),
		last_updated_at = $2, last_updated_by = $3
		WHERE pick_list_id = $1;
	`
	if _, err := tx.Exec(ctx, headerQuery, pickListID, updatedAt, updatedBy); err != nil {
		return apperrors.NewAppError(500, "failed to refresh pick list header "+pickListID, err)
	}

	return r.Commit(ctx, tx)
}
