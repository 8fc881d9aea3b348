package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository"
)

type RepairRepo struct{ db DBTX }

func repairSelect() sq.SelectBuilder {
	return psql.Select(
		"r.repair_id", "r.device_id", "d.device_name", "dc.device_cat_name",
		"r.issue_description", "r.issue_date", "r.return_date", "r.cost",
		"r.vendor_id", "v.vendor_name", "r.status_id", "s.repair_status_name", "s.color",
	).
		From("repair r").
		Join("device d ON d.device_id = r.device_id").
		Join("devicecat dc ON dc.device_cat_id = d.category_id").
		Join("vendor v ON v.vendor_id = r.vendor_id").
		Join("repairstatus s ON s.repair_status_id = r.status_id")
}

func scanRepair(row pgx.Row) (models.Repair, error) {
	var r models.Repair
	err := row.Scan(
		&r.ID, &r.DeviceID, &r.DeviceName, &r.Category,
		&r.IssueDescription, &r.IssueDate, &r.ReturnDate, &r.Cost,
		&r.VendorID, &r.Vendor, &r.StatusID, &r.Status, &r.StatusColor,
	)
	return r, err
}

// repairListQuery orders most recent issue first.
func repairListQuery(f repository.TicketFilter) sq.SelectBuilder {
	f = f.Normalize()
	q := repairSelect()
	if f.Status != "" {
		q = q.Where(sq.Eq{"s.repair_status_name": f.Status})
	}
	if f.Category != "" {
		q = q.Where(sq.Eq{"dc.device_cat_name": f.Category})
	}
	return q.OrderBy("r.issue_date DESC", "r.repair_id DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))
}

func repairUpdateQuery(id int, c models.RepairChanges) sq.UpdateBuilder {
	return applyAssignments(psql.Update("repair"), c.Assignments()).
		Where(sq.Eq{"repair_id": id})
}

func (r *RepairRepo) List(ctx context.Context, f repository.TicketFilter) ([]models.Repair, error) {
	sql, args, err := repairListQuery(f).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list repairs: %w", err)
	}
	defer rows.Close()

	out := []models.Repair{}
	for rows.Next() {
		rep, err := scanRepair(rows)
		if err != nil {
			return nil, fmt.Errorf("scan repair: %w", err)
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

// Get returns nil, nil when the id does not exist.
func (r *RepairRepo) Get(ctx context.Context, id int) (*models.Repair, error) {
	sql, args, err := repairSelect().Where(sq.Eq{"r.repair_id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	rep, err := scanRepair(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get repair %d: %w", id, err)
	}
	return &rep, nil
}

func (r *RepairRepo) Create(ctx context.Context, rep *models.Repair) error {
	id, err := insertReturningID(ctx, r.db, psql.Insert("repair").
		Columns("device_id", "issue_description", "issue_date", "return_date", "cost", "vendor_id", "status_id").
		Values(rep.DeviceID, rep.IssueDescription, rep.IssueDate, rep.ReturnDate, rep.Cost, rep.VendorID, rep.StatusID).
		Suffix("RETURNING repair_id"))
	if err != nil {
		return fmt.Errorf("insert repair: %w", err)
	}
	rep.ID = id
	return nil
}

func (r *RepairRepo) Update(ctx context.Context, id int, c models.RepairChanges) (int64, error) {
	n, err := exec(ctx, r.db, repairUpdateQuery(id, c))
	if err != nil {
		return 0, fmt.Errorf("update repair %d: %w", id, err)
	}
	return n, nil
}

func (r *RepairRepo) Delete(ctx context.Context, id int) (int64, error) {
	n, err := exec(ctx, r.db, psql.Delete("repair").Where(sq.Eq{"repair_id": id}))
	if err != nil {
		return 0, fmt.Errorf("delete repair %d: %w", id, err)
	}
	return n, nil
}

func (r *RepairRepo) CountByVendor(ctx context.Context, vendorID int) (int, error) {
	return count(ctx, r.db, "repair", sq.Eq{"vendor_id": vendorID})
}

func (r *RepairRepo) CountByStatus(ctx context.Context, statusID int) (int, error) {
	return count(ctx, r.db, "repair", sq.Eq{"status_id": statusID})
}
