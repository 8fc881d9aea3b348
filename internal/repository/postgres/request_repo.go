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

type RequestRepo struct{ db DBTX }

func requestSelect() sq.SelectBuilder {
	return psql.Select(
		"r.request_id", "r.device_id", "d.device_name", "dc.device_cat_name",
		"r.reason", "r.request_date", "r.receive_date",
		"r.user_id", "u.employee_name", "r.department_id", "e.department_name",
		"r.status_id", "s.request_status_name", "s.color",
	).
		From("request r").
		Join("device d ON d.device_id = r.device_id").
		Join("devicecat dc ON dc.device_cat_id = d.category_id").
		Join("users u ON u.user_id = r.user_id").
		Join("department e ON e.department_id = r.department_id").
		Join("requeststatus s ON s.request_status_id = r.status_id")
}

func scanRequest(row pgx.Row) (models.Request, error) {
	var r models.Request
	err := row.Scan(
		&r.ID, &r.DeviceID, &r.DeviceName, &r.Category,
		&r.Reason, &r.RequestDate, &r.ReceiveDate,
		&r.UserID, &r.RequestedBy, &r.DepartmentID, &r.Department,
		&r.StatusID, &r.Status, &r.StatusColor,
	)
	return r, err
}

func requestListQuery(f repository.TicketFilter) sq.SelectBuilder {
	f = f.Normalize()
	q := requestSelect()
	if f.Status != "" {
		q = q.Where(sq.Eq{"s.request_status_name": f.Status})
	}
	if f.Category != "" {
		q = q.Where(sq.Eq{"dc.device_cat_name": f.Category})
	}
	return q.OrderBy("r.request_date DESC", "r.request_id DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))
}

func requestUpdateQuery(id int, c models.RequestChanges) sq.UpdateBuilder {
	return applyAssignments(psql.Update("request"), c.Assignments()).
		Where(sq.Eq{"request_id": id})
}

func (r *RequestRepo) List(ctx context.Context, f repository.TicketFilter) ([]models.Request, error) {
	sql, args, err := requestListQuery(f).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	out := []models.Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *RequestRepo) Get(ctx context.Context, id int) (*models.Request, error) {
	sql, args, err := requestSelect().Where(sq.Eq{"r.request_id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	req, err := scanRequest(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request %d: %w", id, err)
	}
	return &req, nil
}

func (r *RequestRepo) Create(ctx context.Context, req *models.Request) error {
	id, err := insertReturningID(ctx, r.db, psql.Insert("request").
		Columns("device_id", "reason", "request_date", "receive_date", "user_id", "department_id", "status_id").
		Values(req.DeviceID, req.Reason, req.RequestDate, req.ReceiveDate, req.UserID, req.DepartmentID, req.StatusID).
		Suffix("RETURNING request_id"))
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	req.ID = id
	return nil
}

func (r *RequestRepo) Update(ctx context.Context, id int, c models.RequestChanges) (int64, error) {
	n, err := exec(ctx, r.db, requestUpdateQuery(id, c))
	if err != nil {
		return 0, fmt.Errorf("update request %d: %w", id, err)
	}
	return n, nil
}

func (r *RequestRepo) Delete(ctx context.Context, id int) (int64, error) {
	n, err := exec(ctx, r.db, psql.Delete("request").Where(sq.Eq{"request_id": id}))
	if err != nil {
		return 0, fmt.Errorf("delete request %d: %w", id, err)
	}
	return n, nil
}

func (r *RequestRepo) CountByDepartment(ctx context.Context, departmentID int) (int, error) {
	return count(ctx, r.db, "request", sq.Eq{"department_id": departmentID})
}

func (r *RequestRepo) CountByStatus(ctx context.Context, statusID int) (int, error) {
	return count(ctx, r.db, "request", sq.Eq{"status_id": statusID})
}
