package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
)

// ReportRepo runs the aggregate queries behind /api/report.
type ReportRepo struct{ db DBTX }

// names binds a nil set as '{}'. A NULL array would turn <> ALL into NULL
// and drop every row from the count.
func names(set []string) []string {
	if set == nil {
		return []string{}
	}
	return set
}

func (r *ReportRepo) tallies(ctx context.Context, op, sql string, args ...any) ([]models.CategoryTally, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := []models.CategoryTally{}
	for rows.Next() {
		var t models.CategoryTally
		if err := rows.Scan(&t.Category, &t.Total, &t.Completed); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *ReportRepo) RepairsByCategory(ctx context.Context, done []string) ([]models.CategoryTally, error) {
	return r.tallies(ctx, "repairs by category", `
		SELECT dc.device_cat_name,
		       COUNT(r.repair_id),
		       COALESCE(SUM(CASE WHEN s.repair_status_name = ANY($1) THEN 1 ELSE 0 END), 0)
		FROM repair r
		JOIN device d ON d.device_id = r.device_id
		JOIN devicecat dc ON dc.device_cat_id = d.category_id
		JOIN repairstatus s ON s.repair_status_id = r.status_id
		GROUP BY dc.device_cat_name
		ORDER BY dc.device_cat_name`, names(done))
}

func (r *ReportRepo) RequestsByCategory(ctx context.Context, done []string) ([]models.CategoryTally, error) {
	return r.tallies(ctx, "requests by category", `
		SELECT dc.device_cat_name,
		       COUNT(r.request_id),
		       COALESCE(SUM(CASE WHEN s.request_status_name = ANY($1) THEN 1 ELSE 0 END), 0)
		FROM request r
		JOIN device d ON d.device_id = r.device_id
		JOIN devicecat dc ON dc.device_cat_id = d.category_id
		JOIN requeststatus s ON s.request_status_id = r.status_id
		GROUP BY dc.device_cat_name
		ORDER BY dc.device_cat_name`, names(done))
}

func (r *ReportRepo) RepairTotals(ctx context.Context, done []string, now time.Time) (models.RepairTotals, error) {
	var t models.RepairTotals
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(r.repair_id),
		       COALESCE(SUM(CASE WHEN s.repair_status_name = ANY($1) THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN date_trunc('month', r.issue_date) = date_trunc('month', $2::date) THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN date_trunc('month', r.issue_date) = date_trunc('month', $2::date - INTERVAL '1 month') THEN 1 ELSE 0 END), 0),
		       AVG(r.return_date - r.issue_date)::float8
		FROM repair r
		JOIN repairstatus s ON s.repair_status_id = r.status_id`, names(done), now).
		Scan(&t.Total, &t.Completed, &t.ThisMonth, &t.LastMonth, &t.AvgDays)
	if err != nil {
		return t, fmt.Errorf("repair totals: %w", err)
	}
	return t, nil
}

func (r *ReportRepo) RequestTotals(ctx context.Context, now time.Time) (models.RequestTotals, error) {
	var t models.RequestTotals
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(request_id),
		       COALESCE(SUM(CASE WHEN date_trunc('month', request_date) = date_trunc('month', $1::date) THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN date_trunc('month', request_date) = date_trunc('month', $1::date - INTERVAL '1 month') THEN 1 ELSE 0 END), 0)
		FROM request`, now).
		Scan(&t.Total, &t.ThisMonth, &t.LastMonth)
	if err != nil {
		return t, fmt.Errorf("request totals: %w", err)
	}
	return t, nil
}

func (r *ReportRepo) DevicesByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT dc.device_cat_name, COUNT(d.device_id)
		FROM device d
		JOIN devicecat dc ON dc.device_cat_id = d.category_id
		GROUP BY dc.device_cat_name
		ORDER BY dc.device_cat_name`)
	if err != nil {
		return nil, fmt.Errorf("devices by category: %w", err)
	}
	defer rows.Close()

	out := []models.CategoryCount{}
	for rows.Next() {
		var c models.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ReportRepo) RequestsByDepartment(ctx context.Context) ([]models.DepartmentCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT e.department_name, COUNT(r.request_id)
		FROM request r
		JOIN department e ON e.department_id = r.department_id
		GROUP BY e.department_name
		ORDER BY e.department_name`)
	if err != nil {
		return nil, fmt.Errorf("requests by department: %w", err)
	}
	defer rows.Close()

	out := []models.DepartmentCount{}
	for rows.Next() {
		var c models.DepartmentCount
		if err := rows.Scan(&c.Department, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ReportRepo) RequestMetric(ctx context.Context, done, cancelled []string) (models.RequestMetric, error) {
	var m models.RequestMetric
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN s.request_status_name = ANY($1) THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN s.request_status_name <> ALL($1) AND s.request_status_name <> ALL($2) THEN 1 ELSE 0 END), 0)
		FROM request r
		JOIN requeststatus s ON s.request_status_id = r.status_id`, names(done), names(cancelled)).
		Scan(&m.Received, &m.Pending)
	if err != nil {
		return m, fmt.Errorf("request metric: %w", err)
	}
	return m, nil
}

func (r *ReportRepo) RepairMetric(ctx context.Context, closed []string, now time.Time) (models.RepairMetric, error) {
	var m models.RepairMetric
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN s.repair_status_name <> ALL($1) THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN date_trunc('month', r.issue_date) = date_trunc('month', $2::date) THEN r.cost ELSE 0 END), 0)::float8
		FROM repair r
		JOIN repairstatus s ON s.repair_status_id = r.status_id`, names(closed), now).
		Scan(&m.UnderRepair, &m.Cost)
	if err != nil {
		return m, fmt.Errorf("repair metric: %w", err)
	}
	return m, nil
}

func (r *ReportRepo) months(ctx context.Context, op, sql string, args ...any) ([]models.MonthTally, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]models.MonthTally, 0, 12)
	for rows.Next() {
		var m models.MonthTally
		if err := rows.Scan(&m.Month, &m.Total, &m.Completed); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *ReportRepo) MonthlyRepairs(ctx context.Context, year int, done []string) ([]models.MonthTally, error) {
	return r.months(ctx, "monthly repairs", `
		SELECT m.month,
		       COUNT(r.repair_id),
		       COALESCE(SUM(CASE WHEN s.repair_status_name = ANY($2) THEN 1 ELSE 0 END), 0)
		FROM generate_series(1, 12) AS m(month)
		LEFT JOIN repair r
		       ON EXTRACT(MONTH FROM r.issue_date) = m.month
		      AND EXTRACT(YEAR FROM r.issue_date) = $1
		LEFT JOIN repairstatus s ON s.repair_status_id = r.status_id
		GROUP BY m.month
		ORDER BY m.month`, year, names(done))
}

func (r *ReportRepo) MonthlyRequests(ctx context.Context, year int, done []string) ([]models.MonthTally, error) {
	return r.months(ctx, "monthly requests", `
		SELECT m.month,
		       COUNT(r.request_id),
		       COALESCE(SUM(CASE WHEN s.request_status_name = ANY($2) THEN 1 ELSE 0 END), 0)
		FROM generate_series(1, 12) AS m(month)
		LEFT JOIN request r
		       ON EXTRACT(MONTH FROM r.request_date) = m.month
		      AND EXTRACT(YEAR FROM r.request_date) = $1
		LEFT JOIN requeststatus s ON s.request_status_id = r.status_id
		GROUP BY m.month
		ORDER BY m.month`, year, names(done))
}
