package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
)

type VendorRepo struct{ db DBTX }

func (r *VendorRepo) Create(ctx context.Context, name string) (int, error) {
	id, err := insertReturningID(ctx, r.db, psql.Insert("vendor").
		Columns("vendor_name").Values(name).Suffix("RETURNING vendor_id"))
	if err != nil {
		return 0, fmt.Errorf("insert vendor: %w", err)
	}
	return id, nil
}

func (r *VendorRepo) List(ctx context.Context) ([]models.Vendor, error) {
	rows, err := r.db.Query(ctx, `SELECT vendor_id, vendor_name FROM vendor ORDER BY vendor_name`)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	out := []models.Vendor{}
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VendorRepo) Rename(ctx context.Context, id int, name string) (int64, error) {
	n, err := exec(ctx, r.db, psql.Update("vendor").Set("vendor_name", name).Where(sq.Eq{"vendor_id": id}))
	if err != nil {
		return 0, fmt.Errorf("rename vendor %d: %w", id, err)
	}
	return n, nil
}

func (r *VendorRepo) Delete(ctx context.Context, id int) (int64, error) {
	n, err := exec(ctx, r.db, psql.Delete("vendor").Where(sq.Eq{"vendor_id": id}))
	if err != nil {
		return 0, fmt.Errorf("delete vendor %d: %w", id, err)
	}
	return n, nil
}

type DepartmentRepo struct{ db DBTX }

func (r *DepartmentRepo) Create(ctx context.Context, name string) (int, error) {
	id, err := insertReturningID(ctx, r.db, psql.Insert("department").
		Columns("department_name").Values(name).Suffix("RETURNING department_id"))
	if err != nil {
		return 0, fmt.Errorf("insert department: %w", err)
	}
	return id, nil
}

func (r *DepartmentRepo) List(ctx context.Context) ([]models.Department, error) {
	rows, err := r.db.Query(ctx, `SELECT department_id, department_name FROM department ORDER BY department_id`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	out := []models.Department{}
	for rows.Next() {
		var d models.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DepartmentRepo) Rename(ctx context.Context, id int, name string) (int64, error) {
	n, err := exec(ctx, r.db, psql.Update("department").Set("department_name", name).Where(sq.Eq{"department_id": id}))
	if err != nil {
		return 0, fmt.Errorf("rename department %d: %w", id, err)
	}
	return n, nil
}

func (r *DepartmentRepo) Delete(ctx context.Context, id int) (int64, error) {
	n, err := exec(ctx, r.db, psql.Delete("department").Where(sq.Eq{"department_id": id}))
	if err != nil {
		return 0, fmt.Errorf("delete department %d: %w", id, err)
	}
	return n, nil
}

func (r *DepartmentRepo) CountUsers(ctx context.Context, id int) (int, error) {
	return count(ctx, r.db, "users", sq.Eq{"department_id": id})
}

type CategoryRepo struct{ db DBTX }

func (r *CategoryRepo) Create(ctx context.Context, name string, description *string) (int, error) {
	id, err := insertReturningID(ctx, r.db, psql.Insert("devicecat").
		Columns("device_cat_name", "device_description").Values(name, description).
		Suffix("RETURNING device_cat_id"))
	if err != nil {
		return 0, fmt.Errorf("insert device category: %w", err)
	}
	return id, nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]models.DeviceCategory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT device_cat_id, device_cat_name, device_description
		FROM devicecat
		ORDER BY device_cat_id`)
	if err != nil {
		return nil, fmt.Errorf("list device categories: %w", err)
	}
	defer rows.Close()

	out := []models.DeviceCategory{}
	for rows.Next() {
		var c models.DeviceCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepo) Update(ctx context.Context, id int, p models.CategoryPatch) (int64, error) {
	q := applyAssignments(psql.Update("devicecat"), p.Assignments()).Where(sq.Eq{"device_cat_id": id})
	n, err := exec(ctx, r.db, q)
	if err != nil {
		return 0, fmt.Errorf("update device category %d: %w", id, err)
	}
	return n, nil
}
