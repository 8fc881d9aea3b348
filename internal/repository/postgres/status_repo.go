package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
)

func statusTable(kind models.StatusKind) lookupTable {
	return lookupTables[kind.RefKind()]
}

// StatusRepo serves both status taxonomies; they share a shape.
type StatusRepo struct{ db DBTX }

func (r *StatusRepo) Create(ctx context.Context, kind models.StatusKind, s models.Status) (int, error) {
	t := statusTable(kind)
	id, err := insertReturningID(ctx, r.db, psql.Insert(t.table).
		Columns(t.name, "color", "status_description").
		Values(s.Name, s.Color, s.Description).
		Suffix("RETURNING "+t.id))
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", kind, err)
	}
	return id, nil
}

func (r *StatusRepo) List(ctx context.Context, kind models.StatusKind) ([]models.Status, error) {
	t := statusTable(kind)
	sql, args, err := psql.Select(t.id, t.name, "color", "status_description").
		From(t.table).OrderBy(t.id).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	out := []models.Status{}
	for rows.Next() {
		var s models.Status
		if err := rows.Scan(&s.ID, &s.Name, &s.Color, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *StatusRepo) Update(ctx context.Context, kind models.StatusKind, id int, p models.StatusPatch) (int64, error) {
	t := statusTable(kind)
	q := applyAssignments(psql.Update(t.table), p.Assignments(t.name)).Where(sq.Eq{t.id: id})
	n, err := exec(ctx, r.db, q)
	if err != nil {
		return 0, fmt.Errorf("update %s %d: %w", kind, id, err)
	}
	return n, nil
}

func (r *StatusRepo) Delete(ctx context.Context, kind models.StatusKind, id int) (int64, error) {
	t := statusTable(kind)
	n, err := exec(ctx, r.db, psql.Delete(t.table).Where(sq.Eq{t.id: id}))
	if err != nil {
		return 0, fmt.Errorf("delete %s %d: %w", kind, id, err)
	}
	return n, nil
}
