package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository"
)

type lookupTable struct {
	table, id, name string
}

var lookupTables = map[models.RefKind]lookupTable{
	models.RefRepairStatus:  {"repairstatus", "repair_status_id", "repair_status_name"},
	models.RefRequestStatus: {"requeststatus", "request_status_id", "request_status_name"},
	models.RefCategory:      {"devicecat", "device_cat_id", "device_cat_name"},
	models.RefVendor:        {"vendor", "vendor_id", "vendor_name"},
	models.RefDepartment:    {"department", "department_id", "department_name"},
}

// Resolver looks up lookup-table keys by exact name. Case sensitivity
// follows the column collation.
type Resolver struct{ db DBTX }

func (r *Resolver) Resolve(ctx context.Context, kind models.RefKind, name string) (int, error) {
	t, ok := lookupTables[kind]
	if !ok {
		return 0, fmt.Errorf("resolve: unknown kind %d", kind)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, repository.ErrNotFound
	}

	sql, args, err := psql.Select(t.id).From(t.table).Where(sq.Eq{t.name: name}).Limit(1).ToSql()
	if err != nil {
		return 0, err
	}
	var id int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, fmt.Errorf("resolve %s %q: %w", kind, name, err)
	}
	return id, nil
}
