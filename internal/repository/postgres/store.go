package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store implements repository.Store on PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
	db   DBTX
}

func NewStore(pool *pgxpool.Pool) *Store { return &Store{pool: pool, db: pool} }

func (s *Store) Refs() repository.Resolver { return &Resolver{db: s.db} }
func (s *Store) Devices() repository.DeviceRepository { return &DeviceRepo{db: s.db} }
func (s *Store) Repairs() repository.RepairRepository { return &RepairRepo{db: s.db} }
func (s *Store) Requests() repository.RequestRepository { return &RequestRepo{db: s.db} }
func (s *Store) Vendors() repository.VendorRepository { return &VendorRepo{db: s.db} }
func (s *Store) Departments() repository.DepartmentRepository { return &DepartmentRepo{db: s.db} }
func (s *Store) Categories() repository.CategoryRepository { return &CategoryRepo{db: s.db} }
func (s *Store) Statuses() repository.StatusRepository { return &StatusRepo{db: s.db} }
func (s *Store) Users() repository.UserRepository { return &UserRepo{db: s.db} }
func (s *Store) Reports() repository.ReportRepository { return &ReportRepo{db: s.db} }

// InTx nests by reusing the open transaction.
func (s *Store) InTx(ctx context.Context, fn func(repository.Store) error) error {
	if tx, ok := s.db.(pgx.Tx); ok {
		return fn(&Store{pool: s.pool, db: tx})
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&Store{pool: s.pool, db: tx})
	})
}

// exec runs a squirrel statement and returns the affected row count.
func exec(ctx context.Context, db DBTX, b sq.Sqlizer) (int64, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	ct, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, mapErr(err)
	}
	return ct.RowsAffected(), nil
}

// insertReturningID runs an INSERT … RETURNING <id>.
func insertReturningID(ctx context.Context, db DBTX, b sq.InsertBuilder) (int, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var id int
	if err := db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, mapErr(err)
	}
	return id, nil
}

func count(ctx context.Context, db DBTX, table string, where sq.Eq) (int, error) {
	sql, args, err := psql.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// applyAssignments adds every SET pair to an UPDATE in order.
func applyAssignments(b sq.UpdateBuilder, set []models.Assignment) sq.UpdateBuilder {
	for _, a := range set {
		b = b.Set(a.Column, a.Value)
	}
	return b
}

func mapErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%w: %s", repository.ErrReferenced, pgErr.ConstraintName)
		}
	}
	return err
}
