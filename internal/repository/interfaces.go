package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
)

var (
	// ErrNotFound is returned by lookups that match no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate")
	// ErrReferenced is returned when a delete is blocked by a foreign key.
	ErrReferenced = errors.New("referenced by other rows")
)

// Resolver maps a display name to its surrogate key. A miss is ErrNotFound.
type Resolver interface {
	Resolve(ctx context.Context, kind models.RefKind, name string) (int, error)
}

type DeviceRepository interface {
	// Upsert returns the id of the (name, category) device, inserting it
	// when absent.
	Upsert(ctx context.Context, name string, categoryID int) (int, error)
	Count(ctx context.Context) (int, error)
}

type RepairRepository interface {
	Create(ctx context.Context, r *models.Repair) error
	Get(ctx context.Context, id int) (*models.Repair, error)
	List(ctx context.Context, f TicketFilter) ([]models.Repair, error)
	Update(ctx context.Context, id int, c models.RepairChanges) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
	CountByVendor(ctx context.Context, vendorID int) (int, error)
	CountByStatus(ctx context.Context, statusID int) (int, error)
}

type RequestRepository interface {
	Create(ctx context.Context, r *models.Request) error
	Get(ctx context.Context, id int) (*models.Request, error)
	List(ctx context.Context, f TicketFilter) ([]models.Request, error)
	Update(ctx context.Context, id int, c models.RequestChanges) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
	CountByDepartment(ctx context.Context, departmentID int) (int, error)
	CountByStatus(ctx context.Context, statusID int) (int, error)
}

type VendorRepository interface {
	Create(ctx context.Context, name string) (int, error)
	List(ctx context.Context) ([]models.Vendor, error)
	Rename(ctx context.Context, id int, name string) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
}

type DepartmentRepository interface {
	Create(ctx context.Context, name string) (int, error)
	List(ctx context.Context) ([]models.Department, error)
	Rename(ctx context.Context, id int, name string) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
	CountUsers(ctx context.Context, id int) (int, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, name string, description *string) (int, error)
	List(ctx context.Context) ([]models.DeviceCategory, error)
	Update(ctx context.Context, id int, p models.CategoryPatch) (int64, error)
}

type StatusRepository interface {
	Create(ctx context.Context, kind models.StatusKind, s models.Status) (int, error)
	List(ctx context.Context, kind models.StatusKind) ([]models.Status, error)
	Update(ctx context.Context, kind models.StatusKind, id int, p models.StatusPatch) (int64, error)
	Delete(ctx context.Context, kind models.StatusKind, id int) (int64, error)
}

type UserRepository interface {
	// GetByUsername returns nil, nil, nil when no user matches.
	GetByUsername(ctx context.Context, username string) (*models.User, *models.Credential, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	UpdateCredential(ctx context.Context, id int, c models.Credential) error
}

type ReportRepository interface {
	RepairsByCategory(ctx context.Context, done []string) ([]models.CategoryTally, error)
	RequestsByCategory(ctx context.Context, done []string) ([]models.CategoryTally, error)
	RepairTotals(ctx context.Context, done []string, now time.Time) (models.RepairTotals, error)
	RequestTotals(ctx context.Context, now time.Time) (models.RequestTotals, error)
	DevicesByCategory(ctx context.Context) ([]models.CategoryCount, error)
	RequestsByDepartment(ctx context.Context) ([]models.DepartmentCount, error)
	RequestMetric(ctx context.Context, done, cancelled []string) (models.RequestMetric, error)
	RepairMetric(ctx context.Context, closed []string, now time.Time) (models.RepairMetric, error)
	MonthlyRepairs(ctx context.Context, year int, done []string) ([]models.MonthTally, error)
	MonthlyRequests(ctx context.Context, year int, done []string) ([]models.MonthTally, error)
}

// Store groups the repositories over one connection or transaction.
type Store interface {
	Refs() Resolver
	Devices() DeviceRepository
	Repairs() RepairRepository
	Requests() RequestRepository
	Vendors() VendorRepository
	Departments() DepartmentRepository
	Categories() CategoryRepository
	Statuses() StatusRepository
	Users() UserRepository
	Reports() ReportRepository

	// InTx runs fn against a Store bound to one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(Store) error) error
}
