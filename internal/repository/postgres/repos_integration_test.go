//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/apperror"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/database"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/service"
)

// txStore returns a Store bound to a transaction over emptied tables. The
// transaction is rolled back when the test ends, statuses stay seeded.
func txStore(t *testing.T) (context.Context, *Store) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, database.NewMigrator(pool, zerolog.Nop()).Up(ctx))

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	_, err = tx.Exec(ctx, `TRUNCATE repair, request, device, users, vendor, department, devicecat RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return ctx, &Store{pool: pool, db: tx}
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func money(f float64) *float64 { return &f }

type seeded struct {
	laptop, printer   int
	vendor            int
	finance, it       int
	userID            int
	repairStatus      map[string]int
	requestStatus     map[string]int
	devA, devB, devC  int
	devD              int
	repairs, requests []int
}

func statusIDs(t *testing.T, ctx context.Context, s *Store, kind models.StatusKind) map[string]int {
	t.Helper()
	list, err := s.Statuses().List(ctx, kind)
	require.NoError(t, err)
	out := map[string]int{}
	for _, st := range list {
		out[st.Name] = st.ID
	}
	return out
}

func insertUser(t *testing.T, ctx context.Context, s *Store, username, secret string, dept int) int {
	t.Helper()
	var id int
	require.NoError(t, s.db.QueryRow(ctx, `
		INSERT INTO users (username, password, employee_name, role, department_id)
		VALUES ($1, $2, $3, 'user', $4)
		RETURNING user_id`, username, secret, "Emp "+username, dept).Scan(&id))
	return id
}

// seed writes four repairs and three requests around March 2026.
func seed(t *testing.T, ctx context.Context, s *Store) seeded {
	t.Helper()
	var f seeded
	var err error
	f.laptop, err = s.Categories().Create(ctx, "Laptop", nil)
	require.NoError(t, err)
	f.printer, err = s.Categories().Create(ctx, "Printer", nil)
	require.NoError(t, err)
	f.vendor, err = s.Vendors().Create(ctx, "Acme")
	require.NoError(t, err)
	f.finance, err = s.Departments().Create(ctx, "Finance")
	require.NoError(t, err)
	f.it, err = s.Departments().Create(ctx, "IT")
	require.NoError(t, err)
	f.userID = insertUser(t, ctx, s, "sita", "pw", f.finance)
	f.repairStatus = statusIDs(t, ctx, s, models.RepairStatus)
	f.requestStatus = statusIDs(t, ctx, s, models.RequestStatus)

	for _, d := range []struct {
		dst  *int
		name string
		cat  int
	}{
		{&f.devA, "Latitude", f.laptop},
		{&f.devB, "ThinkPad", f.laptop},
		{&f.devC, "LaserJet", f.printer},
		{&f.devD, "MacBook", f.laptop},
	} {
		*d.dst, err = s.Devices().Upsert(ctx, d.name, d.cat)
		require.NoError(t, err)
	}

	returned := func(tm time.Time) *time.Time { return &tm }
	for _, r := range []models.Repair{
		{DeviceID: f.devA, IssueDate: day(2026, 3, 2), ReturnDate: returned(day(2026, 3, 6)), Cost: money(100), StatusID: f.repairStatus["Repaired"]},
		{DeviceID: f.devB, IssueDate: day(2026, 3, 10), Cost: money(50), StatusID: f.repairStatus["In Progress"]},
		{DeviceID: f.devC, IssueDate: day(2026, 2, 20), ReturnDate: returned(day(2026, 2, 22)), Cost: money(30), StatusID: f.repairStatus["Cancelled"]},
		{DeviceID: f.devC, IssueDate: day(2025, 12, 5), StatusID: f.repairStatus["Pending"]},
	} {
		r.IssueDescription = "broken"
		r.VendorID = f.vendor
		require.NoError(t, s.Repairs().Create(ctx, &r))
		f.repairs = append(f.repairs, r.ID)
	}

	for _, q := range []models.Request{
		{DeviceID: f.devA, RequestDate: day(2026, 3, 1), DepartmentID: f.finance, StatusID: f.requestStatus["Received"]},
		{DeviceID: f.devC, RequestDate: day(2026, 3, 5), DepartmentID: f.it, StatusID: f.requestStatus["Pending"]},
		{DeviceID: f.devD, RequestDate: day(2026, 2, 10), DepartmentID: f.finance, StatusID: f.requestStatus["Cancelled"]},
	} {
		q.Reason = "needed"
		q.UserID = f.userID
		require.NoError(t, s.Requests().Create(ctx, &q))
		f.requests = append(f.requests, q.ID)
	}
	return f
}

var (
	now         = day(2026, 3, 15)
	repairDone  = []string{"Repaired", "Received"}
	requestDone = []string{"Received"}
	cancelled   = []string{"Cancelled"}
)

func TestIntegration_ReportCategoryTallies(t *testing.T) {
	ctx, s := txStore(t)
	seed(t, ctx, s)
	rep := s.Reports()

	repairs, err := rep.RepairsByCategory(ctx, repairDone)
	require.NoError(t, err)
	assert.Equal(t, []models.CategoryTally{
		{Category: "Laptop", Total: 2, Completed: 1},
		{Category: "Printer", Total: 2, Completed: 0},
	}, repairs)

	requests, err := rep.RequestsByCategory(ctx, requestDone)
	require.NoError(t, err)
	assert.Equal(t, []models.CategoryTally{
		{Category: "Laptop", Total: 2, Completed: 1},
		{Category: "Printer", Total: 1, Completed: 0},
	}, requests)

	// no done set counts nothing as completed
	repairs, err = rep.RepairsByCategory(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, repairs[0].Completed)
	assert.Equal(t, 2, repairs[0].Total)

	devices, err := rep.DevicesByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.CategoryCount{{Category: "Laptop", Count: 3}, {Category: "Printer", Count: 1}}, devices)

	depts, err := rep.RequestsByDepartment(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.DepartmentCount{{Department: "Finance", Count: 2}, {Department: "IT", Count: 1}}, depts)
}

func TestIntegration_ReportTotals(t *testing.T) {
	ctx, s := txStore(t)
	seed(t, ctx, s)
	rep := s.Reports()

	rt, err := rep.RepairTotals(ctx, repairDone, now)
	require.NoError(t, err)
	assert.Equal(t, 4, rt.Total)
	assert.Equal(t, 1, rt.Completed)
	assert.Equal(t, 2, rt.ThisMonth)
	assert.Equal(t, 1, rt.LastMonth)
	require.NotNil(t, rt.AvgDays)
	assert.InDelta(t, 3.0, *rt.AvgDays, 0.001)

	qt, err := rep.RequestTotals(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, models.RequestTotals{Total: 3, ThisMonth: 2, LastMonth: 1}, qt)

	// January rolls back into December of the previous year
	qt, err = rep.RequestTotals(ctx, day(2026, 1, 20))
	require.NoError(t, err)
	assert.Equal(t, models.RequestTotals{Total: 3, ThisMonth: 0, LastMonth: 0}, qt)
	rt, err = rep.RepairTotals(ctx, repairDone, day(2026, 1, 20))
	require.NoError(t, err)
	assert.Equal(t, 1, rt.LastMonth)
}

func TestIntegration_ReportTotalsEmpty(t *testing.T) {
	ctx, s := txStore(t)
	rep := s.Reports()

	rt, err := rep.RepairTotals(ctx, repairDone, now)
	require.NoError(t, err)
	assert.Zero(t, rt.Total)
	assert.Nil(t, rt.AvgDays)

	tallies, err := rep.RepairsByCategory(ctx, repairDone)
	require.NoError(t, err)
	assert.NotNil(t, tallies)
	assert.Empty(t, tallies)

	metric, err := rep.RepairMetric(ctx, nil, now)
	require.NoError(t, err)
	assert.Equal(t, models.RepairMetric{}, metric)
}

func TestIntegration_ReportMetrics(t *testing.T) {
	ctx, s := txStore(t)
	seed(t, ctx, s)
	rep := s.Reports()

	rm, err := rep.RequestMetric(ctx, requestDone, cancelled)
	require.NoError(t, err)
	assert.Equal(t, models.RequestMetric{Received: 1, Pending: 1}, rm)

	// without a cancelled set every open request is pending
	rm, err = rep.RequestMetric(ctx, requestDone, nil)
	require.NoError(t, err)
	assert.Equal(t, models.RequestMetric{Received: 1, Pending: 2}, rm)

	rm, err = rep.RequestMetric(ctx, nil, []string{})
	require.NoError(t, err)
	assert.Equal(t, models.RequestMetric{Received: 0, Pending: 3}, rm)

	closed := append(append([]string{}, repairDone...), cancelled...)
	pm, err := rep.RepairMetric(ctx, closed, now)
	require.NoError(t, err)
	assert.Equal(t, 2, pm.UnderRepair)
	assert.InDelta(t, 150.0, pm.Cost, 0.001)

	pm, err = rep.RepairMetric(ctx, nil, now)
	require.NoError(t, err)
	assert.Equal(t, 4, pm.UnderRepair)
}

func TestIntegration_ReportMonthly(t *testing.T) {
	ctx, s := txStore(t)
	seed(t, ctx, s)
	rep := s.Reports()

	repairs, err := rep.MonthlyRepairs(ctx, 2026, repairDone)
	require.NoError(t, err)
	require.Len(t, repairs, 12)
	for i, m := range repairs {
		assert.Equal(t, i+1, m.Month)
	}
	assert.Equal(t, models.MonthTally{Month: 1}, repairs[0])
	assert.Equal(t, models.MonthTally{Month: 2, Total: 1, Completed: 0}, repairs[1])
	assert.Equal(t, models.MonthTally{Month: 3, Total: 2, Completed: 1}, repairs[2])
	assert.Equal(t, models.MonthTally{Month: 12}, repairs[11])

	prev, err := rep.MonthlyRepairs(ctx, 2025, repairDone)
	require.NoError(t, err)
	require.Len(t, prev, 12)
	assert.Equal(t, models.MonthTally{Month: 12, Total: 1}, prev[11])

	requests, err := rep.MonthlyRequests(ctx, 2026, requestDone)
	require.NoError(t, err)
	require.Len(t, requests, 12)
	assert.Equal(t, models.MonthTally{Month: 2, Total: 1, Completed: 0}, requests[1])
	assert.Equal(t, models.MonthTally{Month: 3, Total: 2, Completed: 1}, requests[2])

	empty, err := rep.MonthlyRequests(ctx, 2019, nil)
	require.NoError(t, err)
	assert.Len(t, empty, 12)
}

func TestIntegration_UserCredentialUpgrade(t *testing.T) {
	ctx, s := txStore(t)
	dept, err := s.Departments().Create(ctx, "Finance")
	require.NoError(t, err)
	id := insertUser(t, ctx, s, "ram", "legacy", dept)
	users := s.Users()

	u, c, err := users.GetByUsername(ctx, "ram")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Finance", u.Department)
	assert.Equal(t, models.Credential{Secret: "legacy", Format: models.CredentialPlain}, *c)

	require.NoError(t, users.UpdateCredential(ctx, id, models.Credential{Secret: "$2b$10$hash", Format: models.CredentialBcrypt}))
	_, c, err = users.GetByUsername(ctx, "ram")
	require.NoError(t, err)
	assert.Equal(t, models.Credential{Secret: "$2b$10$hash", Format: models.CredentialBcrypt}, *c)

	u, c, err = users.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Nil(t, c)

	byID, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ram", byID.Username)
}

func TestIntegration_StatusUpdateAndDelete(t *testing.T) {
	ctx, s := txStore(t)
	f := seed(t, ctx, s)
	st := s.Statuses()

	id, err := st.Create(ctx, models.RepairStatus, models.Status{Name: "Awaiting Parts", Color: "#111111", Description: "Parts ordered"})
	require.NoError(t, err)

	n, err := st.Update(ctx, models.RepairStatus, id, models.StatusPatch{
		Name:  models.Some("Parts Ordered"),
		Color: models.Some("#222222"),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got := statusIDs(t, ctx, s, models.RepairStatus)
	assert.Equal(t, id, got["Parts Ordered"])
	_, stale := got["Awaiting Parts"]
	assert.False(t, stale)

	n, err = st.Update(ctx, models.RequestStatus, f.requestStatus["On Hold"], models.StatusPatch{Description: models.Some("Waiting on budget")})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = st.Update(ctx, models.RepairStatus, 99999, models.StatusPatch{Name: models.Some("Ghost")})
	require.NoError(t, err)
	assert.Zero(t, n)

	used, err := s.Repairs().CountByStatus(ctx, f.repairStatus["Pending"])
	require.NoError(t, err)
	assert.Equal(t, 1, used)

	n, err = st.Delete(ctx, models.RepairStatus, id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = st.Delete(ctx, models.RepairStatus, id)
	require.NoError(t, err)
	assert.Zero(t, n)

	// last: the failed statement aborts the transaction
	_, err = st.Delete(ctx, models.RepairStatus, f.repairStatus["Pending"])
	assert.ErrorIs(t, err, repository.ErrReferenced)
}

func TestIntegration_ReferenceDeleteBlockedWhileUsed(t *testing.T) {
	ctx, s := txStore(t)
	f := seed(t, ctx, s)
	refs := service.NewReferenceService(s)

	err := refs.DeleteVendor(ctx, f.vendor)
	require.True(t, apperror.IsKind(err, apperror.KindValidation), "%v", err)
	e, _ := apperror.As(err)
	assert.Equal(t, "Cannot delete vendor with associated repairs. It is associated with 4", e.Message)

	for _, id := range f.repairs {
		n, err := s.Repairs().Delete(ctx, id)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	}
	require.NoError(t, refs.DeleteVendor(ctx, f.vendor))
	assert.True(t, apperror.IsKind(refs.DeleteVendor(ctx, f.vendor), apperror.KindNotFound))

	// IT has a request but no users, Finance has both
	err = refs.DeleteDepartment(ctx, f.it)
	e, _ = apperror.As(err)
	require.NotNil(t, e)
	assert.Equal(t, "Cannot delete department with associated requests or users. It has 1 requests and 0 users", e.Message)

	err = refs.DeleteDepartment(ctx, f.finance)
	e, _ = apperror.As(err)
	require.NotNil(t, e)
	assert.Equal(t, "Cannot delete department with associated requests or users. It has 2 requests and 1 users", e.Message)

	n, err := s.Requests().Delete(ctx, f.requests[1])
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	require.NoError(t, refs.DeleteDepartment(ctx, f.it))

	deps, err := refs.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "Finance", deps[0].Name)
}
