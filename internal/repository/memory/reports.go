package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
)

type reports struct{ s *Store }

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func lastMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
}

func tallySorted(m map[string]*models.CategoryTally) []models.CategoryTally {
	out := []models.CategoryTally{}
	for _, t := range m {
		out = append(out, *t)
	}
	slices.SortFunc(out, func(a, b models.CategoryTally) int { return strings.Compare(a.Category, b.Category) })
	return out
}

func (r reports) RepairsByCategory(ctx context.Context, done []string) ([]models.CategoryTally, error) {
	d, unlock, err := r.s.lock("reports.repairsbycategory")
	defer unlock()
	if err != nil {
		return nil, err
	}
	m := map[string]*models.CategoryTally{}
	for _, rep := range d.repairs {
		rep = d.joinRepair(rep)
		t := m[rep.Category]
		if t == nil {
			t = &models.CategoryTally{Category: rep.Category}
			m[rep.Category] = t
		}
		t.Total++
		if slices.Contains(done, rep.Status) {
			t.Completed++
		}
	}
	return tallySorted(m), nil
}

func (r reports) RequestsByCategory(ctx context.Context, done []string) ([]models.CategoryTally, error) {
	d, unlock, err := r.s.lock("reports.requestsbycategory")
	defer unlock()
	if err != nil {
		return nil, err
	}
	m := map[string]*models.CategoryTally{}
	for _, req := range d.requests {
		req = d.joinRequest(req)
		t := m[req.Category]
		if t == nil {
			t = &models.CategoryTally{Category: req.Category}
			m[req.Category] = t
		}
		t.Total++
		if slices.Contains(done, req.Status) {
			t.Completed++
		}
	}
	return tallySorted(m), nil
}

func (r reports) RepairTotals(ctx context.Context, done []string, now time.Time) (models.RepairTotals, error) {
	var t models.RepairTotals
	d, unlock, err := r.s.lock("reports.repairtotals")
	defer unlock()
	if err != nil {
		return t, err
	}
	prev := lastMonth(now)
	var days float64
	var returned int
	for _, rep := range d.repairs {
		rep = d.joinRepair(rep)
		t.Total++
		if slices.Contains(done, rep.Status) {
			t.Completed++
		}
		if sameMonth(rep.IssueDate, now) {
			t.ThisMonth++
		}
		if sameMonth(rep.IssueDate, prev) {
			t.LastMonth++
		}
		if rep.ReturnDate != nil {
			days += rep.ReturnDate.Sub(rep.IssueDate).Hours() / 24
			returned++
		}
	}
	if returned > 0 {
		avg := days / float64(returned)
		t.AvgDays = &avg
	}
	return t, nil
}

func (r reports) RequestTotals(ctx context.Context, now time.Time) (models.RequestTotals, error) {
	var t models.RequestTotals
	d, unlock, err := r.s.lock("reports.requesttotals")
	defer unlock()
	if err != nil {
		return t, err
	}
	prev := lastMonth(now)
	for _, req := range d.requests {
		t.Total++
		if sameMonth(req.RequestDate, now) {
			t.ThisMonth++
		}
		if sameMonth(req.RequestDate, prev) {
			t.LastMonth++
		}
	}
	return t, nil
}

func (r reports) DevicesByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	d, unlock, err := r.s.lock("reports.devicesbycategory")
	defer unlock()
	if err != nil {
		return nil, err
	}
	m := map[string]int{}
	for _, dev := range d.devices {
		m[d.categories[dev.CategoryID].Name]++
	}
	out := []models.CategoryCount{}
	for name, n := range m {
		out = append(out, models.CategoryCount{Category: name, Count: n})
	}
	slices.SortFunc(out, func(a, b models.CategoryCount) int { return strings.Compare(a.Category, b.Category) })
	return out, nil
}

func (r reports) RequestsByDepartment(ctx context.Context) ([]models.DepartmentCount, error) {
	d, unlock, err := r.s.lock("reports.requestsbydepartment")
	defer unlock()
	if err != nil {
		return nil, err
	}
	m := map[string]int{}
	for _, req := range d.requests {
		m[d.departments[req.DepartmentID].Name]++
	}
	out := []models.DepartmentCount{}
	for name, n := range m {
		out = append(out, models.DepartmentCount{Department: name, Count: n})
	}
	slices.SortFunc(out, func(a, b models.DepartmentCount) int { return strings.Compare(a.Department, b.Department) })
	return out, nil
}

func (r reports) RequestMetric(ctx context.Context, done, cancelled []string) (models.RequestMetric, error) {
	var m models.RequestMetric
	d, unlock, err := r.s.lock("reports.requestmetric")
	defer unlock()
	if err != nil {
		return m, err
	}
	for _, req := range d.requests {
		name := d.statuses[models.RequestStatus][req.StatusID].Name
		switch {
		case slices.Contains(done, name):
			m.Received++
		case !slices.Contains(cancelled, name):
			m.Pending++
		}
	}
	return m, nil
}

func (r reports) RepairMetric(ctx context.Context, closed []string, now time.Time) (models.RepairMetric, error) {
	var m models.RepairMetric
	d, unlock, err := r.s.lock("reports.repairmetric")
	defer unlock()
	if err != nil {
		return m, err
	}
	for _, rep := range d.repairs {
		if !slices.Contains(closed, d.statuses[models.RepairStatus][rep.StatusID].Name) {
			m.UnderRepair++
		}
		if rep.Cost != nil && sameMonth(rep.IssueDate, now) {
			m.Cost += *rep.Cost
		}
	}
	return m, nil
}

func months() []models.MonthTally {
	out := make([]models.MonthTally, 12)
	for i := range out {
		out[i].Month = i + 1
	}
	return out
}

func (r reports) MonthlyRepairs(ctx context.Context, year int, done []string) ([]models.MonthTally, error) {
	d, unlock, err := r.s.lock("reports.monthlyrepairs")
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := months()
	for _, rep := range d.repairs {
		if rep.IssueDate.Year() != year {
			continue
		}
		t := &out[rep.IssueDate.Month()-1]
		t.Total++
		if slices.Contains(done, d.statuses[models.RepairStatus][rep.StatusID].Name) {
			t.Completed++
		}
	}
	return out, nil
}

func (r reports) MonthlyRequests(ctx context.Context, year int, done []string) ([]models.MonthTally, error) {
	d, unlock, err := r.s.lock("reports.monthlyrequests")
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := months()
	for _, req := range d.requests {
		if req.RequestDate.Year() != year {
			continue
		}
		t := &out[req.RequestDate.Month()-1]
		t.Total++
		if slices.Contains(done, d.statuses[models.RequestStatus][req.StatusID].Name) {
			t.Completed++
		}
	}
	return out, nil
}
