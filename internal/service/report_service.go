package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// ReportService turns raw aggregates into the dashboard shapes.
type ReportService struct {
	reports repository.ReportRepository
	sets    models.StatusSets
	now     clock
}

func NewReportService(reports repository.ReportRepository, sets models.StatusSets) *ReportService {
	return &ReportService{reports: reports, sets: sets, now: time.Now}
}

// percent is n/d as a percentage; a zero denominator yields 0.
func percent(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}

// change is the month over month percent change; 0 when last month is 0.
func change(this, last int) float64 {
	return percent(this-last, last)
}

func progress(in []models.CategoryTally) []models.CategoryProgress {
	out := make([]models.CategoryProgress, 0, len(in))
	for _, t := range in {
		out = append(out, models.CategoryProgress{
			Category:          t.Category,
			Total:             t.Total,
			Completed:         t.Completed,
			Pending:           t.Total - t.Completed,
			CompletionPercent: fmt.Sprintf("%.0f%%", percent(t.Completed, t.Total)),
		})
	}
	return out
}

func (s *ReportService) RepairTable(ctx context.Context) ([]models.CategoryProgress, error) {
	t, err := s.reports.RepairsByCategory(ctx, s.sets.RepairDone)
	if err != nil {
		return nil, wrap("repair report table", err)
	}
	return progress(t), nil
}

func (s *ReportService) RequestTable(ctx context.Context) ([]models.CategoryProgress, error) {
	t, err := s.reports.RequestsByCategory(ctx, s.sets.RequestDone)
	if err != nil {
		return nil, wrap("request report table", err)
	}
	return progress(t), nil
}

func (s *ReportService) RepairSummary(ctx context.Context) (models.RepairSummary, error) {
	t, err := s.reports.RepairTotals(ctx, s.sets.RepairDone, s.now())
	if err != nil {
		return models.RepairSummary{}, wrap("repair summary", err)
	}
	var days float64
	if t.AvgDays != nil {
		days = *t.AvgDays
	}
	return models.RepairSummary{
		TotalRepairs:  t.Total,
		RepairTime:    fmt.Sprintf("%.2f", days),
		Completed:     t.Completed,
		PercentChange: fmt.Sprintf("%.2f", change(t.ThisMonth, t.LastMonth)),
	}, nil
}

func (s *ReportService) RequestSummary(ctx context.Context) (models.RequestSummary, error) {
	t, err := s.reports.RequestTotals(ctx, s.now())
	if err != nil {
		return models.RequestSummary{}, wrap("request summary", err)
	}
	return models.RequestSummary{
		TotalRequests: t.Total,
		PercentChange: fmt.Sprintf("%.2f", change(t.ThisMonth, t.LastMonth)),
	}, nil
}

func (s *ReportService) DeviceCategories(ctx context.Context) ([]models.CategoryCount, error) {
	out, err := s.reports.DevicesByCategory(ctx)
	return out, wrap("device category chart", err)
}

func (s *ReportService) DepartmentRequests(ctx context.Context) ([]models.DepartmentCount, error) {
	out, err := s.reports.RequestsByDepartment(ctx)
	return out, wrap("department requests", err)
}

func (s *ReportService) RequestMetric(ctx context.Context) (models.RequestMetric, error) {
	m, err := s.reports.RequestMetric(ctx, s.sets.RequestDone, s.sets.Cancelled)
	return m, wrap("request metric", err)
}

// RepairMetric counts repairs that are neither done nor cancelled.
func (s *ReportService) RepairMetric(ctx context.Context) (models.RepairMetric, error) {
	closed := slices.Concat(s.sets.RepairDone, s.sets.Cancelled)
	m, err := s.reports.RepairMetric(ctx, closed, s.now())
	return m, wrap("repair metric", err)
}

// MonthlyRepairs covers January to December of the current year.
func (s *ReportService) MonthlyRepairs(ctx context.Context) ([]models.MonthlyRepairs, error) {
	rows, err := s.reports.MonthlyRepairs(ctx, s.now().Year(), s.sets.RepairDone)
	if err != nil {
		return nil, wrap("monthly repairs", err)
	}
	out := make([]models.MonthlyRepairs, 0, len(rows))
	for _, m := range rows {
		out = append(out, models.MonthlyRepairs{Month: monthName(m.Month), Completed: m.Completed, Repairs: m.Total})
	}
	return out, nil
}

func (s *ReportService) MonthlyRequests(ctx context.Context) ([]models.MonthlyRequests, error) {
	rows, err := s.reports.MonthlyRequests(ctx, s.now().Year(), s.sets.RequestDone)
	if err != nil {
		return nil, wrap("monthly requests", err)
	}
	out := make([]models.MonthlyRequests, 0, len(rows))
	for _, m := range rows {
		out = append(out, models.MonthlyRequests{Month: monthName(m.Month), Completed: m.Completed, Requests: m.Total})
	}
	return out, nil
}

func monthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return monthNames[m-1]
}
