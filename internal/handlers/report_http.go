package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/service"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/utils"
)

type ReportsHTTP struct {
	svc *service.ReportService
	log zerolog.Logger
}

func NewReportsHTTP(log zerolog.Logger, s *service.ReportService) *ReportsHTTP {
	return &ReportsHTTP{svc: s, log: log}
}

// report adapts one ReportService getter to a JSON endpoint.
func report[T any](log zerolog.Logger, fallback string, fetch func(context.Context) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := fetch(r.Context())
		if err != nil {
			utils.Fail(w, log, err, fallback)
			return
		}
		utils.JSON(w, http.StatusOK, v)
	}
}

func (h *ReportsHTTP) RepairTable() http.HandlerFunc {
	return report(h.log, "Failed to load report table for repair", h.svc.RepairTable)
}

func (h *ReportsHTTP) RequestTable() http.HandlerFunc {
	return report(h.log, "Failed to get report table for requests", h.svc.RequestTable)
}

func (h *ReportsHTTP) RepairSummary() http.HandlerFunc {
	return report(h.log, "Failed to fetch repair summary", h.svc.RepairSummary)
}

func (h *ReportsHTTP) RequestSummary() http.HandlerFunc {
	return report(h.log, "Failed to fetch request summary", h.svc.RequestSummary)
}

func (h *ReportsHTTP) DeviceCategoryChart() http.HandlerFunc {
	return report(h.log, "Failed to fetch category count", h.svc.DeviceCategories)
}

func (h *ReportsHTTP) RequestMetric() http.HandlerFunc {
	return report(h.log, "Failed to fetch request metric", h.svc.RequestMetric)
}

func (h *ReportsHTTP) RepairMetric() http.HandlerFunc {
	return report(h.log, "Failed to fetch repair metric", h.svc.RepairMetric)
}

func (h *ReportsHTTP) DepartmentRequest() http.HandlerFunc {
	return report(h.log, "Failed to fetch department request count data", h.svc.DepartmentRequests)
}

func (h *ReportsHTTP) MonthlyRepairs() http.HandlerFunc {
	return report(h.log, "Failed to fetch monthly repairs", h.svc.MonthlyRepairs)
}

func (h *ReportsHTTP) MonthlyRequests() http.HandlerFunc {
	return report(h.log, "Failed to fetch monthly requests", h.svc.MonthlyRequests)
}

// Export downloads both report tables as an xlsx workbook.
func (h *ReportsHTTP) Export() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := h.svc.Export(r.Context(), &buf); err != nil {
			utils.Fail(w, h.log, err, "Failed to export reports")
			return
		}
		name := fmt.Sprintf("yeti-report-%s.xlsx", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+name)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}
