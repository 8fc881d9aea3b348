package handlers

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/service"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/utils"
)

// ticketFilter reads ?status=&category=&limit=&offset= from the query.
func ticketFilter(r *http.Request) repository.TicketFilter {
	qv := r.URL.Query()
	return repository.TicketFilter{
		Status:   strings.TrimSpace(qv.Get("status")),
		Category: strings.TrimSpace(qv.Get("category")),
		Limit:    utils.QueryInt(qv, "limit", repository.DefaultLimit),
		Offset:   utils.QueryInt(qv, "offset", 0),
	}.Normalize()
}

// RepairHTTP wires the repair endpoints to RepairService.
type RepairHTTP struct {
	svc *service.RepairService
	log zerolog.Logger
}

func NewRepairHTTP(log zerolog.Logger, s *service.RepairService) *RepairHTTP {
	return &RepairHTTP{svc: s, log: log}
}

// GET /api/repair
func (h *RepairHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.svc.List(r.Context(), ticketFilter(r))
		if err != nil {
			utils.Fail(w, h.log, err, "Failed to fetch repair requests")
			return
		}
		out := make([]models.RepairView, 0, len(items))
		for _, it := range items {
			out = append(out, it.View())
		}
		utils.JSON(w, http.StatusOK, out)
	}
}

// GET /api/repair/{id}
func (h *RepairHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.PathID(r, "repair")
		if err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		rep, err := h.svc.Get(r.Context(), id)
		if err != nil {
			utils.Fail(w, h.log, err, "Failed to fetch repair request")
			return
		}
		utils.JSON(w, http.StatusOK, rep.View())
	}
}

// POST /api/repair
func (h *RepairHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.NewRepair
		if err := utils.Decode(r, &in); err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		rep, err := h.svc.Create(r.Context(), in)
		if err != nil {
			utils.Fail(w, h.log, err, "Failed to create repair request")
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{
			"message":   "Repair request created successfully",
			"repairId":  rep.ID,
			"displayId": models.DisplayID(models.PrefixRepair, rep.ID),
			"deviceId":  rep.DeviceID,
		})
	}
}

// PUT /api/repair/{id}
func (h *RepairHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.PathID(r, "repair")
		if err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		var p models.RepairPatch
		if err := utils.Decode(r, &p); err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		if err := h.svc.Update(r.Context(), id, p); err != nil {
			utils.Fail(w, h.log, err, "Failed to update repair request")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"message":  "Repair request updated successfully",
			"RepairId": id,
		})
	}
}

// DELETE /api/repair/{id}
func (h *RepairHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.PathID(r, "repair")
		if err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		if err := h.svc.Delete(r.Context(), id); err != nil {
			utils.Fail(w, h.log, err, "Failed to delete repair request")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"message":  "Repair request deleted successfully",
			"RepairId": id,
		})
	}
}
