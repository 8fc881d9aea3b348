package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/apperror"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/service"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/utils"
)

type RequestHTTP struct {
	svc *service.RequestService
	log zerolog.Logger
}

func NewRequestHTTP(log zerolog.Logger, s *service.RequestService) *RequestHTTP {
	return &RequestHTTP{svc: s, log: log}
}

func (h *RequestHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.svc.List(r.Context(), ticketFilter(r))
		if err != nil {
			utils.Fail(w, h.log, err, "Failed to fetch requests from db")
			return
		}
		out := make([]models.RequestView, 0, len(items))
		for _, it := range items {
			out = append(out, it.View())
		}
		utils.JSON(w, http.StatusOK, out)
	}
}

func (h *RequestHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.PathID(r, "request")
		if err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		req, err := h.svc.Get(r.Context(), id)
		if err != nil {
			utils.Fail(w, h.log, err, "Failed to fetch request by id from db")
			return
		}
		utils.JSON(w, http.StatusOK, req.View())
	}
}

// Create files the request on behalf of the token's user.
func (h *RequestHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := utils.PrincipalFrom(r.Context())
		if !ok {
			utils.Fail(w, h.log, apperror.Unauthorized("No token provided"), "")
			return
		}
		var in models.NewRequest
		if err := utils.Decode(r, &in); err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		req, err := h.svc.Create(r.Context(), p.UserID, in)
		if err != nil {
			utils.Fail(w, h.log, err, "Failed to create device request")
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{
			"message":   "Request Created Successfully",
			"RequestId": req.ID,
			"DisplayId": models.DisplayID(models.PrefixRequest, req.ID),
			"DeviceId":  req.DeviceID,
		})
	}
}

func (h *RequestHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.PathID(r, "request")
		if err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		var p models.RequestPatch
		if err := utils.Decode(r, &p); err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		if err := h.svc.Update(r.Context(), id, p); err != nil {
			utils.Fail(w, h.log, err, "Failed to update request")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"message":   "Request updated successfully",
			"RequestId": id,
		})
	}
}

func (h *RequestHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.PathID(r, "request")
		if err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		if err := h.svc.Delete(r.Context(), id); err != nil {
			utils.Fail(w, h.log, err, "Failed to delete request")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"message":   "Request deleted successfully",
			"RequestId": id,
		})
	}
}
