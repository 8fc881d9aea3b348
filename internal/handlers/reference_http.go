package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/service"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/utils"
)

// ReferenceHTTP serves vendors, departments and device categories.
type ReferenceHTTP struct {
	svc *service.ReferenceService
	log zerolog.Logger
}

func NewReferenceHTTP(log zerolog.Logger, s *service.ReferenceService) *ReferenceHTTP {
	return &ReferenceHTTP{svc: s, log: log}
}

type vendorBody struct {
	VendorName string `json:"VendorName"`
}

func (h *ReferenceHTTP) ListVendors() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := h.svc.ListVendors(r.Context())
		if err != nil {
			utils.Fail(w, h.log, err, "Failed to fetch vendors from db")
			return
		}
		utils.JSON(w, http.StatusOK, out)
	}
}

func (h *ReferenceHTTP) CreateVendor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in vendorBody
		if err := utils.Decode(r, &in); err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		id, err := h.svc.CreateVendor(r.Context(), in.VendorName)
		if err != nil {
			utils.Fail(w, h.log, err, "Failed to create vendor")
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{"message": "Vendor created successfully", "VendorId": id})
	}
}

func (h *ReferenceHTTP) UpdateVendor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.PathID(r, "Vendor")
		if err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		var in vendorBody
		if err := utils.Decode(r, &in); err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		if err := h.svc.RenameVendor(r.Context(), id, in.VendorName); err != nil {
			utils.Fail(w, h.log, err, "Failed to update vendor")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"message": "Vendor updated successfully", "VendorId": id})
	}
}

func (h *ReferenceHTTP) DeleteVendor() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.PathID(r, "Vendor")
		if err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		if err := h.svc.DeleteVendor(r.Context(), id); err != nil {
			utils.Fail(w, h.log, err, "Failed to delete vendor")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"message": "Vendor deleted successfully", "VendorId": id})
	}
}

type departmentBody struct {
	DepartmentName string `json:"DepartmentName"`
}

func (h *ReferenceHTTP) ListDepartments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := h.svc.ListDepartments(r.Context())
		if err != nil {
			utils.Fail(w, h.log, err, "Failed to fetch department from db")
			return
		}
		utils.JSON(w, http.StatusOK, out)
	}
}

func (h *ReferenceHTTP) CreateDepartment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in departmentBody
		if err := utils.Decode(r, &in); err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		id, err := h.svc.CreateDepartment(r.Context(), in.DepartmentName)
		if err != nil {
			utils.Fail(w, h.log, err, "Failed to create department")
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{"message": "Department created successfully", "DepartmentId": id})
	}
}

func (h *ReferenceHTTP) UpdateDepartment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.PathID(r, "Department")
		if err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		var in departmentBody
		if err := utils.Decode(r, &in); err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		if err := h.svc.RenameDepartment(r.Context(), id, in.DepartmentName); err != nil {
			utils.Fail(w, h.log, err, "Failed to update Department")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"message": "Department updated successfully", "DepartmentId": id})
	}
}

func (h *ReferenceHTTP) DeleteDepartment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.PathID(r, "Department")
		if err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		if err := h.svc.DeleteDepartment(r.Context(), id); err != nil {
			utils.Fail(w, h.log, err, "Failed to delete department")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"message": "Department deleted successfully", "DepartmentId": id})
	}
}

func (h *ReferenceHTTP) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := h.svc.ListCategories(r.Context())
		if err != nil {
			utils.Fail(w, h.log, err, "Could not get Device Categories")
			return
		}
		utils.JSON(w, http.StatusOK, out)
	}
}

func (h *ReferenceHTTP) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.NewCategory
		if err := utils.Decode(r, &in); err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		id, err := h.svc.CreateCategory(r.Context(), in)
		if err != nil {
			utils.Fail(w, h.log, err, "Failed to create device category")
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{"message": "Category Created Successfully", "DeviceCategoryId": id})
	}
}

func (h *ReferenceHTTP) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.PathID(r, "Device Category")
		if err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		var p models.CategoryPatch
		if err := utils.Decode(r, &p); err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		if err := h.svc.UpdateCategory(r.Context(), id, p); err != nil {
			utils.Fail(w, h.log, err, "Error editing Category")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"message": "Successfully edited Category", "DeviceCategoryId": id})
	}
}

// StatusHTTP serves one status taxonomy.
type StatusHTTP struct {
	svc  *service.ReferenceService
	kind models.StatusKind
	log  zerolog.Logger
}

func NewStatusHTTP(log zerolog.Logger, s *service.ReferenceService, kind models.StatusKind) *StatusHTTP {
	return &StatusHTTP{svc: s, kind: kind, log: log}
}

func (h *StatusHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := h.svc.ListStatuses(r.Context(), h.kind)
		if err != nil {
			utils.Fail(w, h.log, err, "Failed to get "+h.kind.String())
			return
		}
		utils.JSON(w, http.StatusOK, out)
	}
}

func (h *StatusHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.NewStatus
		if err := utils.Decode(r, &in); err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		id, err := h.svc.CreateStatus(r.Context(), h.kind, in)
		if err != nil {
			utils.Fail(w, h.log, err, "Could not insert the status")
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{"message": "Successfully Added Status", "statusId": id})
	}
}

func (h *StatusHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.PathID(r, "status")
		if err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		var p models.StatusPatch
		if err := utils.Decode(r, &p); err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		if err := h.svc.UpdateStatus(r.Context(), h.kind, id, p); err != nil {
			utils.Fail(w, h.log, err, "Couldn't change the status")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"message": "Successfully updated status", "statusId": id})
	}
}

func (h *StatusHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.PathID(r, "status")
		if err != nil {
			utils.Fail(w, h.log, err, "")
			return
		}
		if err := h.svc.DeleteStatus(r.Context(), h.kind, id); err != nil {
			utils.Fail(w, h.log, err, "Failed to delete status")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"message": "Successfully deleted status", "statusId": id})
	}
}
