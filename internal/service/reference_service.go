package service

import (
	"context"
	"errors"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/apperror"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/utils"
)

// ReferenceService administers the lookup tables tickets refer to.
type ReferenceService struct {
	store repository.Store
}

func NewReferenceService(store repository.Store) *ReferenceService {
	return &ReferenceService{store: store}
}

// writeErr maps constraint failures of a lookup write to client errors.
func writeErr(op, what, name string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrDuplicate):
		return apperror.Validation("%s %q already exists", what, name)
	case errors.Is(err, repository.ErrReferenced):
		return apperror.Validation("%s is still in use", what)
	default:
		return wrap(op, err)
	}
}

func (s *ReferenceService) CreateVendor(ctx context.Context, name string) (int, error) {
	name = trim(name)
	if name == "" {
		return 0, apperror.Validation("Vendor Name is required")
	}
	id, err := s.store.Vendors().Create(ctx, name)
	return id, writeErr("create vendor", "Vendor", name, err)
}

func (s *ReferenceService) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	out, err := s.store.Vendors().List(ctx)
	return out, wrap("list vendors", err)
}

func (s *ReferenceService) RenameVendor(ctx context.Context, id int, name string) error {
	name = trim(name)
	if name == "" {
		return apperror.Validation("Vendor Name is required")
	}
	n, err := s.store.Vendors().Rename(ctx, id, name)
	if err != nil {
		return writeErr("rename vendor", "Vendor", name, err)
	}
	if n == 0 {
		return apperror.NotFound("Vendor not found")
	}
	return nil
}

// DeleteVendor refuses while any repair still names the vendor.
func (s *ReferenceService) DeleteVendor(ctx context.Context, id int) error {
	return s.store.InTx(ctx, func(tx repository.Store) error {
		used, err := tx.Repairs().CountByVendor(ctx, id)
		if err != nil {
			return wrap("count vendor repairs", err)
		}
		if used > 0 {
			return apperror.Validation("Cannot delete vendor with associated repairs. It is associated with %d", used)
		}
		n, err := tx.Vendors().Delete(ctx, id)
		if err != nil {
			return writeErr("delete vendor", "Vendor", "", err)
		}
		if n == 0 {
			return apperror.NotFound("Vendor not found")
		}
		return nil
	})
}

func (s *ReferenceService) CreateDepartment(ctx context.Context, name string) (int, error) {
	name = trim(name)
	if name == "" {
		return 0, apperror.Validation("Department Name is required")
	}
	id, err := s.store.Departments().Create(ctx, name)
	return id, writeErr("create department", "Department", name, err)
}

func (s *ReferenceService) ListDepartments(ctx context.Context) ([]models.Department, error) {
	out, err := s.store.Departments().List(ctx)
	return out, wrap("list departments", err)
}

func (s *ReferenceService) RenameDepartment(ctx context.Context, id int, name string) error {
	name = trim(name)
	if name == "" {
		return apperror.Validation("Department name field is not provided")
	}
	n, err := s.store.Departments().Rename(ctx, id, name)
	if err != nil {
		return writeErr("rename department", "Department", name, err)
	}
	if n == 0 {
		return apperror.NotFound("Department not found")
	}
	return nil
}

// DeleteDepartment refuses while requests or users belong to it.
func (s *ReferenceService) DeleteDepartment(ctx context.Context, id int) error {
	return s.store.InTx(ctx, func(tx repository.Store) error {
		requests, err := tx.Requests().CountByDepartment(ctx, id)
		if err != nil {
			return wrap("count department requests", err)
		}
		users, err := tx.Departments().CountUsers(ctx, id)
		if err != nil {
			return wrap("count department users", err)
		}
		if requests > 0 || users > 0 {
			return apperror.Validation(
				"Cannot delete department with associated requests or users. It has %d requests and %d users",
				requests, users)
		}
		n, err := tx.Departments().Delete(ctx, id)
		if err != nil {
			return writeErr("delete department", "Department", "", err)
		}
		if n == 0 {
			return apperror.NotFound("Department not found")
		}
		return nil
	})
}

func (s *ReferenceService) CreateCategory(ctx context.Context, in models.NewCategory) (int, error) {
	in.Name = trim(in.Name)
	if err := utils.ValidateStruct(in); err != nil {
		return 0, err
	}
	if in.Description != nil {
		d := trim(*in.Description)
		in.Description = &d
	}
	id, err := s.store.Categories().Create(ctx, in.Name, in.Description)
	return id, writeErr("create device category", "Device category", in.Name, err)
}

func (s *ReferenceService) ListCategories(ctx context.Context) ([]models.DeviceCategory, error) {
	out, err := s.store.Categories().List(ctx)
	return out, wrap("list device categories", err)
}

func (s *ReferenceService) UpdateCategory(ctx context.Context, id int, p models.CategoryPatch) error {
	if p.Empty() {
		return apperror.Validation("Missing required fields")
	}
	if p.Name.Set {
		v, err := requiredText("DeviceCatName", p.Name)
		if err != nil {
			return err
		}
		p.Name.Value = *v
	}
	if p.Description.Set && !p.Description.Null {
		p.Description.Value = trim(p.Description.Value)
	}
	n, err := s.store.Categories().Update(ctx, id, p)
	if err != nil {
		return writeErr("update device category", "Device category", p.Name.Value, err)
	}
	if n == 0 {
		return apperror.NotFound("Device Category not found")
	}
	return nil
}

func statusNotFound(kind models.StatusKind) error {
	if kind == models.RequestStatus {
		return apperror.NotFound("Request status not found")
	}
	return apperror.NotFound("Repair status not found")
}

func (s *ReferenceService) CreateStatus(ctx context.Context, kind models.StatusKind, in models.NewStatus) (int, error) {
	utils.TrimStrings(&in)
	if err := utils.ValidateStruct(in); err != nil {
		return 0, err
	}
	id, err := s.store.Statuses().Create(ctx, kind, models.Status{
		Name: in.Name, Color: in.Color, Description: in.Description,
	})
	return id, writeErr("create "+kind.String(), "Status", in.Name, err)
}

func (s *ReferenceService) ListStatuses(ctx context.Context, kind models.StatusKind) ([]models.Status, error) {
	out, err := s.store.Statuses().List(ctx, kind)
	return out, wrap("list "+kind.String(), err)
}

func (s *ReferenceService) UpdateStatus(ctx context.Context, kind models.StatusKind, id int, p models.StatusPatch) error {
	if p.Empty() {
		return apperror.Validation("Fill at least one field")
	}
	if p.Name.Set {
		v, err := requiredText("Status Name", p.Name)
		if err != nil {
			return err
		}
		p.Name.Value = *v
	}
	if p.Description.Set {
		v, err := requiredText("Status Description", p.Description)
		if err != nil {
			return err
		}
		p.Description.Value = *v
	}
	if p.Color.Set && (p.Color.Null || !utils.ValidColor(trim(p.Color.Value))) {
		return apperror.Validation("Invalid color format. Use #RRGGBB")
	}
	p.Color.Value = trim(p.Color.Value)

	n, err := s.store.Statuses().Update(ctx, kind, id, p)
	if err != nil {
		return writeErr("update "+kind.String(), "Status", p.Name.Value, err)
	}
	if n == 0 {
		return statusNotFound(kind)
	}
	return nil
}

// DeleteStatus refuses while any ticket of the taxonomy carries the status.
func (s *ReferenceService) DeleteStatus(ctx context.Context, kind models.StatusKind, id int) error {
	return s.store.InTx(ctx, func(tx repository.Store) error {
		var used int
		var err error
		if kind == models.RequestStatus {
			used, err = tx.Requests().CountByStatus(ctx, id)
		} else {
			used, err = tx.Repairs().CountByStatus(ctx, id)
		}
		if err != nil {
			return wrap("count "+kind.String()+" tickets", err)
		}
		if used > 0 {
			return apperror.Validation("Cannot delete status in use. It is used by %d %s", used, ticketNoun(kind, used))
		}
		n, err := tx.Statuses().Delete(ctx, kind, id)
		if err != nil {
			return writeErr("delete "+kind.String(), "Status", "", err)
		}
		if n == 0 {
			return statusNotFound(kind)
		}
		return nil
	})
}

func ticketNoun(kind models.StatusKind, n int) string {
	noun := "repair"
	if kind == models.RequestStatus {
		noun = "request"
	}
	if n != 1 {
		noun += "s"
	}
	return noun
}
