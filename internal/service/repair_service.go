package service

import (
	"context"
	"fmt"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/apperror"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/utils"
)

type RepairService struct {
	store repository.Store
}

func NewRepairService(store repository.Store) *RepairService {
	return &RepairService{store: store}
}

// Create validates in, then resolves its names, finds or creates the
// device and inserts the ticket in one transaction.
func (s *RepairService) Create(ctx context.Context, in models.NewRepair) (*models.Repair, error) {
	utils.TrimStrings(&in)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if in.Cost.Value != nil && *in.Cost.Value < 0 {
		return nil, apperror.Validation("Cost must be at least 0")
	}
	issued, err := parseDate("IssueDate", in.IssueDate)
	if err != nil {
		return nil, err
	}
	rep := &models.Repair{
		DeviceName:       in.DeviceName,
		Category:         in.DeviceCategory,
		IssueDescription: in.IssueDescription,
		IssueDate:        issued,
		Cost:             in.Cost.Value,
		Vendor:           in.VendorName,
		Status:           in.RepairStatus,
	}
	if in.ReturnDate != "" {
		t, err := parseDate("ReturnDate", in.ReturnDate)
		if err != nil {
			return nil, err
		}
		rep.ReturnDate = &t
	}
	if rep.Status == "" {
		rep.Status = DefaultStatus
	}

	err = s.store.InTx(ctx, func(tx repository.Store) error {
		refs := tx.Refs()
		var err error
		if rep.StatusID, err = resolve(ctx, refs, models.RefRepairStatus, rep.Status, statusMissing); err != nil {
			return err
		}
		catID, err := resolve(ctx, refs, models.RefCategory, rep.Category,
			fmt.Sprintf("Device category %q not found", rep.Category))
		if err != nil {
			return err
		}
		if rep.VendorID, err = resolve(ctx, refs, models.RefVendor, rep.Vendor,
			"Vendor not found. Please register the vendor before creating a repair request"); err != nil {
			return err
		}
		if rep.DeviceID, err = tx.Devices().Upsert(ctx, rep.DeviceName, catID); err != nil {
			return wrap("upsert device", err)
		}
		return wrap("insert repair", tx.Repairs().Create(ctx, rep))
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *RepairService) List(ctx context.Context, f repository.TicketFilter) ([]models.Repair, error) {
	out, err := s.store.Repairs().List(ctx, f)
	return out, wrap("list repairs", err)
}

func (s *RepairService) Get(ctx context.Context, id int) (*models.Repair, error) {
	rep, err := s.store.Repairs().Get(ctx, id)
	if err != nil {
		return nil, wrap("get repair", err)
	}
	if rep == nil {
		return nil, apperror.NotFound("Repair request not found")
	}
	return rep, nil
}

// changes validates the literal columns of p. Names are resolved later.
func (s *RepairService) changes(p models.RepairPatch) (models.RepairChanges, error) {
	var c models.RepairChanges
	var err error
	if c.IssueDescription, err = requiredText("IssueDescription", p.IssueDescription); err != nil {
		return c, err
	}
	if p.IssueDate.Set {
		if p.IssueDate.Null {
			return c, apperror.Validation("IssueDate must not be empty")
		}
		t, err := parseDate("IssueDate", p.IssueDate.Value)
		if err != nil {
			return c, err
		}
		c.IssueDate = &t
	}
	if p.ReturnDate.Set {
		if c.ReturnDate, err = optionalDate("ReturnDate", p.ReturnDate); err != nil {
			return c, err
		}
	}
	if p.Cost.Set {
		if !p.Cost.Null && p.Cost.Value < 0 {
			return c, apperror.Validation("Cost must be at least 0")
		}
		c.Cost = p.Cost
	}
	return c, nil
}

// Update applies the fields present in p. Every name is resolved before
// the row is written, so a bad name leaves the ticket untouched.
func (s *RepairService) Update(ctx context.Context, id int, p models.RepairPatch) error {
	if p.Empty() {
		return apperror.Validation("No fields provided to update")
	}
	c, err := s.changes(p)
	if err != nil {
		return err
	}
	return s.store.InTx(ctx, func(tx repository.Store) error {
		refs := tx.Refs()
		if p.RepairStatus.Set {
			sid, err := resolve(ctx, refs, models.RefRepairStatus, p.RepairStatus.Value, statusMissing)
			if err != nil {
				return err
			}
			c.StatusID = &sid
		}
		if p.VendorName.Set {
			name := trim(p.VendorName.Value)
			vid, err := resolve(ctx, refs, models.RefVendor, name, fmt.Sprintf("Vendor %q not found", name))
			if err != nil {
				return err
			}
			c.VendorID = &vid
		}
		n, err := tx.Repairs().Update(ctx, id, c)
		if err != nil {
			return wrap("update repair", err)
		}
		if n == 0 {
			return apperror.NotFound("Repair request not found")
		}
		return nil
	})
}

func (s *RepairService) Delete(ctx context.Context, id int) error {
	n, err := s.store.Repairs().Delete(ctx, id)
	if err != nil {
		return wrap("delete repair", err)
	}
	if n == 0 {
		return apperror.NotFound("Repair request not found")
	}
	return nil
}
