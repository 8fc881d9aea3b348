package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/apperror"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/utils"
)

type RequestService struct {
	store repository.Store
	now   clock
}

func NewRequestService(store repository.Store) *RequestService {
	return &RequestService{store: store, now: time.Now}
}

// Create files a request for userID. The department defaults to the
// requester's own and the request date is today.
func (s *RequestService) Create(ctx context.Context, userID int, in models.NewRequest) (*models.Request, error) {
	utils.TrimStrings(&in)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	req := &models.Request{
		DeviceName:  in.DeviceName,
		Category:    in.DeviceCategory,
		Reason:      in.Reason,
		RequestDate: today(s.now()),
		UserID:      userID,
		Department:  in.DepartmentName,
		Status:      in.RequestStatus,
	}
	if req.Status == "" {
		req.Status = DefaultStatus
	}

	err := s.store.InTx(ctx, func(tx repository.Store) error {
		refs := tx.Refs()
		var err error
		if req.StatusID, err = resolve(ctx, refs, models.RefRequestStatus, req.Status, statusMissing); err != nil {
			return err
		}
		catID, err := resolve(ctx, refs, models.RefCategory, req.Category,
			fmt.Sprintf("Device category %q not found", req.Category))
		if err != nil {
			return err
		}
		if req.Department != "" {
			if req.DepartmentID, err = resolve(ctx, refs, models.RefDepartment, req.Department,
				fmt.Sprintf("Department %q not found", req.Department)); err != nil {
				return err
			}
		} else {
			u, err := tx.Users().GetByID(ctx, userID)
			if err != nil {
				return wrap("get requester", err)
			}
			if u == nil {
				return apperror.Unauthorized("Invalid or expired token")
			}
			req.DepartmentID, req.Department = u.DepartmentID, u.Department
		}
		if req.DeviceID, err = tx.Devices().Upsert(ctx, req.DeviceName, catID); err != nil {
			return wrap("upsert device", err)
		}
		return wrap("insert request", tx.Requests().Create(ctx, req))
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *RequestService) List(ctx context.Context, f repository.TicketFilter) ([]models.Request, error) {
	out, err := s.store.Requests().List(ctx, f)
	return out, wrap("list requests", err)
}

func (s *RequestService) Get(ctx context.Context, id int) (*models.Request, error) {
	req, err := s.store.Requests().Get(ctx, id)
	if err != nil {
		return nil, wrap("get request", err)
	}
	if req == nil {
		return nil, apperror.NotFound("Request not found")
	}
	return req, nil
}

func (s *RequestService) Update(ctx context.Context, id int, p models.RequestPatch) error {
	if p.Empty() {
		return apperror.Validation("No fields provided to update")
	}
	var c models.RequestChanges
	var err error
	if c.Reason, err = requiredText("Reason", p.Reason); err != nil {
		return err
	}
	if p.ReceiveDate.Set {
		if c.ReceiveDate, err = optionalDate("ReceiveDate", p.ReceiveDate); err != nil {
			return err
		}
	}

	return s.store.InTx(ctx, func(tx repository.Store) error {
		refs := tx.Refs()
		if p.RequestStatus.Set {
			sid, err := resolve(ctx, refs, models.RefRequestStatus, p.RequestStatus.Value, statusMissing)
			if err != nil {
				return err
			}
			c.StatusID = &sid
		}
		if p.DepartmentName.Set {
			name := trim(p.DepartmentName.Value)
			did, err := resolve(ctx, refs, models.RefDepartment, name, fmt.Sprintf("Department %q not found", name))
			if err != nil {
				return err
			}
			c.DepartmentID = &did
		}
		n, err := tx.Requests().Update(ctx, id, c)
		if err != nil {
			return wrap("update request", err)
		}
		if n == 0 {
			return apperror.NotFound("Request not found")
		}
		return nil
	})
}

func (s *RequestService) Delete(ctx context.Context, id int) error {
	n, err := s.store.Requests().Delete(ctx, id)
	if err != nil {
		return wrap("delete request", err)
	}
	if n == 0 {
		return apperror.NotFound("Request not found")
	}
	return nil
}
