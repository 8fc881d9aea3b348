package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository"
)

func (d *data) joinRepair(r models.Repair) models.Repair {
	dev := d.devices[r.DeviceID]
	r.DeviceName = dev.Name
	r.Category = d.categories[dev.CategoryID].Name
	r.Vendor = d.vendors[r.VendorID].Name
	st := d.statuses[models.RepairStatus][r.StatusID]
	r.Status, r.StatusColor = st.Name, st.Color
	return r
}

func (d *data) joinRequest(r models.Request) models.Request {
	dev := d.devices[r.DeviceID]
	r.DeviceName = dev.Name
	r.Category = d.categories[dev.CategoryID].Name
	r.RequestedBy = d.users[r.UserID].user.EmployeeName
	r.Department = d.departments[r.DepartmentID].Name
	st := d.statuses[models.RequestStatus][r.StatusID]
	r.Status, r.StatusColor = st.Name, st.Color
	return r
}

// page applies the offset and limit of a normalized filter.
func page[T any](rows []T, f repository.TicketFilter) []T {
	if f.Offset >= len(rows) {
		return []T{}
	}
	rows = rows[f.Offset:]
	if len(rows) > f.Limit {
		rows = rows[:f.Limit]
	}
	return rows
}

type repairs struct{ s *Store }

func (r repairs) Create(ctx context.Context, rep *models.Repair) error {
	d, unlock, err := r.s.lock("repairs.create")
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := d.devices[rep.DeviceID]; !ok {
		return repository.ErrReferenced
	}
	if _, ok := d.vendors[rep.VendorID]; !ok {
		return repository.ErrReferenced
	}
	if _, ok := d.statuses[models.RepairStatus][rep.StatusID]; !ok {
		return repository.ErrReferenced
	}
	rep.ID = d.next()
	d.repairs[rep.ID] = *rep
	return nil
}

func (r repairs) Get(ctx context.Context, id int) (*models.Repair, error) {
	d, unlock, err := r.s.lock("repairs.get")
	defer unlock()
	if err != nil {
		return nil, err
	}
	rep, ok := d.repairs[id]
	if !ok {
		return nil, nil
	}
	rep = d.joinRepair(rep)
	return &rep, nil
}

func (r repairs) List(ctx context.Context, f repository.TicketFilter) ([]models.Repair, error) {
	d, unlock, err := r.s.lock("repairs.list")
	defer unlock()
	if err != nil {
		return nil, err
	}
	f = f.Normalize()
	out := []models.Repair{}
	for _, rep := range d.repairs {
		rep = d.joinRepair(rep)
		if f.Status != "" && rep.Status != f.Status {
			continue
		}
		if f.Category != "" && rep.Category != f.Category {
			continue
		}
		out = append(out, rep)
	}
	slices.SortFunc(out, func(a, b models.Repair) int {
		if c := b.IssueDate.Compare(a.IssueDate); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return page(out, f), nil
}

func (r repairs) Update(ctx context.Context, id int, c models.RepairChanges) (int64, error) {
	d, unlock, err := r.s.lock("repairs.update")
	defer unlock()
	if err != nil {
		return 0, err
	}
	rep, ok := d.repairs[id]
	if !ok {
		return 0, nil
	}
	if c.IssueDescription != nil {
		rep.IssueDescription = *c.IssueDescription
	}
	if c.IssueDate != nil {
		rep.IssueDate = *c.IssueDate
	}
	if c.ReturnDate.Set {
		rep.ReturnDate = patchPtr(c.ReturnDate)
	}
	if c.Cost.Set {
		rep.Cost = patchPtr(c.Cost)
	}
	if c.StatusID != nil {
		rep.StatusID = *c.StatusID
	}
	if c.VendorID != nil {
		rep.VendorID = *c.VendorID
	}
	d.repairs[id] = rep
	return 1, nil
}

func (r repairs) Delete(ctx context.Context, id int) (int64, error) {
	d, unlock, err := r.s.lock("repairs.delete")
	defer unlock()
	if err != nil {
		return 0, err
	}
	_, ok := d.repairs[id]
	delete(d.repairs, id)
	return affected(ok), nil
}

func (r repairs) CountByVendor(ctx context.Context, vendorID int) (int, error) {
	return r.count("repairs.countbyvendor", func(rep models.Repair) bool { return rep.VendorID == vendorID })
}

func (r repairs) CountByStatus(ctx context.Context, statusID int) (int, error) {
	return r.count("repairs.countbystatus", func(rep models.Repair) bool { return rep.StatusID == statusID })
}

func (r repairs) count(op string, match func(models.Repair) bool) (int, error) {
	d, unlock, err := r.s.lock(op)
	defer unlock()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, rep := range d.repairs {
		if match(rep) {
			n++
		}
	}
	return n, nil
}

type requests struct{ s *Store }

func (r requests) Create(ctx context.Context, req *models.Request) error {
	d, unlock, err := r.s.lock("requests.create")
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := d.devices[req.DeviceID]; !ok {
		return repository.ErrReferenced
	}
	if _, ok := d.users[req.UserID]; !ok {
		return repository.ErrReferenced
	}
	if _, ok := d.departments[req.DepartmentID]; !ok {
		return repository.ErrReferenced
	}
	if _, ok := d.statuses[models.RequestStatus][req.StatusID]; !ok {
		return repository.ErrReferenced
	}
	req.ID = d.next()
	d.requests[req.ID] = *req
	return nil
}

func (r requests) Get(ctx context.Context, id int) (*models.Request, error) {
	d, unlock, err := r.s.lock("requests.get")
	defer unlock()
	if err != nil {
		return nil, err
	}
	req, ok := d.requests[id]
	if !ok {
		return nil, nil
	}
	req = d.joinRequest(req)
	return &req, nil
}

func (r requests) List(ctx context.Context, f repository.TicketFilter) ([]models.Request, error) {
	d, unlock, err := r.s.lock("requests.list")
	defer unlock()
	if err != nil {
		return nil, err
	}
	f = f.Normalize()
	out := []models.Request{}
	for _, req := range d.requests {
		req = d.joinRequest(req)
		if f.Status != "" && req.Status != f.Status {
			continue
		}
		if f.Category != "" && req.Category != f.Category {
			continue
		}
		out = append(out, req)
	}
	slices.SortFunc(out, func(a, b models.Request) int {
		if c := b.RequestDate.Compare(a.RequestDate); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return page(out, f), nil
}

func (r requests) Update(ctx context.Context, id int, c models.RequestChanges) (int64, error) {
	d, unlock, err := r.s.lock("requests.update")
	defer unlock()
	if err != nil {
		return 0, err
	}
	req, ok := d.requests[id]
	if !ok {
		return 0, nil
	}
	if c.Reason != nil {
		req.Reason = *c.Reason
	}
	if c.StatusID != nil {
		req.StatusID = *c.StatusID
	}
	if c.DepartmentID != nil {
		req.DepartmentID = *c.DepartmentID
	}
	if c.ReceiveDate.Set {
		req.ReceiveDate = patchPtr(c.ReceiveDate)
	}
	d.requests[id] = req
	return 1, nil
}

func (r requests) Delete(ctx context.Context, id int) (int64, error) {
	d, unlock, err := r.s.lock("requests.delete")
	defer unlock()
	if err != nil {
		return 0, err
	}
	_, ok := d.requests[id]
	delete(d.requests, id)
	return affected(ok), nil
}

func (r requests) CountByDepartment(ctx context.Context, departmentID int) (int, error) {
	return r.count("requests.countbydepartment", func(req models.Request) bool { return req.DepartmentID == departmentID })
}

func (r requests) CountByStatus(ctx context.Context, statusID int) (int, error) {
	return r.count("requests.countbystatus", func(req models.Request) bool { return req.StatusID == statusID })
}

func (r requests) count(op string, match func(models.Request) bool) (int, error) {
	d, unlock, err := r.s.lock(op)
	defer unlock()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, req := range d.requests {
		if match(req) {
			n++
		}
	}
	return n, nil
}

func patchPtr[T any](p models.Patch[T]) *T {
	if p.Null {
		return nil
	}
	v := p.Value
	return &v
}
