package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository"
)

type resolver struct{ s *Store }

func (r resolver) Resolve(ctx context.Context, kind models.RefKind, name string) (int, error) {
	d, unlock, err := r.s.lock("refs.resolve")
	defer unlock()
	if err != nil {
		return 0, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, repository.ErrNotFound
	}
	switch kind {
	case models.RefRepairStatus:
		return findName(d.statuses[models.RepairStatus], name, func(s models.Status) string { return s.Name })
	case models.RefRequestStatus:
		return findName(d.statuses[models.RequestStatus], name, func(s models.Status) string { return s.Name })
	case models.RefCategory:
		return findName(d.categories, name, func(c models.DeviceCategory) string { return c.Name })
	case models.RefVendor:
		return findName(d.vendors, name, func(v models.Vendor) string { return v.Name })
	case models.RefDepartment:
		return findName(d.departments, name, func(v models.Department) string { return v.Name })
	}
	return 0, fmt.Errorf("resolve: unknown kind %d", kind)
}

func findName[T any](m map[int]T, name string, nameOf func(T) string) (int, error) {
	for id, v := range m {
		if nameOf(v) == name {
			return id, nil
		}
	}
	return 0, repository.ErrNotFound
}

func taken[T any](m map[int]T, name string, except int, nameOf func(T) string) bool {
	for id, v := range m {
		if id != except && nameOf(v) == name {
			return true
		}
	}
	return false
}

func sortedKeys[T any](m map[int]T) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func affected(ok bool) int64 {
	if ok {
		return 1
	}
	return 0
}

type devices struct{ s *Store }

func (r devices) Upsert(ctx context.Context, name string, categoryID int) (int, error) {
	d, unlock, err := r.s.lock("devices.upsert")
	defer unlock()
	if err != nil {
		return 0, err
	}
	if _, ok := d.categories[categoryID]; !ok {
		return 0, repository.ErrReferenced
	}
	for id, dev := range d.devices {
		if dev.Name == name && dev.CategoryID == categoryID {
			return id, nil
		}
	}
	id := d.next()
	d.devices[id] = models.Device{ID: id, Name: name, CategoryID: categoryID}
	return id, nil
}

func (r devices) Count(ctx context.Context) (int, error) {
	d, unlock, err := r.s.lock("devices.count")
	defer unlock()
	if err != nil {
		return 0, err
	}
	return len(d.devices), nil
}

type vendors struct{ s *Store }

func vendorName(v models.Vendor) string { return v.Name }

func (r vendors) Create(ctx context.Context, name string) (int, error) {
	d, unlock, err := r.s.lock("vendors.create")
	defer unlock()
	if err != nil {
		return 0, err
	}
	if taken(d.vendors, name, 0, vendorName) {
		return 0, repository.ErrDuplicate
	}
	id := d.next()
	d.vendors[id] = models.Vendor{ID: id, Name: name}
	return id, nil
}

func (r vendors) List(ctx context.Context) ([]models.Vendor, error) {
	d, unlock, err := r.s.lock("vendors.list")
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := []models.Vendor{}
	for _, id := range sortedKeys(d.vendors) {
		out = append(out, d.vendors[id])
	}
	slices.SortStableFunc(out, func(a, b models.Vendor) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

func (r vendors) Rename(ctx context.Context, id int, name string) (int64, error) {
	d, unlock, err := r.s.lock("vendors.rename")
	defer unlock()
	if err != nil {
		return 0, err
	}
	v, ok := d.vendors[id]
	if !ok {
		return 0, nil
	}
	if taken(d.vendors, name, id, vendorName) {
		return 0, repository.ErrDuplicate
	}
	v.Name = name
	d.vendors[id] = v
	return 1, nil
}

func (r vendors) Delete(ctx context.Context, id int) (int64, error) {
	d, unlock, err := r.s.lock("vendors.delete")
	defer unlock()
	if err != nil {
		return 0, err
	}
	for _, rep := range d.repairs {
		if rep.VendorID == id {
			return 0, repository.ErrReferenced
		}
	}
	_, ok := d.vendors[id]
	delete(d.vendors, id)
	return affected(ok), nil
}

type departments struct{ s *Store }

func departmentName(v models.Department) string { return v.Name }

func (r departments) Create(ctx context.Context, name string) (int, error) {
	d, unlock, err := r.s.lock("departments.create")
	defer unlock()
	if err != nil {
		return 0, err
	}
	if taken(d.departments, name, 0, departmentName) {
		return 0, repository.ErrDuplicate
	}
	id := d.next()
	d.departments[id] = models.Department{ID: id, Name: name}
	return id, nil
}

func (r departments) List(ctx context.Context) ([]models.Department, error) {
	d, unlock, err := r.s.lock("departments.list")
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := []models.Department{}
	for _, id := range sortedKeys(d.departments) {
		out = append(out, d.departments[id])
	}
	return out, nil
}

func (r departments) Rename(ctx context.Context, id int, name string) (int64, error) {
	d, unlock, err := r.s.lock("departments.rename")
	defer unlock()
	if err != nil {
		return 0, err
	}
	v, ok := d.departments[id]
	if !ok {
		return 0, nil
	}
	if taken(d.departments, name, id, departmentName) {
		return 0, repository.ErrDuplicate
	}
	v.Name = name
	d.departments[id] = v
	return 1, nil
}

func (r departments) Delete(ctx context.Context, id int) (int64, error) {
	d, unlock, err := r.s.lock("departments.delete")
	defer unlock()
	if err != nil {
		return 0, err
	}
	for _, req := range d.requests {
		if req.DepartmentID == id {
			return 0, repository.ErrReferenced
		}
	}
	for _, u := range d.users {
		if u.user.DepartmentID == id {
			return 0, repository.ErrReferenced
		}
	}
	_, ok := d.departments[id]
	delete(d.departments, id)
	return affected(ok), nil
}

func (r departments) CountUsers(ctx context.Context, id int) (int, error) {
	d, unlock, err := r.s.lock("departments.countusers")
	defer unlock()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, u := range d.users {
		if u.user.DepartmentID == id {
			n++
		}
	}
	return n, nil
}

type categories struct{ s *Store }

func categoryName(c models.DeviceCategory) string { return c.Name }

func (r categories) Create(ctx context.Context, name string, description *string) (int, error) {
	d, unlock, err := r.s.lock("categories.create")
	defer unlock()
	if err != nil {
		return 0, err
	}
	if taken(d.categories, name, 0, categoryName) {
		return 0, repository.ErrDuplicate
	}
	id := d.next()
	d.categories[id] = models.DeviceCategory{ID: id, Name: name, Description: description}
	return id, nil
}

func (r categories) List(ctx context.Context) ([]models.DeviceCategory, error) {
	d, unlock, err := r.s.lock("categories.list")
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := []models.DeviceCategory{}
	for _, id := range sortedKeys(d.categories) {
		out = append(out, d.categories[id])
	}
	return out, nil
}

func (r categories) Update(ctx context.Context, id int, p models.CategoryPatch) (int64, error) {
	d, unlock, err := r.s.lock("categories.update")
	defer unlock()
	if err != nil {
		return 0, err
	}
	c, ok := d.categories[id]
	if !ok {
		return 0, nil
	}
	if p.Name.Set {
		if taken(d.categories, p.Name.Value, id, categoryName) {
			return 0, repository.ErrDuplicate
		}
		c.Name = p.Name.Value
	}
	if p.Description.Set {
		if p.Description.Null {
			c.Description = nil
		} else {
			desc := p.Description.Value
			c.Description = &desc
		}
	}
	d.categories[id] = c
	return 1, nil
}

type statuses struct{ s *Store }

func statusName(s models.Status) string { return s.Name }

func (r statuses) Create(ctx context.Context, kind models.StatusKind, s models.Status) (int, error) {
	d, unlock, err := r.s.lock("statuses.create")
	defer unlock()
	if err != nil {
		return 0, err
	}
	if taken(d.statuses[kind], s.Name, 0, statusName) {
		return 0, repository.ErrDuplicate
	}
	s.ID = d.next()
	d.statuses[kind][s.ID] = s
	return s.ID, nil
}

func (r statuses) List(ctx context.Context, kind models.StatusKind) ([]models.Status, error) {
	d, unlock, err := r.s.lock("statuses.list")
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := []models.Status{}
	for _, id := range sortedKeys(d.statuses[kind]) {
		out = append(out, d.statuses[kind][id])
	}
	return out, nil
}

func (r statuses) Update(ctx context.Context, kind models.StatusKind, id int, p models.StatusPatch) (int64, error) {
	d, unlock, err := r.s.lock("statuses.update")
	defer unlock()
	if err != nil {
		return 0, err
	}
	s, ok := d.statuses[kind][id]
	if !ok {
		return 0, nil
	}
	if p.Name.Set {
		if taken(d.statuses[kind], p.Name.Value, id, statusName) {
			return 0, repository.ErrDuplicate
		}
		s.Name = p.Name.Value
	}
	if p.Color.Set {
		s.Color = p.Color.Value
	}
	if p.Description.Set {
		s.Description = p.Description.Value
	}
	d.statuses[kind][id] = s
	return 1, nil
}

func (r statuses) Delete(ctx context.Context, kind models.StatusKind, id int) (int64, error) {
	d, unlock, err := r.s.lock("statuses.delete")
	defer unlock()
	if err != nil {
		return 0, err
	}
	if kind == models.RepairStatus {
		for _, rep := range d.repairs {
			if rep.StatusID == id {
				return 0, repository.ErrReferenced
			}
		}
	} else {
		for _, req := range d.requests {
			if req.StatusID == id {
				return 0, repository.ErrReferenced
			}
		}
	}
	_, ok := d.statuses[kind][id]
	delete(d.statuses[kind], id)
	return affected(ok), nil
}

type users struct{ s *Store }

func (r users) GetByUsername(ctx context.Context, username string) (*models.User, *models.Credential, error) {
	d, unlock, err := r.s.lock("users.getbyusername")
	defer unlock()
	if err != nil {
		return nil, nil, err
	}
	for _, row := range d.users {
		if row.user.Username == username {
			u, c := d.joinUser(row.user), row.cred
			return &u, &c, nil
		}
	}
	return nil, nil, nil
}

func (r users) GetByID(ctx context.Context, id int) (*models.User, error) {
	d, unlock, err := r.s.lock("users.getbyid")
	defer unlock()
	if err != nil {
		return nil, err
	}
	row, ok := d.users[id]
	if !ok {
		return nil, nil
	}
	u := d.joinUser(row.user)
	return &u, nil
}

func (r users) UpdateCredential(ctx context.Context, id int, c models.Credential) error {
	d, unlock, err := r.s.lock("users.updatecredential")
	defer unlock()
	if err != nil {
		return err
	}
	row, ok := d.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	row.cred = c
	d.users[id] = row
	return nil
}

func (d *data) joinUser(u models.User) models.User {
	u.Department = d.departments[u.DepartmentID].Name
	return u
}
