// Package memory is an in-process repository.Store used by tests and
// local demos. Transactions roll back by restoring a snapshot; they do
// not isolate concurrent writers.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository"
)

type userRow struct {
	user models.User
	cred models.Credential
}

type data struct {
	seq         int
	departments map[int]models.Department
	categories  map[int]models.DeviceCategory
	devices     map[int]models.Device
	vendors     map[int]models.Vendor
	statuses    map[models.StatusKind]map[int]models.Status
	users       map[int]userRow
	repairs     map[int]models.Repair
	requests    map[int]models.Request
}

func newData() *data {
	return &data{
		departments: map[int]models.Department{},
		categories:  map[int]models.DeviceCategory{},
		devices:     map[int]models.Device{},
		vendors:     map[int]models.Vendor{},
		statuses: map[models.StatusKind]map[int]models.Status{
			models.RepairStatus:  {},
			models.RequestStatus: {},
		},
		users:    map[int]userRow{},
		repairs:  map[int]models.Repair{},
		requests: map[int]models.Request{},
	}
}

func (d *data) clone() *data {
	c := &data{
		seq:         d.seq,
		departments: maps.Clone(d.departments),
		categories:  maps.Clone(d.categories),
		devices:     maps.Clone(d.devices),
		vendors:     maps.Clone(d.vendors),
		statuses: map[models.StatusKind]map[int]models.Status{
			models.RepairStatus:  maps.Clone(d.statuses[models.RepairStatus]),
			models.RequestStatus: maps.Clone(d.statuses[models.RequestStatus]),
		},
		users:    maps.Clone(d.users),
		repairs:  maps.Clone(d.repairs),
		requests: maps.Clone(d.requests),
	}
	return c
}

func (d *data) next() int {
	d.seq++
	return d.seq
}

type state struct {
	mu    sync.Mutex
	d     *data
	fails map[string]error
}

// Store implements repository.Store in memory.
type Store struct {
	st   *state
	inTx bool
}

func New() *Store {
	return &Store{st: &state{d: newData(), fails: map[string]error{}}}
}

// FailOn makes the named operation (for example "repairs.create") return
// err until cleared with a nil err.
func (s *Store) FailOn(op string, err error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	if err == nil {
		delete(s.st.fails, op)
		return
	}
	s.st.fails[op] = err
}

// lock acquires the state and reports any injected failure for op.
func (s *Store) lock(op string) (*data, func(), error) {
	s.st.mu.Lock()
	if err := s.st.fails[op]; err != nil {
		s.st.mu.Unlock()
		return nil, func() {}, err
	}
	return s.st.d, s.st.mu.Unlock, nil
}

func (s *Store) Refs() repository.Resolver { return resolver{s} }
func (s *Store) Devices() repository.DeviceRepository { return devices{s} }
func (s *Store) Repairs() repository.RepairRepository { return repairs{s} }
func (s *Store) Requests() repository.RequestRepository { return requests{s} }
func (s *Store) Vendors() repository.VendorRepository { return vendors{s} }
func (s *Store) Departments() repository.DepartmentRepository { return departments{s} }
func (s *Store) Categories() repository.CategoryRepository { return categories{s} }
func (s *Store) Statuses() repository.StatusRepository { return statuses{s} }
func (s *Store) Users() repository.UserRepository { return users{s} }
func (s *Store) Reports() repository.ReportRepository { return reports{s} }

func (s *Store) InTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.st.mu.Lock()
	snap := s.st.d.clone()
	s.st.mu.Unlock()

	if err := fn(&Store{st: s.st, inTx: true}); err != nil {
		s.st.mu.Lock()
		s.st.d = snap
		s.st.mu.Unlock()
		return err
	}
	return nil
}
