package models

// RefKind names a lookup table that tickets reference by display name.
type RefKind int

const (
	RefRepairStatus RefKind = iota
	RefRequestStatus
	RefCategory
	RefVendor
	RefDepartment
)

func (k RefKind) String() string {
	switch k {
	case RefRepairStatus:
		return "repair status"
	case RefRequestStatus:
		return "request status"
	case RefCategory:
		return "device category"
	case RefVendor:
		return "vendor"
	case RefDepartment:
		return "department"
	default:
		return "unknown"
	}
}

type Department struct {
	ID   int    `json:"DepartmentId"`
	Name string `json:"DepartmentName"`
}

type DeviceCategory struct {
	ID          int     `json:"DeviceCategoryId"`
	Name        string  `json:"DeviceCategoryName"`
	Description *string `json:"DeviceDescription"`
}

type Device struct {
	ID         int    `json:"DeviceId"`
	Name       string `json:"DeviceName"`
	CategoryID int    `json:"CategoryId"`
}

type Vendor struct {
	ID   int    `json:"VendorId"`
	Name string `json:"VendorName"`
}

// StatusKind selects the repair or request status taxonomy.
type StatusKind int

const (
	RepairStatus StatusKind = iota
	RequestStatus
)

func (k StatusKind) String() string {
	if k == RequestStatus {
		return "request status"
	}
	return "repair status"
}

// RefKind is the resolver kind for names of this taxonomy.
func (k StatusKind) RefKind() RefKind {
	if k == RequestStatus {
		return RefRequestStatus
	}
	return RefRepairStatus
}

type Status struct {
	ID          int    `json:"statusId"`
	Name        string `json:"statusName"`
	Color       string `json:"statusColor"`
	Description string `json:"statusDescription"`
}

// StatusPatch is a partial update of a status row.
type StatusPatch struct {
	Name        Patch[string] `json:"statusName"`
	Color       Patch[string] `json:"statusColor"`
	Description Patch[string] `json:"statusDescription"`
}

func (p StatusPatch) Empty() bool {
	return !p.Name.Set && !p.Color.Set && !p.Description.Set
}

func (p StatusPatch) Assignments(nameCol string) []Assignment {
	var out []Assignment
	if p.Name.Set {
		out = append(out, Assignment{nameCol, p.Name.Value})
	}
	if p.Color.Set {
		out = append(out, Assignment{"color", p.Color.Value})
	}
	if p.Description.Set {
		out = append(out, Assignment{"status_description", p.Description.Value})
	}
	return out
}

// CategoryPatch is a partial update of a device category.
type CategoryPatch struct {
	Name        Patch[string] `json:"DeviceCatName"`
	Description Patch[string] `json:"DeviceDescription"`
}

func (p CategoryPatch) Empty() bool { return !p.Name.Set && !p.Description.Set }

func (p CategoryPatch) Assignments() []Assignment {
	var out []Assignment
	if p.Name.Set {
		out = append(out, Assignment{"device_cat_name", p.Name.Value})
	}
	if p.Description.Set {
		out = append(out, Assignment{"device_description", p.Description.Arg()})
	}
	return out
}

// NewCategory is the create body of POST /api/device.
type NewCategory struct {
	Name        string  `json:"DeviceCatName" validate:"required"`
	Description *string `json:"DeviceDescription"`
}

// NewStatus is the create body of both status endpoints.
type NewStatus struct {
	Name        string `json:"statusName" validate:"required"`
	Color       string `json:"statusColor" validate:"required,hexcolor7"`
	Description string `json:"statusDescription" validate:"required"`
}
