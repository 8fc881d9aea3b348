package models

import "time"

// Repair is a repair ticket joined with its lookup names.
type Repair struct {
	ID               int
	DeviceID         int
	DeviceName       string
	Category         string
	IssueDescription string
	IssueDate        time.Time
	ReturnDate       *time.Time
	Cost             *float64
	VendorID         int
	Vendor           string
	StatusID         int
	Status           string
	StatusColor      string
}

// RepairView is the wire shape of a repair ticket.
type RepairView struct {
	RepairID    string   `json:"RepairId"`
	DeviceName  string   `json:"DeviceName"`
	Category    string   `json:"Category"`
	Issue       string   `json:"Issue"`
	IssueDate   *string  `json:"IssueDate"`
	ReturnDate  *string  `json:"ReturnDate"`
	Cost        *float64 `json:"Cost"`
	Status      string   `json:"Status"`
	StatusColor string   `json:"StatusColor"`
	Vendor      string   `json:"Vendor"`
}

func (r Repair) View() RepairView {
	return RepairView{
		RepairID:    DisplayID(PrefixRepair, r.ID),
		DeviceName:  r.DeviceName,
		Category:    r.Category,
		Issue:       r.IssueDescription,
		IssueDate:   FormatDate(&r.IssueDate),
		ReturnDate:  FormatDate(r.ReturnDate),
		Cost:        r.Cost,
		Status:      r.Status,
		StatusColor: r.StatusColor,
		Vendor:      r.Vendor,
	}
}

// NewRepair is the create body of POST /api/repair.
type NewRepair struct {
	DeviceCategory   string   `json:"DeviceCategory" validate:"required"`
	DeviceName       string   `json:"DeviceName" validate:"required"`
	IssueDescription string   `json:"IssueDescription" validate:"required"`
	IssueDate        string   `json:"IssueDate" validate:"required"`
	ReturnDate       string   `json:"ReturnDate"`
	Cost             Amount   `json:"Cost"`
	VendorName       string   `json:"VendorName" validate:"required"`
	RepairStatus     string   `json:"RepairStatus"`
}

// RepairPatch is the body of PUT /api/repair/{id}.
type RepairPatch struct {
	IssueDescription Patch[string]  `json:"IssueDescription"`
	IssueDate        Patch[string]  `json:"IssueDate"`
	ReturnDate       Patch[string]  `json:"ReturnDate"`
	Cost             Patch[float64] `json:"Cost"`
	RepairStatus     Patch[string]  `json:"RepairStatus"`
	VendorName       Patch[string]  `json:"VendorName"`
}

func (p RepairPatch) Empty() bool {
	return !p.IssueDescription.Set && !p.IssueDate.Set && !p.ReturnDate.Set &&
		!p.Cost.Set && !p.RepairStatus.Set && !p.VendorName.Set
}

// RepairChanges is a RepairPatch after validation and name resolution.
type RepairChanges struct {
	IssueDescription *string
	IssueDate        *time.Time
	ReturnDate       Patch[time.Time]
	Cost             Patch[float64]
	StatusID         *int
	VendorID         *int
}

// Assignments lists the repair columns touched by c, in a fixed order.
func (c RepairChanges) Assignments() []Assignment {
	var out []Assignment
	if c.IssueDescription != nil {
		out = append(out, Assignment{"issue_description", *c.IssueDescription})
	}
	if c.IssueDate != nil {
		out = append(out, Assignment{"issue_date", *c.IssueDate})
	}
	if c.ReturnDate.Set {
		out = append(out, Assignment{"return_date", c.ReturnDate.Arg()})
	}
	if c.Cost.Set {
		out = append(out, Assignment{"cost", c.Cost.Arg()})
	}
	if c.StatusID != nil {
		out = append(out, Assignment{"status_id", *c.StatusID})
	}
	if c.VendorID != nil {
		out = append(out, Assignment{"vendor_id", *c.VendorID})
	}
	return out
}
