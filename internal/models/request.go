package models

import "time"

// Request is a device request ticket joined with its lookup names.
type Request struct {
	ID           int
	DeviceID     int
	DeviceName   string
	Category     string
	Reason       string
	RequestDate  time.Time
	ReceiveDate  *time.Time
	UserID       int
	RequestedBy  string
	DepartmentID int
	Department   string
	StatusID     int
	Status       string
	StatusColor  string
}

type RequestView struct {
	RequestID   string  `json:"RequestId"`
	DeviceName  string  `json:"DeviceName"`
	Category    string  `json:"Category"`
	RequestDate *string `json:"RequestDate"`
	ReceiveDate *string `json:"ReceiveDate"`
	Reason      string  `json:"Reason"`
	Status      string  `json:"Status"`
	StatusColor string  `json:"StatusColor"`
	RequestedBy string  `json:"RequestedBy"`
	Department  string  `json:"Department"`
}

func (r Request) View() RequestView {
	return RequestView{
		RequestID:   DisplayID(PrefixRequest, r.ID),
		DeviceName:  r.DeviceName,
		Category:    r.Category,
		RequestDate: FormatDate(&r.RequestDate),
		ReceiveDate: FormatDate(r.ReceiveDate),
		Reason:      r.Reason,
		Status:      r.Status,
		StatusColor: r.StatusColor,
		RequestedBy: r.RequestedBy,
		Department:  r.Department,
	}
}

// NewRequest is the create body of POST /api/request. The requester
// comes from the bearer token, not the body.
type NewRequest struct {
	DeviceCategory string `json:"DeviceCategory" validate:"required"`
	DeviceName     string `json:"DeviceName" validate:"required"`
	Reason         string `json:"Reason" validate:"required"`
	DepartmentName string `json:"DepartmentName"`
	RequestStatus  string `json:"RequestStatus"`
}

// RequestPatch is the body of PUT /api/request/{id}.
type RequestPatch struct {
	Reason         Patch[string] `json:"Reason"`
	RequestStatus  Patch[string] `json:"RequestStatus"`
	DepartmentName Patch[string] `json:"DepartmentName"`
	ReceiveDate    Patch[string] `json:"ReceiveDate"`
}

func (p RequestPatch) Empty() bool {
	return !p.Reason.Set && !p.RequestStatus.Set && !p.DepartmentName.Set && !p.ReceiveDate.Set
}

type RequestChanges struct {
	Reason       *string
	StatusID     *int
	DepartmentID *int
	ReceiveDate  Patch[time.Time]
}

func (c RequestChanges) Assignments() []Assignment {
	var out []Assignment
	if c.Reason != nil {
		out = append(out, Assignment{"reason", *c.Reason})
	}
	if c.StatusID != nil {
		out = append(out, Assignment{"status_id", *c.StatusID})
	}
	if c.DepartmentID != nil {
		out = append(out, Assignment{"department_id", *c.DepartmentID})
	}
	if c.ReceiveDate.Set {
		out = append(out, Assignment{"receive_date", c.ReceiveDate.Arg()})
	}
	return out
}
