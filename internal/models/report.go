package models

// CategoryTally is a raw per-category ticket count.
type CategoryTally struct {
	Category  string
	Total     int
	Completed int
}

type CategoryProgress struct {
	Category          string `json:"category"`
	Total             int    `json:"total"`
	Completed         int    `json:"completed"`
	Pending           int    `json:"pending"`
	CompletionPercent string `json:"completionpercent"`
}

// RepairTotals is the raw input of the repair summary.
type RepairTotals struct {
	Total     int
	Completed int
	ThisMonth int
	LastMonth int
	AvgDays   *float64
}

type RepairSummary struct {
	TotalRepairs  int    `json:"totalrepairs"`
	RepairTime    string `json:"repairtime"`
	Completed     int    `json:"completed"`
	PercentChange string `json:"percentchange"`
}

type RequestTotals struct {
	Total     int
	ThisMonth int
	LastMonth int
}

type RequestSummary struct {
	TotalRequests int    `json:"totalrequests"`
	PercentChange string `json:"percentchange"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

type RequestMetric struct {
	Received int `json:"received"`
	Pending  int `json:"pending"`
}

type RepairMetric struct {
	UnderRepair int     `json:"underrepair"`
	Cost        float64 `json:"cost"`
}

// MonthTally is a raw per-month count; Month is 1..12.
type MonthTally struct {
	Month     int
	Total     int
	Completed int
}

type MonthlyRepairs struct {
	Month     string `json:"month"`
	Completed int    `json:"completed"`
	Repairs   int    `json:"repairs"`
}

type MonthlyRequests struct {
	Month     string `json:"month"`
	Completed int    `json:"completed"`
	Requests  int    `json:"requests"`
}

// StatusSets names the statuses that count as done or cancelled in reports.
type StatusSets struct {
	RepairDone  []string
	RequestDone []string
	Cancelled   []string
}
