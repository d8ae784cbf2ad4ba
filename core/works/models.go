// Package works binds the construction-workforce screens to their REST
// resources: site employees, attendance with photo proof, payroll, daily
// reports, sites and site-manager registration.
package works

type (
	SiteEmployee struct {
		Name   string  `json:"name" validate:"required"`
		Phone  string  `json:"phone" validate:"required,phone"`
		Trade  string  `json:"trade" validate:"required"`
		SiteID string  `json:"siteId" validate:"required"`
		Rate   float64 `json:"dailyRate" validate:"required,gt=0"`
	}

	AttendanceEntry struct {
		EmployeeID string `json:"employeeId" validate:"required"`
		Status     string `json:"status" validate:"required,oneof=present absent half_day"`
	}

	Site struct {
		Name     string `json:"name" validate:"required"`
		Location string `json:"location" validate:"required"`
	}

	SiteManager struct {
		Name     string `json:"name" validate:"required"`
		Phone    string `json:"phone" validate:"required,phone"`
		SiteID   string `json:"siteId" validate:"required"`
		Password string `json:"password" validate:"required,min=6"`
	}

	DailyReport struct {
		SiteID   string `json:"siteId" validate:"required"`
		Date     string `json:"date" validate:"required"`
		Summary  string `json:"summary" validate:"required"`
		Weather  string `json:"weather"`
		Manpower int    `json:"manpower" validate:"gte=0"`
	}

	// AttendanceOverview is the statistics payload for attendance screens.
	AttendanceOverview struct {
		Overall struct {
			Present  int `json:"present"`
			Absent   int `json:"absent"`
			HalfDays int `json:"halfDays"`
		} `json:"overall"`
	}
)
