package works

import (
	"context"

	apiclient "github.com/umoja/portal/api"
	"github.com/umoja/portal/core"
	"github.com/umoja/portal/core/resource"
	"github.com/umoja/portal/core/upload"
)

func validateForm(record interface{}) error {
	return core.ValidateStruct(record)
}

func NewSiteEmployeeScreen(api *apiclient.Client) *resource.Screen {
	return resource.NewScreen(api, resource.Descriptor{
		Name:     "site employees",
		Path:     "/site/employees",
		Validate: validateForm,
	})
}

func NewAttendanceScreen(api *apiclient.Client) *resource.Screen {
	return resource.NewScreen(api, resource.Descriptor{
		Name:      "attendance records",
		Path:      "/site/attendance",
		StatsPath: "/site/attendance/stats",
		Validate:  validateForm,
	})
}

func NewSitePayrollScreen(api *apiclient.Client) *resource.Screen {
	return resource.NewScreen(api, resource.Descriptor{
		Name:      "payroll entries",
		Path:      "/site/payroll",
		StatsPath: "/site/payroll/stats",
		Validate:  validateForm,
	})
}

func NewDailyReportScreen(api *apiclient.Client) *resource.Screen {
	return resource.NewScreen(api, resource.Descriptor{
		Name:     "daily reports",
		Path:     "/site/reports",
		Validate: validateForm,
	})
}

func NewSiteScreen(api *apiclient.Client) *resource.Screen {
	return resource.NewScreen(api, resource.Descriptor{
		Name:     "sites",
		Path:     "/site/sites",
		Validate: validateForm,
	})
}

func NewSiteManagerScreen(api *apiclient.Client) *resource.Screen {
	return resource.NewScreen(api, resource.Descriptor{
		Name:     "site managers",
		Path:     "/site/managers",
		Validate: validateForm,
	})
}

// FinalizeAttendance closes a day's attendance with the staged group photo
// as proof. Each entry is validated locally before anything goes out.
func FinalizeAttendance(ctx context.Context, api *apiclient.Client, flow *upload.Flow, date string, entries []AttendanceEntry) error {
	for _, entry := range entries {
		if err := core.ValidateStruct(entry); err != nil {
			return err
		}
	}
	return flow.Submit(ctx, api, "/site/attendance/finalize", date, entries)
}
