package school

import (
	apiclient "github.com/umoja/portal/api"
	"github.com/umoja/portal/core"
	"github.com/umoja/portal/core/resource"
)

func validateForm(record interface{}) error {
	return core.ValidateStruct(record)
}

func NewStudentScreen(api *apiclient.Client) *resource.Screen {
	return resource.NewScreen(api, resource.Descriptor{
		Name:      "students",
		Path:      "/students",
		StatsPath: "/students/statistics",
		Validate:  validateForm,
	})
}

func NewPaymentScreen(api *apiclient.Client) *resource.Screen {
	return resource.NewScreen(api, resource.Descriptor{
		Name:      "payments",
		Path:      "/payments",
		StatsPath: "/payments/statistics",
		Validate:  validateForm,
	})
}

func NewIncomeScreen(api *apiclient.Client) *resource.Screen {
	return resource.NewScreen(api, resource.Descriptor{
		Name:      "income records",
		Path:      "/income",
		StatsPath: "/income/statistics",
		Validate:  validateForm,
	})
}

func NewExpenseScreen(api *apiclient.Client) *resource.Screen {
	return resource.NewScreen(api, resource.Descriptor{
		Name:      "expenses",
		Path:      "/expenses",
		StatsPath: "/expenses/statistics",
		Validate:  validateForm,
	})
}

func NewPayrollScreen(api *apiclient.Client) *resource.Screen {
	return resource.NewScreen(api, resource.Descriptor{
		Name:      "payroll entries",
		Path:      "/payroll",
		StatsPath: "/payroll/statistics",
		Validate:  validateForm,
	})
}

func NewBudgetScreen(api *apiclient.Client) *resource.Screen {
	return resource.NewScreen(api, resource.Descriptor{
		Name:     "budget lines",
		Path:     "/budgets",
		Validate: validateForm,
	})
}

func NewTermScreen(api *apiclient.Client) *resource.Screen {
	return resource.NewScreen(api, resource.Descriptor{
		Name:     "terms",
		Path:     "/terms",
		Validate: validateForm,
	})
}

func NewEmployeeScreen(api *apiclient.Client) *resource.Screen {
	return resource.NewScreen(api, resource.Descriptor{
		Name:     "employees",
		Path:     "/employees",
		Validate: validateForm,
	})
}

func NewAdvanceScreen(api *apiclient.Client) *resource.Screen {
	return resource.NewScreen(api, resource.Descriptor{
		Name:     "advance requests",
		Path:     "/advances",
		Validate: validateForm,
	})
}
