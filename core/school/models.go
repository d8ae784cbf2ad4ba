// Package school binds the school administration/finance screens to their
// REST resources: students, payments, income, expenses, payroll, budgets,
// terms, employees and advance requests.
package school

type (
	Student struct {
		FirstName    string `json:"firstName" validate:"required"`
		LastName     string `json:"lastName" validate:"required"`
		ClassLevel   string `json:"classLevel" validate:"required"`
		Gender       string `json:"gender" validate:"omitempty,oneof=male female"`
		GuardianName string `json:"guardianName"`
		Phone        string `json:"phone" validate:"omitempty,phone"`
	}

	Payment struct {
		StudentID string  `json:"studentId" validate:"required"`
		Amount    float64 `json:"amount" validate:"required,gt=0"`
		Method    string  `json:"method" validate:"required,oneof=cash bank mobile_money"`
		TermID    string  `json:"termId" validate:"required"`
		Reference string  `json:"reference"`
		Notes     string  `json:"notes"`
	}

	Income struct {
		Source      string  `json:"source" validate:"required"`
		Amount      float64 `json:"amount" validate:"required,gt=0"`
		Date        string  `json:"date" validate:"required"`
		Description string  `json:"description"`
	}

	Expense struct {
		Category    string  `json:"category" validate:"required"`
		Amount      float64 `json:"amount" validate:"required,gt=0"`
		Date        string  `json:"date" validate:"required"`
		Description string  `json:"description"`
	}

	PayrollEntry struct {
		EmployeeID string  `json:"employeeId" validate:"required"`
		Month      string  `json:"month" validate:"required"`
		BaseSalary float64 `json:"baseSalary" validate:"required,gt=0"`
		Allowances float64 `json:"allowances" validate:"gte=0"`
		Deductions float64 `json:"deductions" validate:"gte=0"`
	}

	Budget struct {
		Category string  `json:"category" validate:"required"`
		TermID   string  `json:"termId" validate:"required"`
		Amount   float64 `json:"amount" validate:"required,gt=0"`
	}

	Term struct {
		Name      string `json:"name" validate:"required"`
		StartDate string `json:"startDate" validate:"required"`
		EndDate   string `json:"endDate" validate:"required"`
		Active    bool   `json:"active"`
	}

	Employee struct {
		Name     string  `json:"name" validate:"required"`
		Phone    string  `json:"phone" validate:"required,phone"`
		Position string  `json:"position" validate:"required"`
		Salary   float64 `json:"salary" validate:"required,gt=0"`
	}

	Advance struct {
		EmployeeID string  `json:"employeeId" validate:"required"`
		Amount     float64 `json:"amount" validate:"required,gt=0"`
		Reason     string  `json:"reason" validate:"required"`
	}

	// FinanceOverview is the shape of the statistics endpoints' payload.
	FinanceOverview struct {
		Overview struct {
			Total   float64 `json:"total"`
			Count   int     `json:"count"`
			ByMonth []struct {
				Month string  `json:"month"`
				Total float64 `json:"total"`
			} `json:"byMonth"`
		} `json:"overview"`
	}
)
