// Package nav maps an authenticated role to its permitted routes. One
// declarative table drives both the rendered menu and the route guard, so
// the two can never disagree.
package nav

import "github.com/umoja/portal/core/session"

type MenuEntry struct {
	Route string `json:"route"`
	Label string `json:"label"`
}

// Well-known routes outside any role menu.
const (
	RouteLogin        = "/login"
	RouteAccessDenied = "/access-denied"
)

// menus is ordered: the first entry is the role's landing route.
var menus = map[string][]MenuEntry{
	session.RoleAdmin: {
		{Route: "/dashboard", Label: "Dashboard"},
		{Route: "/students", Label: "Students"},
		{Route: "/payments", Label: "Payments"},
		{Route: "/income", Label: "Income"},
		{Route: "/expenses", Label: "Expenses"},
		{Route: "/payroll", Label: "Payroll"},
		{Route: "/budgets", Label: "Budgets"},
		{Route: "/terms", Label: "Term Settings"},
		{Route: "/employee-manager", Label: "Employees"},
		{Route: "/advances", Label: "Advance Requests"},
	},
	session.RoleHeadTeacher: {
		{Route: "/students", Label: "Students"},
		{Route: "/terms", Label: "Term Settings"},
		{Route: "/advances", Label: "Advance Requests"},
	},
	session.RoleAccountant: {
		{Route: "/income", Label: "Income"},
		{Route: "/expenses", Label: "Expenses"},
		{Route: "/payroll", Label: "Payroll"},
		{Route: "/budgets", Label: "Budgets"},
		{Route: "/payments", Label: "Payments"},
	},
	session.RoleCashier: {
		{Route: "/payments", Label: "Payments"},
		{Route: "/income", Label: "Income"},
	},
	session.RoleSiteManager: {
		{Route: "/site/attendance", Label: "Attendance"},
		{Route: "/site/employees", Label: "Employees"},
		{Route: "/site/payroll", Label: "Payroll"},
		{Route: "/site/reports", Label: "Daily Reports"},
		{Route: "/site/sites", Label: "Sites"},
		{Route: "/site/managers", Label: "Site Managers"},
	},
}

// MenuFor returns the ordered menu for a role; nil for unknown roles.
func MenuFor(role string) []MenuEntry {
	entries, ok := menus[role]
	if !ok {
		return nil
	}
	out := make([]MenuEntry, len(entries))
	copy(out, entries)
	return out
}

// ResolveLandingRoute returns the screen a role lands on right after login.
// A missing or unknown role resolves to the access-denied view, never a
// blank screen.
func ResolveLandingRoute(role string) string {
	entries, ok := menus[role]
	if !ok || len(entries) == 0 {
		return RouteAccessDenied
	}
	return entries[0].Route
}

// Authorize checks route membership in the role's menu. It guards direct
// navigation too: a route merely hidden from the menu is still denied.
// No role claim at all means deny, never default-allow.
func Authorize(route, role string) bool {
	for _, entry := range menus[role] {
		if entry.Route == route {
			return true
		}
	}
	return false
}
