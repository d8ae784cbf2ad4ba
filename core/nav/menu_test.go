package nav

import (
	"testing"

	"github.com/umoja/portal/core/session"
)

func TestResolveLandingRoute(t *testing.T) {
	tests := []struct {
		name string
		role string
		want string
	}{
		{"admin", session.RoleAdmin, "/dashboard"},
		{"head teacher", session.RoleHeadTeacher, "/students"},
		{"accountant", session.RoleAccountant, "/income"},
		{"cashier", session.RoleCashier, "/payments"},
		{"site manager", session.RoleSiteManager, "/site/attendance"},
		{"unknown role", "intern", RouteAccessDenied},
		{"empty role", "", RouteAccessDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveLandingRoute(tt.role); got != tt.want {
				t.Errorf("ResolveLandingRoute(%q) = %q; want %q", tt.role, got, tt.want)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name  string
		route string
		role  string
		want  bool
	}{
		{"admin can open employees", "/employee-manager", session.RoleAdmin, true},
		{"cashier cannot open employees even directly", "/employee-manager", session.RoleCashier, false},
		{"cashier can open payments", "/payments", session.RoleCashier, true},
		{"site manager stays in works portal", "/students", session.RoleSiteManager, false},
		{"school roles stay out of works portal", "/site/attendance", session.RoleAccountant, false},
		{"no role claim denies", "/payments", "", false},
		{"unknown role denies", "/payments", "future_role", false},
		{"login route is not a menu route", RouteLogin, session.RoleAdmin, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Authorize(tt.route, tt.role); got != tt.want {
				t.Errorf("Authorize(%q, %q) = %v; want %v", tt.route, tt.role, got, tt.want)
			}
		})
	}
}

func TestMenuFor(t *testing.T) {
	// every menu entry must authorize for its own role, and the landing
	// route is the first entry
	for _, role := range session.AllRoles {
		entries := MenuFor(role)
		if len(entries) == 0 {
			t.Fatalf("MenuFor(%q) is empty", role)
		}
		if entries[0].Route != ResolveLandingRoute(role) {
			t.Errorf("landing route %q is not the first menu entry for %q", ResolveLandingRoute(role), role)
		}
		for _, entry := range entries {
			if !Authorize(entry.Route, role) {
				t.Errorf("menu and guard disagree on %q for %q", entry.Route, role)
			}
		}
	}
	if MenuFor("unknown") != nil {
		t.Error("unknown roles must get no menu")
	}
}
