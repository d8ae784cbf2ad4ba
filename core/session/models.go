package session

// Roles recognized by the portals. The decoded role is the sole
// authorization signal held client-side; the server re-checks on every call.
const (
	// School portal
	RoleAdmin       = "admin"
	RoleHeadTeacher = "head_teacher"
	RoleAccountant  = "accountant"
	RoleCashier     = "cashier"

	// Works portal
	RoleSiteManager = "site_manager"
)

var (
	AllRoles = []string{RoleAdmin, RoleHeadTeacher, RoleAccountant, RoleCashier, RoleSiteManager}

	Roles = []Role{
		{Name: "Administrator", Value: RoleAdmin},
		{Name: "Head Teacher", Value: RoleHeadTeacher},
		{Name: "Accountant", Value: RoleAccountant},
		{Name: "Cashier", Value: RoleCashier},
		{Name: "Site Manager", Value: RoleSiteManager},
	}
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// KnownRole reports whether the role claim belongs to the known set.
// Unknown (future) roles are denied by default, never given a base menu.
func KnownRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User is the authenticated identity as returned by the login endpoint.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// State tracks the session lifecycle. There is no refreshing state: the
// client holds a single token for its entire lifetime.
type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Session is the in-memory mirror of the persisted token + user pair.
type Session struct {
	Token string
	User  User
}
