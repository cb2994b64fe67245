// Package authorization defines the role ladder and the capability check
// every use case calls before touching data.
package authorization

// UserRole is ordered: end_user < agent < admin. A higher role holds every
// capability of the roles below it.
type UserRole string

const (
	RoleEndUser UserRole = "end_user"
	RoleAgent   UserRole = "agent"
	RoleAdmin   UserRole = "admin"
)

var roleRank = map[UserRole]int{
	RoleEndUser: 1,
	RoleAgent:   2,
	RoleAdmin:   3,
}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// IsStaff reports whether the role is agent or admin.
func (r UserRole) IsStaff() bool {
	return r.AtLeast(RoleAgent)
}

// AtLeast reports whether r ranks at or above min. Unknown roles rank below everything.
func (r UserRole) AtLeast(min UserRole) bool {
	return roleRank[r] >= roleRank[min] && roleRank[r] > 0
}

// ParseUserRole returns the role named by s, or false when s is unknown.
func ParseUserRole(s string) (UserRole, bool) {
	role := UserRole(s)
	return role, role.IsValid()
}

// AllRoles lists roles from lowest to highest.
func AllRoles() []UserRole {
	return []UserRole{RoleEndUser, RoleAgent, RoleAdmin}
}
