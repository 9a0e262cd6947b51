package blog

// Role is a user's role. Roles form a strict hierarchy.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleAuthor Role = "AUTHOR"
)

// DefaultRole is assumed for a user whose profile carries no role.
const DefaultRole = RoleAuthor

var roleLevels = map[Role]int{
	RoleAdmin:  3,
	RoleEditor: 2,
	RoleAuthor: 1,
}

// Level returns the numeric rank of r. Unknown roles rank 0.
func (r Role) Level() int {
	return roleLevels[r]
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// OrDefault returns r, or DefaultRole when r is empty. A non-empty unknown
// role is returned as is and still ranks 0.
func (r Role) OrDefault() Role {
	if r == "" {
		return DefaultRole
	}
	return r
}

// AtLeast reports whether r ranks at or above required.
func (r Role) AtLeast(required Role) bool {
	return r.Level() >= required.Level()
}
