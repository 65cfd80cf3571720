package domain

// UserRole distinguishes ordinary customers from the privileged system
// principal allowed to issue funds and run reconciliation.
type UserRole string

const (
	RoleUser   UserRole = "USER"
	RoleSystem UserRole = "SYSTEM"
)

// User is an authenticated owner of accounts.
type User struct {
	UserID       string   `json:"userID"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AuditFields
}

// Principal is the identity context resolved by the auth layer and consumed
// by the core. It is never constructed by the core itself.
type Principal struct {
	UserID string
	Role   UserRole
}

// IsSystem reports whether the principal may use privileged operations.
func (p Principal) IsSystem() bool {
	return p.Role == RoleSystem
}
