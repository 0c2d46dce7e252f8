package models

// Staff roles.
const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

// IsValidUserRole checks if the provided role string is a known staff role.
func IsValidUserRole(role string) bool {
	return role == RoleOwner || role == RoleStaff
}

// User represents a staff account.
type User struct {
	ID           int64   `json:"id" db:"id_user"`
	Username     string  `json:"name" db:"username"`
	Email        *string `json:"email" db:"email"`
	PasswordHash string  `json:"-" db:"password_hash"`
	Role         string  `json:"role" db:"role"`
}
