package domain

import "time"

// UserRole defines the role a user holds in the warehouse application.
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleManager  UserRole = "MANAGER"
	RoleQC       UserRole = "QC"
	RoleOperator UserRole = "OPERATOR"
)

// User represents a warehouse application user.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// HasQCCapability reports whether the user may approve or reject submitted documents.
func (u User) HasQCCapability() bool {
	return u.Role == RoleQC || u.Role == RoleAdmin || u.Role == RoleManager
}

// HasElevatedRole reports whether the user may act on documents owned by others.
func (u User) HasElevatedRole() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}
