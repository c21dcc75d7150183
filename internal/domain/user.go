package domain

import "time"

// User is the domain model for platform accounts across all roles.
// Role-specific fields are optional and only meaningful for the matching
// role: license/specialization for doctors, pharmacy name for pharmacies,
// vehicle number for delivery drivers.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Username     string
	Phone        string
	Location     string
	RoleID       int
	Active       bool

	LicenseNumber  *string
	Specialization *string
	PharmacyName   *string
	VehicleNumber  *string

	// Role is populated only by lookups that join the roles table.
	Role *Role

	CreatedAt time.Time
	UpdatedAt *time.Time
}
