package domain

import "time"

// Well-known role ids seeded at first startup.
const (
	RoleAdmin    = 1
	RoleDoctor   = 2
	RolePatient  = 3
	RoleDelivery = 4
	RolePharmacy = 5
)

// Role is static reference data; users point at it via RoleID.
type Role struct {
	ID        int
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
