package dto

import "github.com/spec-kit/healthhive/internal/domain"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Role     int    `json:"role"`
	Location string `json:"location"`

	// Role-specific optional fields.
	LicenseNumber  *string `json:"license_number,omitempty"`
	Specialization *string `json:"specialization,omitempty"`
	PharmacyName   *string `json:"pharmacy_name,omitempty"`
	VehicleNumber  *string `json:"vehicle_number,omitempty"`
}

// LoginRequest payload; identifier may be an email, username or phone.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// UserSummary is the user shape returned by auth endpoints.
type UserSummary struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Role     int    `json:"role"`
	IsActive bool   `json:"is_active"`
}

// NewUserSummary maps a domain user onto the response shape.
func NewUserSummary(user *domain.User) UserSummary {
	return UserSummary{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
		Phone:    user.Phone,
		Role:     user.RoleID,
		IsActive: user.Active,
	}
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	User    UserSummary       `json:"user"`
	Tokens  *domain.TokenPair `json:"tokens"`
}
