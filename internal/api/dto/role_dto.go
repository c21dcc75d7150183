package dto

import (
	"time"

	"github.com/spec-kit/healthhive/internal/domain"
)

// RoleResponse is the role shape returned by GET /roles.
type RoleResponse struct {
	ID        int        `json:"id"`
	RoleName  string     `json:"role_name"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NewRoleResponses maps domain roles onto the response shape.
func NewRoleResponses(roles []domain.Role) []RoleResponse {
	out := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, RoleResponse{
			ID:        role.ID,
			RoleName:  role.Name,
			IsActive:  role.Active,
			CreatedAt: role.CreatedAt,
			UpdatedAt: role.UpdatedAt,
		})
	}
	return out
}
