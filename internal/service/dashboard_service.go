package service

import (
	"fmt"

	"github.com/spec-kit/healthhive/internal/domain"
	apperrors "github.com/spec-kit/healthhive/pkg/util/errorutil"
)

// DashboardContent is the role-specific payload returned by GET /dashboard.
type DashboardContent struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Role ids in user records are free-form integers, so the dispatch table is
// the load-bearing guard against unknown roles. Adding a role is a table
// edit, not a control-flow change.
var roleDashboards = map[int]func() DashboardContent{
	domain.RoleAdmin:    adminDashboard,
	domain.RoleDoctor:   doctorDashboard,
	domain.RolePatient:  patientDashboard,
	domain.RoleDelivery: deliveryDashboard,
	domain.RolePharmacy: pharmacyDashboard,
}

func adminDashboard() DashboardContent {
	return DashboardContent{Status: 200, Message: "Welcome to the admin dashboard"}
}

func doctorDashboard() DashboardContent {
	return DashboardContent{Status: 200, Message: "Welcome to the doctor dashboard"}
}

func patientDashboard() DashboardContent {
	return DashboardContent{Status: 200, Message: "Welcome to the patient dashboard"}
}

func deliveryDashboard() DashboardContent {
	return DashboardContent{Status: 200, Message: "Welcome to the delivery dashboard"}
}

func pharmacyDashboard() DashboardContent {
	return DashboardContent{Status: 200, Message: "Welcome to the pharmacy dashboard"}
}

// DashboardService maps a resolved role to its dashboard content.
type DashboardService struct{}

// NewDashboardService builds the service.
func NewDashboardService() *DashboardService {
	return &DashboardService{}
}

// ForSession returns the dashboard for the session's role, or Forbidden when
// no dashboard is registered for it.
func (s *DashboardService) ForSession(session *domain.Session) (DashboardContent, error) {
	if session == nil {
		return DashboardContent{}, apperrors.NewUnauthorized("missing session")
	}
	dashboard, ok := roleDashboards[session.RoleID]
	if !ok {
		return DashboardContent{}, apperrors.NewForbidden(fmt.Sprintf("no dashboard available for role %d", session.RoleID))
	}
	return dashboard(), nil
}
