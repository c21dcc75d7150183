package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/spec-kit/healthhive/internal/domain"
	apperrors "github.com/spec-kit/healthhive/pkg/util/errorutil"
)

func TestDashboardService_DispatchByRole(t *testing.T) {
	svc := NewDashboardService()

	expected := map[int]string{
		domain.RoleAdmin:    "admin",
		domain.RoleDoctor:   "doctor",
		domain.RolePatient:  "patient",
		domain.RoleDelivery: "delivery",
		domain.RolePharmacy: "pharmacy",
	}

	for roleID, want := range expected {
		content, err := svc.ForSession(&domain.Session{UserID: 1, RoleID: roleID})
		if err != nil {
			t.Fatalf("role %d: unexpected error %v", roleID, err)
		}
		if content.Status != 200 {
			t.Fatalf("role %d: unexpected status %d", roleID, content.Status)
		}
		if !strings.Contains(content.Message, want) {
			t.Fatalf("role %d: message %q does not mention %q", roleID, content.Message, want)
		}
	}
}

func TestDashboardService_UnknownRoleForbidden(t *testing.T) {
	svc := NewDashboardService()

	_, err := svc.ForSession(&domain.Session{UserID: 1, RoleID: 99})
	if err == nil {
		t.Fatalf("expected forbidden for unknown role")
	}
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 403 {
		t.Fatalf("expected 403 DomainError, got %v", err)
	}
}

func TestDashboardService_NilSessionUnauthorized(t *testing.T) {
	svc := NewDashboardService()

	_, err := svc.ForSession(nil)
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 401 {
		t.Fatalf("expected 401 DomainError, got %v", err)
	}
}
