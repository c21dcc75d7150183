package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/healthhive/internal/auth"
	"github.com/spec-kit/healthhive/internal/config"
	"github.com/spec-kit/healthhive/internal/domain"
	"github.com/spec-kit/healthhive/internal/events"
	"github.com/spec-kit/healthhive/internal/repository"
	apperrors "github.com/spec-kit/healthhive/pkg/util/errorutil"
)

// AuthService coordinates the registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	RoleRepo   repository.RoleRepository
	TokenMgr   *auth.TokenManager
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		roles:      deps.RoleRepo,
		tokenMgr:   deps.TokenMgr,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterInput carries the registration payload after transport decoding.
type RegisterInput struct {
	Email    string
	Password string
	Username string
	Phone    string
	Location string
	RoleID   int

	LicenseNumber  *string
	Specialization *string
	PharmacyName   *string
	VehicleNumber  *string
}

// Register creates a new account: uniqueness checks, role validation,
// password hashing, insert, then a fresh token pair.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, *domain.TokenPair, error) {
	if err := s.checkUnique(ctx, in); err != nil {
		return nil, nil, err
	}

	role, err := s.roles.GetByID(ctx, in.RoleID)
	if err == pgx.ErrNoRows {
		return nil, nil, apperrors.NewValidationError("unknown role", map[string]any{"role": in.RoleID})
	} else if err != nil {
		return nil, nil, err
	}
	if !role.Active {
		return nil, nil, apperrors.NewValidationError("role is not active", map[string]any{"role": in.RoleID})
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Email:          in.Email,
		PasswordHash:   hash,
		Username:       in.Username,
		Phone:          in.Phone,
		Location:       in.Location,
		RoleID:         in.RoleID,
		Active:         true,
		LicenseNumber:  in.LicenseNumber,
		Specialization: in.Specialization,
		PharmacyName:   in.PharmacyName,
		VehicleNumber:  in.VehicleNumber,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	tokens, err := s.tokenMgr.GeneratePair(user.Email, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		Email:    user.Email,
		Username: user.Username,
		RoleID:   user.RoleID,
	})

	return user, tokens, nil
}

// checkUnique enforces the uniqueness constraints ahead of insert. The DB
// unique indexes remain the backstop for concurrent registrations.
func (s *AuthService) checkUnique(ctx context.Context, in RegisterInput) error {
	taken := func(u *domain.User, err error) (bool, error) {
		if err == nil {
			return u != nil, nil
		}
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, err
	}

	if dup, err := taken(s.users.GetByEmail(ctx, in.Email)); err != nil {
		return err
	} else if dup {
		return apperrors.NewConflict("email already exists", nil)
	}

	if dup, err := taken(s.users.GetByPhone(ctx, in.Phone)); err != nil {
		return err
	} else if dup {
		return apperrors.NewConflict("phone number already exists", nil)
	}

	if in.RoleID == domain.RoleDoctor && in.LicenseNumber != nil && *in.LicenseNumber != "" {
		if dup, err := taken(s.users.GetByLicenseNumber(ctx, *in.LicenseNumber)); err != nil {
			return err
		} else if dup {
			return apperrors.NewConflict("license number already registered", nil)
		}
	}

	if in.RoleID == domain.RolePharmacy && in.PharmacyName != nil && *in.PharmacyName != "" {
		if dup, err := taken(s.users.GetByPharmacyName(ctx, *in.PharmacyName)); err != nil {
			return err
		} else if dup {
			return apperrors.NewConflict("pharmacy name already registered", nil)
		}
	}

	if in.RoleID == domain.RoleDelivery && in.VehicleNumber != nil && *in.VehicleNumber != "" {
		if dup, err := taken(s.users.GetByVehicleNumber(ctx, *in.VehicleNumber)); err != nil {
			return err
		} else if dup {
			return apperrors.NewConflict("vehicle number already registered", nil)
		}
	}

	return nil
}

// Login authenticates a user by flexible identifier (email, username or
// phone). Not-found and wrong-password both surface the same generic
// message so the endpoint cannot be used to enumerate identifiers.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.User, *domain.TokenPair, error) {
	identifier = strings.TrimSpace(identifier)

	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err == pgx.ErrNoRows {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	} else if err != nil {
		return nil, nil, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	tokens, err := s.tokenMgr.GeneratePair(user.Email, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.publish(ctx, events.EventUserLoggedIn, user.ID, events.UserLoggedInPayload{
		Email:  user.Email,
		RoleID: user.RoleID,
	})

	return user, tokens, nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, userID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
