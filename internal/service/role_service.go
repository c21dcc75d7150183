package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/healthhive/internal/domain"
	"github.com/spec-kit/healthhive/internal/persistence"
	"github.com/spec-kit/healthhive/internal/repository"
	apperrors "github.com/spec-kit/healthhive/pkg/util/errorutil"
)

const (
	rolesCacheKey = "healthhive:roles:active"
	rolesCacheTTL = 5 * time.Minute
)

// RoleService lists the active role reference data. The role table is
// static, so the list is cached in Redis; cache failures fall through to
// Postgres and are only logged.
type RoleService struct {
	roles  repository.RoleRepository
	cache  *persistence.Redis
	logger *zap.Logger
}

// NewRoleService builds the service.
func NewRoleService(roles repository.RoleRepository, cache *persistence.Redis, logger *zap.Logger) *RoleService {
	return &RoleService{roles: roles, cache: cache, logger: logger}
}

// ListActive returns all active roles, NotFound when none are configured.
func (s *RoleService) ListActive(ctx context.Context) ([]domain.Role, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	roles, err := s.roles.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, apperrors.NewNotFound("roles", nil)
	}

	s.toCache(ctx, roles)
	return roles, nil
}

func (s *RoleService) fromCache(ctx context.Context) []domain.Role {
	if s.cache == nil || s.cache.Client == nil {
		return nil
	}
	raw, err := s.cache.Client.Get(ctx, rolesCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var roles []domain.Role
	if err := json.Unmarshal(raw, &roles); err != nil {
		s.logger.Warn("discarding malformed roles cache entry", zap.Error(err))
		return nil
	}
	return roles
}

func (s *RoleService) toCache(ctx context.Context, roles []domain.Role) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(roles)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, rolesCacheKey, raw, rolesCacheTTL).Err(); err != nil {
		s.logger.Warn("unable to cache roles", zap.Error(err))
	}
}
