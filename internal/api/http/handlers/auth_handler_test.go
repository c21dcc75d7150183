package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/healthhive/internal/api/http"
	"github.com/spec-kit/healthhive/internal/api/http/handlers"
	"github.com/spec-kit/healthhive/internal/auth"
	"github.com/spec-kit/healthhive/internal/config"
	"github.com/spec-kit/healthhive/internal/domain"
	"github.com/spec-kit/healthhive/internal/observability"
	"github.com/spec-kit/healthhive/internal/service"
)

type memUserRepo struct {
	users  []*domain.User
	nextID int64
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	clone := *user
	r.users = append(r.users, &clone)
	return nil
}

func (r *memUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	for _, u := range r.users {
		if match(u) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *memUserRepo) GetByPhone(_ context.Context, phone string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Phone == phone })
}

func (r *memUserRepo) GetByLicenseNumber(_ context.Context, license string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.LicenseNumber != nil && *u.LicenseNumber == license })
}

func (r *memUserRepo) GetByPharmacyName(_ context.Context, name string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.PharmacyName != nil && *u.PharmacyName == name })
}

func (r *memUserRepo) GetByVehicleNumber(_ context.Context, vehicle string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.VehicleNumber != nil && *u.VehicleNumber == vehicle })
}

func (r *memUserRepo) GetByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool {
		return u.Active && (u.Email == identifier || u.Username == identifier || u.Phone == identifier)
	})
}

func (r *memUserRepo) GetByIDWithRole(_ context.Context, id int64) (*domain.User, error) {
	user, err := r.find(func(u *domain.User) bool { return u.ID == id && u.Active })
	if err != nil {
		return nil, err
	}
	user.Role = &domain.Role{ID: user.RoleID, Name: "patient", Active: true}
	return user, nil
}

type memRoleRepo struct{}

func (memRoleRepo) ListActive(context.Context) ([]domain.Role, error) {
	roles := make([]domain.Role, 0, 5)
	for id, name := range map[int]string{1: "admin", 2: "doctor", 3: "patient", 4: "delivery", 5: "pharmacy"} {
		roles = append(roles, domain.Role{ID: id, Name: name, Active: true, CreatedAt: time.Now()})
	}
	return roles, nil
}

func (memRoleRepo) GetByID(_ context.Context, id int) (*domain.Role, error) {
	if id < 1 || id > 5 {
		return nil, pgx.ErrNoRows
	}
	return &domain.Role{ID: id, Active: true, CreatedAt: time.Now()}, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	tokenMgr, err := auth.NewTokenManager("test-secret", "HS256", 15*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}

	cfg := config.Config{}
	cfg.Auth.BcryptCost = bcrypt.MinCost

	userRepo := &memUserRepo{}
	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo: userRepo,
		RoleRepo: memRoleRepo{},
		TokenMgr: tokenMgr,
	})
	roleService := service.NewRoleService(memRoleRepo{}, nil, zap.NewNop())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		Roles:          handlers.NewRolesHandler(roleService),
		Dashboard:      handlers.NewDashboardHandler(service.NewDashboardService()),
		AuthMiddleware: auth.NewAuthMiddleware(tokenMgr, userRepo),
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body map[string]any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	resp.Body.Close()
	return resp, decoded
}

func registrationBody() map[string]any {
	return map[string]any{
		"email":    "a@x.com",
		"password": "secret1",
		"username": "alice",
		"phone":    "1234567890",
		"role":     3,
		"location": "NY",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	app := newTestApp(t)

	resp, body := postJSON(t, app, "/auth/register", registrationBody())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%v)", resp.StatusCode, body)
	}
	user, _ := body["user"].(map[string]any)
	if user["id"] == nil || user["id"].(float64) == 0 {
		t.Fatalf("register: user id not assigned (%v)", body)
	}
	tokens, _ := body["tokens"].(map[string]any)
	if tokens["access_token"] == "" || tokens["refresh_token"] == "" {
		t.Fatalf("register: tokens missing (%v)", body)
	}

	resp, loginBody := postJSON(t, app, "/auth/login", map[string]any{
		"identifier": "alice",
		"password":   "secret1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%v)", resp.StatusCode, loginBody)
	}
	loginUser, _ := loginBody["user"].(map[string]any)
	if loginUser["id"] != user["id"] {
		t.Fatalf("login returned user %v, want %v", loginUser["id"], user["id"])
	}
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	app := newTestApp(t)

	if resp, _ := postJSON(t, app, "/auth/register", registrationBody()); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first register failed: %d", resp.StatusCode)
	}

	dup := registrationBody()
	dup["username"] = "bob"
	dup["phone"] = "0987654321"
	resp, _ := postJSON(t, app, "/auth/register", dup)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", resp.StatusCode)
	}
}

func TestRegister_ValidationFailures(t *testing.T) {
	app := newTestApp(t)

	shortPassword := registrationBody()
	shortPassword["password"] = "abc"
	if resp, _ := postJSON(t, app, "/auth/register", shortPassword); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for short password, got %d", resp.StatusCode)
	}

	shortPhone := registrationBody()
	shortPhone["phone"] = "12345"
	if resp, _ := postJSON(t, app, "/auth/register", shortPhone); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for short phone, got %d", resp.StatusCode)
	}

	missingRole := registrationBody()
	delete(missingRole, "role")
	if resp, _ := postJSON(t, app, "/auth/register", missingRole); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing role, got %d", resp.StatusCode)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	app := newTestApp(t)

	if resp, _ := postJSON(t, app, "/auth/register", registrationBody()); resp.StatusCode != http.StatusCreated {
		t.Fatalf("register failed")
	}

	resp, _ := postJSON(t, app, "/auth/login", map[string]any{
		"identifier": "alice",
		"password":   "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestDashboard_RequiresToken(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}
}

func TestDashboard_RoleDispatch(t *testing.T) {
	app := newTestApp(t)

	_, body := postJSON(t, app, "/auth/register", registrationBody())
	tokens, _ := body["tokens"].(map[string]any)
	access, _ := tokens["access_token"].(string)
	if access == "" {
		t.Fatalf("no access token in register response")
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var content map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	msg, _ := content["message"].(string)
	if msg != "Welcome to the patient dashboard" {
		t.Fatalf("unexpected dashboard message %q", msg)
	}
}

func TestRoles_List(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/roles", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var roles []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&roles); err != nil {
		t.Fatalf("decode roles: %v", err)
	}
	if len(roles) != 5 {
		t.Fatalf("expected 5 roles, got %d", len(roles))
	}
}
