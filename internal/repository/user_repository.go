package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/healthhive/internal/domain"
)

// UserRepository defines persistence access for platform accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetByLicenseNumber(ctx context.Context, license string) (*domain.User, error)
	GetByPharmacyName(ctx context.Context, name string) (*domain.User, error)
	GetByVehicleNumber(ctx context.Context, vehicle string) (*domain.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	GetByIDWithRole(ctx context.Context, id int64) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `
        id, email, password_hash, username, phone, location, role_id, is_active,
        license_number, specialization, pharmacy_name, vehicle_number,
        created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Username,
		&user.Phone,
		&user.Location,
		&user.RoleID,
		&user.Active,
		&user.LicenseNumber,
		&user.Specialization,
		&user.PharmacyName,
		&user.VehicleNumber,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts the user inside a single transaction so a failure between
// insert and commit leaves no partial record behind.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (email, password_hash, username, phone, location, role_id, is_active,
                           license_number, specialization, pharmacy_name, vehicle_number)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id, created_at`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := tx.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Username,
		user.Phone,
		user.Location,
		user.RoleID,
		user.Active,
		user.LicenseNumber,
		user.Specialization,
		user.PharmacyName,
		user.VehicleNumber,
	).Scan(&user.ID, &user.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE email=$1`, email))
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE phone=$1`, phone))
}

func (r *userRepository) GetByLicenseNumber(ctx context.Context, license string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE license_number=$1`, license))
}

func (r *userRepository) GetByPharmacyName(ctx context.Context, name string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE pharmacy_name=$1`, name))
}

func (r *userRepository) GetByVehicleNumber(ctx context.Context, vehicle string) (*domain.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE vehicle_number=$1`, vehicle))
}

// GetByIdentifier resolves an active user whose email, username or phone
// equals the identifier exactly. Ordering is arbitrary when more than one
// field matches; uniqueness across the three fields is not enforced here.
func (r *userRepository) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	const query = `
        SELECT` + userColumns + `
        FROM users
        WHERE (email=$1 OR username=$1 OR phone=$1) AND is_active=TRUE
        LIMIT 1`

	return scanUser(r.pool.QueryRow(ctx, query, identifier))
}

// GetByIDWithRole loads an active user together with its role row.
func (r *userRepository) GetByIDWithRole(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
        SELECT u.id, u.email, u.password_hash, u.username, u.phone, u.location, u.role_id, u.is_active,
               u.license_number, u.specialization, u.pharmacy_name, u.vehicle_number,
               u.created_at, u.updated_at,
               r.id, r.role_name, r.is_active, r.created_at, r.updated_at
        FROM users u
        JOIN roles r ON r.id = u.role_id
        WHERE u.id=$1 AND u.is_active=TRUE`

	var user domain.User
	var role domain.Role
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Username,
		&user.Phone,
		&user.Location,
		&user.RoleID,
		&user.Active,
		&user.LicenseNumber,
		&user.Specialization,
		&user.PharmacyName,
		&user.VehicleNumber,
		&user.CreatedAt,
		&user.UpdatedAt,
		&role.ID,
		&role.Name,
		&role.Active,
		&role.CreatedAt,
		&role.UpdatedAt,
	); err != nil {
		return nil, err
	}
	user.Role = &role
	return &user, nil
}
