package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/invento-api/internal/domain"
)

// AdminRepository реализует repository.AdminRepository для PostgreSQL
type AdminRepository struct {
	db *pgxpool.Pool
}

// NewAdminRepository создает новый экземпляр AdminRepository
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

const adminColumns = `id, email, password_hash, name, role, is_active, created_at, updated_at`

// Create создает нового администратора
func (r *AdminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	query := `
		INSERT INTO admins (id, email, password_hash, name, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		admin.ID, admin.Email, admin.PasswordHash, admin.Name, admin.Role,
		admin.IsActive, admin.CreatedAt, admin.UpdatedAt,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

// GetByEmail получает администратора по email
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.get(ctx, `WHERE email = $1`, email)
}

// GetByID получает администратора по ID
func (r *AdminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

// Update обновляет профиль администратора
func (r *AdminRepository) Update(ctx context.Context, id string, patch *domain.AdminPatch, updatedAt time.Time) (*domain.Admin, error) {
	sets := []string{}
	args := []any{id}
	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Email != nil {
		addSet("email", *patch.Email)
	}
	if patch.PasswordHash != nil {
		addSet("password_hash", *patch.PasswordHash)
	}
	addSet("updated_at", updatedAt)

	query := `UPDATE admins SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + adminColumns

	admin, err := scanAdmin(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, mapUniqueViolation(err)
	}
	return admin, nil
}

func (r *AdminRepository) get(ctx context.Context, where string, arg any) (*domain.Admin, error) {
	admin, err := scanAdmin(r.db.QueryRow(ctx, `SELECT `+adminColumns+` FROM admins `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

func scanAdmin(row pgx.Row) (*domain.Admin, error) {
	var admin domain.Admin
	err := row.Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Name,
		&admin.Role,
		&admin.IsActive,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
