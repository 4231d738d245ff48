package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aidar/invento-api/internal/domain"
)

// AdminRepository хранит администраторов в памяти
type AdminRepository struct {
	mu     sync.RWMutex
	admins map[string]*domain.Admin
}

// NewAdminRepository создает пустой AdminRepository
func NewAdminRepository() *AdminRepository {
	return &AdminRepository{admins: make(map[string]*domain.Admin)}
}

// Create создает администратора
func (r *AdminRepository) Create(_ context.Context, admin *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.admins {
		if existing.Email == admin.Email {
			return domain.ErrDuplicateAdmin
		}
	}
	c := *admin
	r.admins[admin.ID] = &c
	return nil
}

// GetByEmail получает администратора по email
func (r *AdminRepository) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, admin := range r.admins {
		if admin.Email == email {
			c := *admin
			return &c, nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

// GetByID получает администратора по ID
func (r *AdminRepository) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	admin, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	c := *admin
	return &c, nil
}

// Update обновляет профиль администратора
func (r *AdminRepository) Update(_ context.Context, id string, patch *domain.AdminPatch, updatedAt time.Time) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	if patch.Email != nil {
		for otherID, other := range r.admins {
			if otherID != id && other.Email == *patch.Email {
				return nil, domain.ErrDuplicateAdmin
			}
		}
	}

	updated := *admin
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Email != nil {
		updated.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		updated.PasswordHash = *patch.PasswordHash
	}
	updated.UpdatedAt = updatedAt

	r.admins[id] = &updated
	c := updated
	return &c, nil
}

// SetActive меняет флаг активности. В HTTP API такой операции нет,
// нужен тестам для деактивированных учеток
func (r *AdminRepository) SetActive(id string, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if admin, ok := r.admins[id]; ok {
		admin.IsActive = active
	}
}
