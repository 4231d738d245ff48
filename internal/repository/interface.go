package repository

import (
	"context"
	"time"

	"github.com/aidar/invento-api/internal/domain"
)

// TeamRepository определяет методы для работы с данными команд
type TeamRepository interface {
	// Create сохраняет команду вместе с участниками.
	// Уникальность названия и email участников проверяется хранилищем:
	// возвращает domain.ErrDuplicateTeamName или domain.ErrDuplicateMember.
	Create(ctx context.Context, team *domain.Team) error

	// GetByID получает команду со скриншотом
	GetByID(ctx context.Context, id string) (*domain.Team, error)

	// GetByName получает команду по точному названию
	GetByName(ctx context.Context, teamName string) (*domain.Team, error)

	// List возвращает все команды без скриншотов
	List(ctx context.Context) ([]*domain.Team, error)

	// GetScreenshot возвращает только название команды и скриншот
	GetScreenshot(ctx context.Context, id string) (*domain.TeamScreenshot, error)

	// Update применяет патч и проставляет updatedAt
	Update(ctx context.Context, id string, patch *domain.TeamPatch, updatedAt time.Time) (*domain.Team, error)

	// Delete удаляет команду без возможности восстановления
	Delete(ctx context.Context, id string) error

	// CountMembers возвращает количество команд и суммарное количество участников
	CountMembers(ctx context.Context) (teams int, participants int, err error)
}

// AdminRepository определяет методы для работы с учетными записями администраторов
type AdminRepository interface {
	// Create создает администратора, возвращает domain.ErrDuplicateAdmin если email занят
	Create(ctx context.Context, admin *domain.Admin) error

	// GetByEmail получает администратора вместе с хэшем пароля
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)

	// GetByID получает администратора по ID
	GetByID(ctx context.Context, id string) (*domain.Admin, error)

	// Update обновляет профиль и возвращает актуальную запись
	Update(ctx context.Context, id string, patch *domain.AdminPatch, updatedAt time.Time) (*domain.Admin, error)
}

// LoginLockoutStore считает неудачные попытки входа
type LoginLockoutStore interface {
	// RecordFailure увеличивает счетчик неудач и возвращает его новое значение
	RecordFailure(ctx context.Context, key string, window time.Duration) (int64, error)

	// Failures возвращает текущее значение счетчика
	Failures(ctx context.Context, key string) (int64, error)

	// Clear сбрасывает счетчик после успешного входа
	Clear(ctx context.Context, key string) error
}
