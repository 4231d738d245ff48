package domain

import "time"

// DefaultAdminRole роль по умолчанию для новых администраторов
const DefaultAdminRole = "admin"

// MinPasswordLength минимальная длина пароля администратора
const MinPasswordLength = 6

// Admin представляет учетную запись оператора
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Никогда не отдаем наружу
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AdminPatch содержит поля для обновления профиля администратора
type AdminPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
}
