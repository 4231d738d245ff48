package domain

import "errors"

// Доменные ошибки
var (
	// ErrValidation возвращается при отсутствии или неверном формате обязательного поля
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateTeamName возвращается при попытке зарегистрировать команду с занятым названием
	ErrDuplicateTeamName = errors.New("team name already exists")

	// ErrDuplicateMember возвращается когда email участника уже зарегистрирован в другой команде
	ErrDuplicateMember = errors.New("one or more email addresses are already registered with another team")

	// ErrTeamNotFound возвращается когда команда не найдена
	ErrTeamNotFound = errors.New("team not found")

	// ErrAdminNotFound возвращается когда администратор не найден
	ErrAdminNotFound = errors.New("admin not found")

	// ErrDuplicateAdmin возвращается при регистрации администратора с занятым email
	ErrDuplicateAdmin = errors.New("admin with this email already exists")

	// ErrWeakPassword возвращается когда пароль короче минимальной длины
	ErrWeakPassword = errors.New("password must be at least 6 characters")

	// ErrInvalidEmail возвращается когда email не похож на адрес
	ErrInvalidEmail = errors.New("please provide a valid email")

	// ErrInvalidCredentials возвращается при неверной паре email/пароль (без уточнения что именно не так)
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDeactivated возвращается при входе в деактивированный аккаунт
	ErrAccountDeactivated = errors.New("account is deactivated")

	// ErrTooManyAttempts возвращается когда вход временно заблокирован после серии неудачных попыток
	ErrTooManyAttempts = errors.New("too many failed login attempts, try again later")

	// ErrUnauthorized возвращается при отсутствии или неверном токене
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken возвращается когда JWT токен невалиден или истек
	ErrInvalidToken = errors.New("invalid token")

	// ErrNotificationDelivery возвращается когда рассылка писем не может быть выполнена целиком
	ErrNotificationDelivery = errors.New("notification delivery failed")
)

// ValidationError описывает конкретное нарушение валидации
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError создает ошибку валидации для поля
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrValidation)
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
