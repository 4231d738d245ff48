package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aidar/invento-api/internal/domain"
	"github.com/aidar/invento-api/internal/metrics"
	"github.com/aidar/invento-api/internal/repository"
)

// Login outcomes reported to metrics
const (
	loginSuccess     = "success"
	loginInvalid     = "invalid_credentials"
	loginDeactivated = "deactivated"
	loginLocked      = "locked"
)

// Claims represents JWT claims
type Claims struct {
	AdminID string `json:"id"`
	jwt.RegisteredClaims
}

// AuthResult is returned by login and registration
type AuthResult struct {
	Admin *domain.Admin `json:"admin"`
	Token string        `json:"token"`
}

// RegisterAdminInput holds the fields of an admin signup
type RegisterAdminInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// UpdateProfileInput holds optional profile changes; empty values are ignored
type UpdateProfileInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService handles admin accounts, password checks and JWT operations
type AuthService struct {
	adminRepo  repository.AdminRepository
	jwtSecret  string
	jwtExpiry  time.Duration
	bcryptCost int
	dummyHash  []byte

	lockout       repository.LoginLockoutStore
	maxFailures   int64
	lockoutWindow time.Duration

	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// AuthOption configures an AuthService
type AuthOption func(*AuthService)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) AuthOption {
	return func(s *AuthService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector
func WithMetrics(m *metrics.Metrics) AuthOption {
	return func(s *AuthService) {
		s.metrics = m
	}
}

// WithBcryptCost overrides bcrypt.DefaultCost, tests use bcrypt.MinCost
func WithBcryptCost(cost int) AuthOption {
	return func(s *AuthService) {
		s.bcryptCost = cost
	}
}

// WithLockout blocks logins for an email after maxFailures failed attempts within window
func WithLockout(store repository.LoginLockoutStore, maxFailures int, window time.Duration) AuthOption {
	return func(s *AuthService) {
		if store == nil || maxFailures <= 0 || window <= 0 {
			return
		}
		s.lockout = store
		s.maxFailures = int64(maxFailures)
		s.lockoutWindow = window
	}
}

// NewAuthService creates a new AuthService
func NewAuthService(adminRepo repository.AdminRepository, jwtSecret string, jwtExpiry time.Duration, opts ...AuthOption) *AuthService {
	s := &AuthService{
		adminRepo:  adminRepo,
		jwtSecret:  jwtSecret,
		jwtExpiry:  jwtExpiry,
		bcryptCost: bcrypt.DefaultCost,
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Compared against when the email is unknown so both failures cost the same
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.bcryptCost)

	return s
}

// Login checks credentials and issues a token.
// Unknown email and wrong password produce the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError("email", "Please provide email and password")
	}

	if s.locked(ctx, email) {
		s.metrics.IncLogin(loginLocked)
		return nil, domain.ErrTooManyAttempts
	}

	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrAdminNotFound) {
		return nil, err
	}

	if admin == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		s.recordFailure(ctx, email)
		s.metrics.IncLogin(loginInvalid)
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		s.recordFailure(ctx, email)
		s.metrics.IncLogin(loginInvalid)
		return nil, domain.ErrInvalidCredentials
	}

	// Only revealed to someone who knows the password
	if !admin.IsActive {
		s.metrics.IncLogin(loginDeactivated)
		return nil, domain.ErrAccountDeactivated
	}

	s.clearFailures(ctx, email)

	token, err := s.issueToken(admin.ID)
	if err != nil {
		return nil, err
	}

	s.metrics.IncLogin(loginSuccess)
	s.logger.InfoContext(ctx, "Admin logged in", "admin_id", admin.ID)

	return &AuthResult{Admin: admin, Token: token}, nil
}

// Register creates a new admin and issues a token
func (s *AuthService) Register(ctx context.Context, input RegisterAdminInput) (*AuthResult, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.NewValidationError("email", "Please provide email and password")
	}
	if !domain.IsValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = domain.DefaultAdminRole
	}

	now := s.now().UTC()
	admin := &domain.Admin{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	token, err := s.issueToken(admin.ID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Admin registered", "admin_id", admin.ID)

	return &AuthResult{Admin: admin, Token: token}, nil
}

// GetProfile returns the admin behind a validated token
func (s *AuthService) GetProfile(ctx context.Context, adminID string) (*domain.Admin, error) {
	return s.adminRepo.GetByID(ctx, adminID)
}

// UpdateProfile changes name, email or password of the current admin
func (s *AuthService) UpdateProfile(ctx context.Context, adminID string, input UpdateProfileInput) (*domain.Admin, error) {
	patch := &domain.AdminPatch{}

	if name := strings.TrimSpace(input.Name); name != "" {
		patch.Name = &name
	}
	if input.Email != "" {
		email := domain.NormalizeEmail(input.Email)
		if !domain.IsValidEmail(email) {
			return nil, domain.ErrInvalidEmail
		}
		patch.Email = &email
	}
	if input.Password != "" {
		hash, err := s.hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	if patch.Name == nil && patch.Email == nil && patch.PasswordHash == nil {
		return s.adminRepo.GetByID(ctx, adminID)
	}

	admin, err := s.adminRepo.Update(ctx, adminID, patch, s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Admin profile updated", "admin_id", adminID)
	return admin, nil
}

// ValidateToken validates a JWT token and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.AdminID == "" {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}

func (s *AuthService) issueToken(adminID string) (string, error) {
	now := s.now()
	claims := &Claims{
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (s *AuthService) hashPassword(password string) (string, error) {
	if len(password) < domain.MinPasswordLength {
		return "", domain.ErrWeakPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.NewValidationError("password", "Password must be at most 72 bytes")
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// locked fails open: a broken lockout store must not block every admin
func (s *AuthService) locked(ctx context.Context, email string) bool {
	if s.lockout == nil {
		return false
	}
	failures, err := s.lockout.Failures(ctx, email)
	if err != nil {
		s.logger.WarnContext(ctx, "Login lockout check failed", "error", err)
		return false
	}
	return failures >= s.maxFailures
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.lockout == nil {
		return
	}
	failures, err := s.lockout.RecordFailure(ctx, email, s.lockoutWindow)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to record login failure", "error", err)
		return
	}
	if failures == s.maxFailures {
		s.logger.WarnContext(ctx, "Admin login locked", "email", email, "window", s.lockoutWindow)
	}
}

func (s *AuthService) clearFailures(ctx context.Context, email string) {
	if s.lockout == nil {
		return
	}
	if err := s.lockout.Clear(ctx, email); err != nil {
		s.logger.WarnContext(ctx, "Failed to clear login failures", "error", err)
	}
}
