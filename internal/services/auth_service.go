package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shsyteam/shsy-staking-backend/internal/config"
	"github.com/shsyteam/shsy-staking-backend/internal/models"
	"github.com/shsyteam/shsy-staking-backend/internal/repositories"
	"github.com/shsyteam/shsy-staking-backend/internal/utils"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when the email or password does not match
var ErrInvalidCredentials = errors.New("invalid email or password")

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl handles admin authentication
type AuthServiceImpl struct {
	adminUserRepo repositories.AdminUserRepository
	cfg           *config.Config
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(adminUserRepo repositories.AdminUserRepository, cfg *config.Config) *AuthServiceImpl {
	return &AuthServiceImpl{
		adminUserRepo: adminUserRepo,
		cfg:           cfg,
	}
}

// Login verifies admin credentials and returns a signed JWT
func (s *AuthServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	adminUser, err := s.adminUserRepo.FindByEmail(ctx, req.Email)
	if err == mongo.ErrNoDocuments {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(adminUser.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(adminUser.ID.Hex(), adminUser.Role, s.cfg)
	if err != nil {
		return "", err
	}

	slog.Info("Admin logged in", "email", adminUser.Email)
	return token, nil
}

// CreateAdmin creates a new admin user with a bcrypt-hashed password
func (s *AuthServiceImpl) CreateAdmin(ctx context.Context, email, password, role string) (*models.AdminUser, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	adminUser := &models.AdminUser{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}
	if err := s.adminUserRepo.Create(ctx, adminUser); err != nil {
		return nil, err
	}
	return adminUser, nil
}
