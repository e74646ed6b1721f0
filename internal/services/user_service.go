package services

import (
	"context"

	"github.com/shsyteam/shsy-staking-backend/internal/models"
	"github.com/shsyteam/shsy-staking-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure UserServiceImpl implements UserService
var _ UserService = (*UserServiceImpl)(nil)

// UserServiceImpl resolves dapp users by wallet address
type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserServiceImpl
func NewUserService(userRepo repositories.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{
		userRepo: userRepo,
	}
}

// GetUserByWallet returns the user for a wallet address, or nil if unknown
func (s *UserServiceImpl) GetUserByWallet(ctx context.Context, walletAddress string) (*models.User, error) {
	user, err := s.userRepo.FindByWallet(ctx, walletAddress)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
