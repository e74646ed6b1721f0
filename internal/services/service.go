package services

import (
	"context"

	"github.com/shsyteam/shsy-staking-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RewardLockerService splits distributed rewards into locked and available
// portions and manages the resulting locked fund records.
type RewardLockerService interface {
	// CalculateRewardSplit computes the split for a reward using the current
	// lock settings. The reward type does not affect the formula; lock
	// settings are global across reward categories.
	CalculateRewardSplit(ctx context.Context, rewardType string, totalAmount float64) (models.RewardSplit, error)
	// LockReward persists a locked fund for the locked portion of a reward
	// and returns both portions. When the configured lock percentage is zero
	// the full amount is returned as available and no record is created.
	// Calls are not idempotent: one call, one record.
	LockReward(ctx context.Context, userID primitive.ObjectID, walletAddress, rewardType string, totalAmount float64, originalTransactionID, tokenType string) (*LockRewardResult, error)
	// GetUnlockableRewards returns locked funds that have reached maturity.
	GetUnlockableRewards(ctx context.Context, walletAddress string) ([]*models.LockedFund, error)
	// GetAllLockedFunds returns every locked fund for a wallet regardless of
	// status.
	GetAllLockedFunds(ctx context.Context, walletAddress string) ([]*models.LockedFund, error)
	// GetLockedFund returns a single locked fund, or nil if absent.
	GetLockedFund(ctx context.Context, id primitive.ObjectID) (*models.LockedFund, error)
	// UnlockReward transitions a fund from locked to withdrawn. Returns nil
	// (no error) if no locked fund matches; callers must have confirmed the
	// external transfer before finalizing.
	UnlockReward(ctx context.Context, id primitive.ObjectID) (*models.LockedFund, error)
}

// LockRewardResult is the outcome of a LockReward call. LockedFund is nil on
// the zero-lock fast path.
type LockRewardResult struct {
	LockedFund      *models.LockedFund `json:"lockedFund,omitempty"`
	AvailableAmount float64            `json:"availableAmount"`
	LockedAmount    float64            `json:"lockedAmount"`
}

// UserService resolves dapp users.
type UserService interface {
	GetUserByWallet(ctx context.Context, walletAddress string) (*models.User, error)
}

// EligibilityService determines whether a user qualifies to participate in
// the global challenges.
type EligibilityService interface {
	CheckEligibility(ctx context.Context, userID primitive.ObjectID) (*models.Eligibility, error)
}

// SettingsService manages the admin-controlled lock and reward settings.
type SettingsService interface {
	GetLockSettings(ctx context.Context) ([]*models.LockSetting, error)
	SetLockSetting(ctx context.Context, key, value, description string) error
	GetRewardSettings(ctx context.Context) ([]*models.RewardSetting, error)
	SetRewardSetting(ctx context.Context, key, value, description string) error
}

// AuthService handles admin authentication.
type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (string, error) // Returns JWT token
	CreateAdmin(ctx context.Context, email, password, role string) (*models.AdminUser, error)
}
