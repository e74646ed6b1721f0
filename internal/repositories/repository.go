package repositories

import (
	"context"
	"time"

	"github.com/shsyteam/shsy-staking-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByWallet(ctx context.Context, walletAddress string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// LockedFundRepository defines the interface for locked fund data operations
type LockedFundRepository interface {
	Create(ctx context.Context, fund *models.LockedFund) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.LockedFund, error)
	FindByWallet(ctx context.Context, walletAddress string) ([]*models.LockedFund, error)
	// FindAvailableByWallet returns funds still in locked status whose
	// maturity timestamp has passed.
	FindAvailableByWallet(ctx context.Context, walletAddress string, now time.Time) ([]*models.LockedFund, error)
	// MarkWithdrawn transitions a fund from locked to withdrawn and returns
	// the updated record.
	MarkWithdrawn(ctx context.Context, id primitive.ObjectID) (*models.LockedFund, error)
}

// LockSettingRepository defines the interface for lock setting operations
type LockSettingRepository interface {
	FindByKey(ctx context.Context, key string) (*models.LockSetting, error)
	UpsertByKey(ctx context.Context, key, value, description string) error
	FindAll(ctx context.Context) ([]*models.LockSetting, error)
}

// RewardSettingRepository defines the interface for reward setting operations
type RewardSettingRepository interface {
	FindByKey(ctx context.Context, key string) (*models.RewardSetting, error)
	UpsertByKey(ctx context.Context, key, value, description string) error
	FindAll(ctx context.Context) ([]*models.RewardSetting, error)
}

// AdminUserRepository defines the interface for admin user data operations
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
}

// ActivityRepository exposes the qualifying-activity counts consulted by the
// challenge eligibility check. The underlying collections are owned by the
// staking, riddle, and million-pool flows; this backend only reads them.
type ActivityRepository interface {
	CountActiveStakes(ctx context.Context, userID primitive.ObjectID) (int64, error)
	CountRiddleSubmissions(ctx context.Context, userID primitive.ObjectID) (int64, error)
	CountActivePoolEntries(ctx context.Context, userID primitive.ObjectID) (int64, error)
}
