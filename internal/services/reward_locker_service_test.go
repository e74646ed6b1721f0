package services

import (
	"context"
	"testing"
	"time"

	"github.com/shsyteam/shsy-staking-backend/internal/config"
	"github.com/shsyteam/shsy-staking-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeLockSettingRepo struct {
	settings map[string]string
}

func newFakeLockSettingRepo() *fakeLockSettingRepo {
	return &fakeLockSettingRepo{settings: make(map[string]string)}
}

func (r *fakeLockSettingRepo) FindByKey(ctx context.Context, key string) (*models.LockSetting, error) {
	value, ok := r.settings[key]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &models.LockSetting{SettingKey: key, SettingValue: value}, nil
}

func (r *fakeLockSettingRepo) UpsertByKey(ctx context.Context, key, value, description string) error {
	r.settings[key] = value
	return nil
}

func (r *fakeLockSettingRepo) FindAll(ctx context.Context) ([]*models.LockSetting, error) {
	all := make([]*models.LockSetting, 0, len(r.settings))
	for key, value := range r.settings {
		all = append(all, &models.LockSetting{SettingKey: key, SettingValue: value})
	}
	return all, nil
}

type fakeLockedFundRepo struct {
	funds map[primitive.ObjectID]*models.LockedFund
}

func newFakeLockedFundRepo() *fakeLockedFundRepo {
	return &fakeLockedFundRepo{funds: make(map[primitive.ObjectID]*models.LockedFund)}
}

func (r *fakeLockedFundRepo) Create(ctx context.Context, fund *models.LockedFund) error {
	fund.ID = primitive.NewObjectID()
	fund.CreatedAt = time.Now()
	copied := *fund
	r.funds[fund.ID] = &copied
	return nil
}

func (r *fakeLockedFundRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.LockedFund, error) {
	fund, ok := r.funds[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *fund
	return &copied, nil
}

func (r *fakeLockedFundRepo) FindByWallet(ctx context.Context, walletAddress string) ([]*models.LockedFund, error) {
	var out []*models.LockedFund
	for _, fund := range r.funds {
		if fund.WalletAddress == walletAddress {
			copied := *fund
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeLockedFundRepo) FindAvailableByWallet(ctx context.Context, walletAddress string, now time.Time) ([]*models.LockedFund, error) {
	var out []*models.LockedFund
	for _, fund := range r.funds {
		if fund.WalletAddress == walletAddress && fund.Status == models.LockedFundStatusLocked && !now.Before(fund.UnlocksAt) {
			copied := *fund
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeLockedFundRepo) MarkWithdrawn(ctx context.Context, id primitive.ObjectID) (*models.LockedFund, error) {
	fund, ok := r.funds[id]
	if !ok || fund.Status != models.LockedFundStatusLocked {
		return nil, mongo.ErrNoDocuments
	}
	fund.Status = models.LockedFundStatusWithdrawn
	copied := *fund
	return &copied, nil
}

func newTestRewardLocker() (*RewardLockerServiceImpl, *fakeLockSettingRepo, *fakeLockedFundRepo) {
	lockSettings := newFakeLockSettingRepo()
	lockedFunds := newFakeLockedFundRepo()
	service := NewRewardLockerService(lockSettings, lockedFunds, config.LockConfig{
		DefaultPercentage: 25,
		DefaultDays:       30,
	})
	return service, lockSettings, lockedFunds
}

func TestSplitRewardAmountConservation(t *testing.T) {
	for _, tc := range []struct {
		total      float64
		percentage int
	}{
		{100, 25},
		{100, 0},
		{100, 100},
		{33.5, 10},
		{0.00000001, 50},
		{0, 25},
	} {
		split := SplitRewardAmount("staking", tc.total, tc.percentage, 30)
		assert.InDelta(t, tc.total, split.LockedAmount+split.AvailableAmount, 1e-9,
			"locked + available must equal total for %v at %d%%", tc.total, tc.percentage)
		assert.GreaterOrEqual(t, split.LockedAmount, 0.0)
		assert.GreaterOrEqual(t, split.AvailableAmount, 0.0)
	}
}

func TestSplitRewardAmountPortions(t *testing.T) {
	split := SplitRewardAmount("short_challenge", 100, 25, 30)
	assert.Equal(t, 25.0, split.LockedAmount)
	assert.Equal(t, 75.0, split.AvailableAmount)
	assert.Equal(t, 25, split.LockPercentage)
	assert.Equal(t, 30, split.LockDays)
}

func TestCalculateRewardSplitUsesStoredSettings(t *testing.T) {
	service, lockSettings, _ := newTestRewardLocker()
	ctx := context.Background()

	require.NoError(t, lockSettings.UpsertByKey(ctx, models.LockSettingPercentage, "40", ""))
	require.NoError(t, lockSettings.UpsertByKey(ctx, models.LockSettingDays, "7", ""))

	split, err := service.CalculateRewardSplit(ctx, "staking", 200)
	require.NoError(t, err)
	assert.Equal(t, 80.0, split.LockedAmount)
	assert.Equal(t, 120.0, split.AvailableAmount)
	assert.Equal(t, 7, split.LockDays)
}

func TestCalculateRewardSplitFallsBackToDefaults(t *testing.T) {
	service, _, _ := newTestRewardLocker()

	split, err := service.CalculateRewardSplit(context.Background(), "staking", 100)
	require.NoError(t, err)
	assert.Equal(t, 25.0, split.LockedAmount)
	assert.Equal(t, 30, split.LockDays)
}

func TestCalculateRewardSplitIgnoresMalformedSettings(t *testing.T) {
	service, lockSettings, _ := newTestRewardLocker()
	ctx := context.Background()

	require.NoError(t, lockSettings.UpsertByKey(ctx, models.LockSettingPercentage, "not-a-number", ""))

	split, err := service.CalculateRewardSplit(ctx, "staking", 100)
	require.NoError(t, err)
	assert.Equal(t, 25.0, split.LockedAmount)
}

func TestLockRewardZeroPercentageFastPath(t *testing.T) {
	service, lockSettings, lockedFunds := newTestRewardLocker()
	ctx := context.Background()

	require.NoError(t, lockSettings.UpsertByKey(ctx, models.LockSettingPercentage, "0", ""))

	result, err := service.LockReward(ctx, primitive.NewObjectID(), "wallet-1", "staking", 100, "", "SHSY")
	require.NoError(t, err)
	assert.Nil(t, result.LockedFund)
	assert.Equal(t, 100.0, result.AvailableAmount)
	assert.Equal(t, 0.0, result.LockedAmount)
	assert.Empty(t, lockedFunds.funds, "no record should be written when nothing is locked")
}

func TestLockRewardCreatesFund(t *testing.T) {
	service, _, lockedFunds := newTestRewardLocker()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	before := time.Now()
	result, err := service.LockReward(ctx, userID, "wallet-1", "short_challenge", 100, "tx-abc", "SHSY")
	require.NoError(t, err)
	require.NotNil(t, result.LockedFund)

	fund := result.LockedFund
	assert.False(t, fund.ID.IsZero())
	assert.Equal(t, userID, fund.UserID)
	assert.Equal(t, "wallet-1", fund.WalletAddress)
	assert.Equal(t, "short_challenge", fund.RewardType)
	assert.Equal(t, "SHSY", fund.TokenType)
	assert.Equal(t, "25", fund.LockedAmount)
	assert.Equal(t, "75", fund.AvailableAmount)
	assert.Equal(t, "tx-abc", fund.OriginalTransactionID)
	assert.Equal(t, models.LockedFundStatusLocked, fund.Status)

	wantUnlock := before.AddDate(0, 0, 30)
	assert.WithinDuration(t, wantUnlock, fund.UnlocksAt, 5*time.Second)
	assert.Len(t, lockedFunds.funds, 1)
}

func TestGetUnlockableRewardsFiltersByMaturity(t *testing.T) {
	service, _, lockedFunds := newTestRewardLocker()
	ctx := context.Background()

	matured := &models.LockedFund{
		WalletAddress: "wallet-1",
		Status:        models.LockedFundStatusLocked,
		UnlocksAt:     time.Now().Add(-time.Hour),
	}
	pending := &models.LockedFund{
		WalletAddress: "wallet-1",
		Status:        models.LockedFundStatusLocked,
		UnlocksAt:     time.Now().Add(time.Hour),
	}
	require.NoError(t, lockedFunds.Create(ctx, matured))
	require.NoError(t, lockedFunds.Create(ctx, pending))

	unlockable, err := service.GetUnlockableRewards(ctx, "wallet-1")
	require.NoError(t, err)
	require.Len(t, unlockable, 1)
	assert.Equal(t, matured.ID, unlockable[0].ID)
}

func TestUnlockRewardOnlyOnce(t *testing.T) {
	service, _, lockedFunds := newTestRewardLocker()
	ctx := context.Background()

	fund := &models.LockedFund{
		WalletAddress: "wallet-1",
		Status:        models.LockedFundStatusLocked,
		UnlocksAt:     time.Now().Add(-time.Hour),
	}
	require.NoError(t, lockedFunds.Create(ctx, fund))

	updated, err := service.UnlockReward(ctx, fund.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, models.LockedFundStatusWithdrawn, updated.Status)

	again, err := service.UnlockReward(ctx, fund.ID)
	require.NoError(t, err)
	assert.Nil(t, again, "a second unlock must not find a locked fund")
}

func TestGetLockedFundMissingReturnsNil(t *testing.T) {
	service, _, _ := newTestRewardLocker()

	fund, err := service.GetLockedFund(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, fund)
}
