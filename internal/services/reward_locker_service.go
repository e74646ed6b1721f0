package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shsyteam/shsy-staking-backend/internal/config"
	"github.com/shsyteam/shsy-staking-backend/internal/models"
	"github.com/shsyteam/shsy-staking-backend/internal/repositories"
	"github.com/shsyteam/shsy-staking-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure RewardLockerServiceImpl implements RewardLockerService
var _ RewardLockerService = (*RewardLockerServiceImpl)(nil)

// RewardLockerServiceImpl handles reward-locking business logic
type RewardLockerServiceImpl struct {
	lockSettingRepo repositories.LockSettingRepository
	lockedFundRepo  repositories.LockedFundRepository
	defaults        config.LockConfig
}

// NewRewardLockerService creates a new RewardLockerServiceImpl
func NewRewardLockerService(
	lockSettingRepo repositories.LockSettingRepository,
	lockedFundRepo repositories.LockedFundRepository,
	defaults config.LockConfig,
) *RewardLockerServiceImpl {
	return &RewardLockerServiceImpl{
		lockSettingRepo: lockSettingRepo,
		lockedFundRepo:  lockedFundRepo,
		defaults:        defaults,
	}
}

// SplitRewardAmount splits a reward into its locked and available portions.
// The reward type is part of the contract but does not alter the formula:
// every reward category shares the one global lock configuration. Callers
// ensure lockPercentage is within [0,100].
func SplitRewardAmount(rewardType string, totalAmount float64, lockPercentage, lockDays int) models.RewardSplit {
	lockedAmount := totalAmount * float64(lockPercentage) / 100
	return models.RewardSplit{
		LockedAmount:    lockedAmount,
		AvailableAmount: totalAmount - lockedAmount,
		LockPercentage:  lockPercentage,
		LockDays:        lockDays,
	}
}

// CalculateRewardSplit computes the split using the current lock settings.
// Settings are read fresh on every call; missing settings fall back to the
// configured defaults and are never a hard failure.
func (s *RewardLockerServiceImpl) CalculateRewardSplit(ctx context.Context, rewardType string, totalAmount float64) (models.RewardSplit, error) {
	lockPercentage := s.defaults.DefaultPercentage
	lockDays := s.defaults.DefaultDays

	percentageSetting, err := s.lockSettingRepo.FindByKey(ctx, models.LockSettingPercentage)
	if err != nil && err != mongo.ErrNoDocuments {
		return models.RewardSplit{}, fmt.Errorf("failed to fetch lock percentage setting: %w", err)
	}
	if percentageSetting != nil {
		if v, convErr := strconv.Atoi(percentageSetting.SettingValue); convErr == nil {
			lockPercentage = v
		} else {
			slog.Warn("Invalid lock percentage setting, using default", "value", percentageSetting.SettingValue)
		}
	}

	daysSetting, err := s.lockSettingRepo.FindByKey(ctx, models.LockSettingDays)
	if err != nil && err != mongo.ErrNoDocuments {
		return models.RewardSplit{}, fmt.Errorf("failed to fetch lock days setting: %w", err)
	}
	if daysSetting != nil {
		if v, convErr := strconv.Atoi(daysSetting.SettingValue); convErr == nil {
			lockDays = v
		} else {
			slog.Warn("Invalid lock days setting, using default", "value", daysSetting.SettingValue)
		}
	}

	return SplitRewardAmount(rewardType, totalAmount, lockPercentage, lockDays), nil
}

// LockReward splits a reward and persists the locked portion. When no
// locking is configured the full amount is returned as available and no
// record is created.
func (s *RewardLockerServiceImpl) LockReward(ctx context.Context, userID primitive.ObjectID, walletAddress, rewardType string, totalAmount float64, originalTransactionID, tokenType string) (*LockRewardResult, error) {
	split, err := s.CalculateRewardSplit(ctx, rewardType, totalAmount)
	if err != nil {
		return nil, err
	}

	if split.LockPercentage == 0 || split.LockedAmount == 0 {
		return &LockRewardResult{
			AvailableAmount: totalAmount,
			LockedAmount:    0,
		}, nil
	}

	now := time.Now()
	fund := &models.LockedFund{
		UserID:                userID,
		WalletAddress:         walletAddress,
		RewardType:            rewardType,
		TokenType:             tokenType,
		TotalRewardAmount:     decimal.NewFromFloat(totalAmount).String(),
		LockedAmount:          decimal.NewFromFloat(split.LockedAmount).String(),
		AvailableAmount:       decimal.NewFromFloat(split.AvailableAmount).String(),
		LockPercentage:        split.LockPercentage,
		LockDays:              split.LockDays,
		LockedAt:              now,
		UnlocksAt:             now.AddDate(0, 0, split.LockDays),
		Status:                models.LockedFundStatusLocked,
		OriginalTransactionID: originalTransactionID,
	}

	if err := s.lockedFundRepo.Create(ctx, fund); err != nil {
		slog.Error("Failed to create locked fund", "error", err, "wallet", utils.MaskWallet(walletAddress), "rewardType", rewardType)
		return nil, fmt.Errorf("failed to create locked fund: %w", err)
	}

	slog.Info("Locked reward portion",
		"wallet", utils.MaskWallet(walletAddress),
		"rewardType", rewardType,
		"lockedAmount", fund.LockedAmount,
		"availableAmount", fund.AvailableAmount,
		"unlocksAt", fund.UnlocksAt,
	)

	return &LockRewardResult{
		LockedFund:      fund,
		AvailableAmount: split.AvailableAmount,
		LockedAmount:    split.LockedAmount,
	}, nil
}

// GetUnlockableRewards returns locked funds that have reached maturity
func (s *RewardLockerServiceImpl) GetUnlockableRewards(ctx context.Context, walletAddress string) ([]*models.LockedFund, error) {
	funds, err := s.lockedFundRepo.FindAvailableByWallet(ctx, walletAddress, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unlockable rewards: %w", err)
	}
	return funds, nil
}

// GetAllLockedFunds returns every locked fund for a wallet regardless of status
func (s *RewardLockerServiceImpl) GetAllLockedFunds(ctx context.Context, walletAddress string) ([]*models.LockedFund, error) {
	funds, err := s.lockedFundRepo.FindByWallet(ctx, walletAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch locked funds: %w", err)
	}
	return funds, nil
}

// GetLockedFund returns a single locked fund, or nil if absent
func (s *RewardLockerServiceImpl) GetLockedFund(ctx context.Context, id primitive.ObjectID) (*models.LockedFund, error) {
	fund, err := s.lockedFundRepo.FindByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch locked fund: %w", err)
	}
	return fund, nil
}

// UnlockReward transitions a fund from locked to withdrawn. Returns nil when
// no locked fund matches the id. The external transfer must already have
// succeeded; this only finalizes bookkeeping.
func (s *RewardLockerServiceImpl) UnlockReward(ctx context.Context, id primitive.ObjectID) (*models.LockedFund, error) {
	fund, err := s.lockedFundRepo.MarkWithdrawn(ctx, id)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark locked fund withdrawn: %w", err)
	}
	slog.Info("Locked fund withdrawn", "lockedFundId", fund.ID.Hex(), "wallet", utils.MaskWallet(fund.WalletAddress))
	return fund, nil
}
