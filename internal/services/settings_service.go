package services

import (
	"context"

	"github.com/shsyteam/shsy-staking-backend/internal/models"
	"github.com/shsyteam/shsy-staking-backend/internal/repositories"
)

// Compile-time check to ensure SettingsServiceImpl implements SettingsService
var _ SettingsService = (*SettingsServiceImpl)(nil)

// SettingsServiceImpl manages the admin-controlled lock and reward settings
type SettingsServiceImpl struct {
	lockSettingRepo   repositories.LockSettingRepository
	rewardSettingRepo repositories.RewardSettingRepository
}

// NewSettingsService creates a new SettingsServiceImpl
func NewSettingsService(
	lockSettingRepo repositories.LockSettingRepository,
	rewardSettingRepo repositories.RewardSettingRepository,
) *SettingsServiceImpl {
	return &SettingsServiceImpl{
		lockSettingRepo:   lockSettingRepo,
		rewardSettingRepo: rewardSettingRepo,
	}
}

// GetLockSettings returns all lock settings
func (s *SettingsServiceImpl) GetLockSettings(ctx context.Context) ([]*models.LockSetting, error) {
	return s.lockSettingRepo.FindAll(ctx)
}

// SetLockSetting creates or updates a lock setting
func (s *SettingsServiceImpl) SetLockSetting(ctx context.Context, key, value, description string) error {
	return s.lockSettingRepo.UpsertByKey(ctx, key, value, description)
}

// GetRewardSettings returns all reward settings
func (s *SettingsServiceImpl) GetRewardSettings(ctx context.Context) ([]*models.RewardSetting, error) {
	return s.rewardSettingRepo.FindAll(ctx)
}

// SetRewardSetting creates or updates a reward setting
func (s *SettingsServiceImpl) SetRewardSetting(ctx context.Context, key, value, description string) error {
	return s.rewardSettingRepo.UpsertByKey(ctx, key, value, description)
}
