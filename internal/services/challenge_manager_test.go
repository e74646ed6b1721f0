package services

import (
	"context"
	"testing"
	"time"

	"github.com/shsyteam/shsy-staking-backend/internal/config"
	"github.com/shsyteam/shsy-staking-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRewardSettingRepo struct {
	settings map[string]string
}

func newFakeRewardSettingRepo() *fakeRewardSettingRepo {
	return &fakeRewardSettingRepo{settings: make(map[string]string)}
}

func (r *fakeRewardSettingRepo) FindByKey(ctx context.Context, key string) (*models.RewardSetting, error) {
	value, ok := r.settings[key]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &models.RewardSetting{SettingKey: key, SettingValue: value}, nil
}

func (r *fakeRewardSettingRepo) UpsertByKey(ctx context.Context, key, value, description string) error {
	r.settings[key] = value
	return nil
}

func (r *fakeRewardSettingRepo) FindAll(ctx context.Context) ([]*models.RewardSetting, error) {
	all := make([]*models.RewardSetting, 0, len(r.settings))
	for key, value := range r.settings {
		all = append(all, &models.RewardSetting{SettingKey: key, SettingValue: value})
	}
	return all, nil
}

func testChallengeConfig() config.ChallengeConfig {
	return config.ChallengeConfig{
		ScanInterval:       30 * time.Second,
		ShortDuration:      240 * time.Hour,
		LongDuration:       720 * time.Hour,
		ShortTargetMinutes: 14400,
		LongTargetMinutes:  43200,
		DefaultShortReward: "20",
		DefaultLongReward:  "45",
	}
}

func newTestChallengeManager(t *testing.T) (*ChallengeManager, *fakeRewardSettingRepo) {
	t.Helper()
	rewardSettings := newFakeRewardSettingRepo()
	manager := NewChallengeManager(rewardSettings, testChallengeConfig())
	require.NoError(t, manager.Initialize(context.Background()))
	return manager, rewardSettings
}

func TestInitializeCreatesBothWindows(t *testing.T) {
	manager, _ := newTestChallengeManager(t)

	status, err := manager.GetStatus(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, status.Challenges, 2)

	short, long := status.Challenges[0], status.Challenges[1]
	assert.Equal(t, models.TrackShort, short.Track)
	assert.Equal(t, models.TrackLong, long.Track)
	assert.Equal(t, models.ChallengeWindowActive, short.Status)
	assert.Equal(t, "20.00000000", short.RewardAmount)
	assert.Equal(t, "45.00000000", long.RewardAmount)
	assert.Equal(t, 14400, short.Progress.TargetMinutes)
	assert.Equal(t, 43200, long.Progress.TargetMinutes)
}

func TestInitializeIsIdempotent(t *testing.T) {
	manager, _ := newTestChallengeManager(t)

	first, err := manager.GetStatus(context.Background(), "")
	require.NoError(t, err)

	require.NoError(t, manager.Initialize(context.Background()))
	second, err := manager.GetStatus(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, first.Challenges[0].ID, second.Challenges[0].ID)
	assert.Equal(t, first.Challenges[0].StartedAt, second.Challenges[0].StartedAt)
}

func TestInitializeUsesStoredRewardSettings(t *testing.T) {
	rewardSettings := newFakeRewardSettingRepo()
	rewardSettings.settings[models.RewardSettingShort] = "12.5"
	manager := NewChallengeManager(rewardSettings, testChallengeConfig())
	require.NoError(t, manager.Initialize(context.Background()))

	status, err := manager.GetStatus(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "12.50000000", status.Challenges[0].RewardAmount)
	assert.Equal(t, "45.00000000", status.Challenges[1].RewardAmount)
}

func TestAddUserMembership(t *testing.T) {
	manager, _ := newTestChallengeManager(t)
	ctx := context.Background()

	require.NoError(t, manager.AddUser(ctx, "user-1", "wallet-1", true))
	require.NoError(t, manager.AddUser(ctx, "user-1", "wallet-1", true)) // idempotent

	status, err := manager.GetStatus(ctx, "user-1")
	require.NoError(t, err)
	for _, c := range status.Challenges {
		assert.True(t, c.IsParticipating)
		assert.Equal(t, 1, c.ParticipantCount)
	}

	// Losing eligibility removes the user from both tracks.
	require.NoError(t, manager.AddUser(ctx, "user-1", "wallet-1", false))
	status, err = manager.GetStatus(ctx, "user-1")
	require.NoError(t, err)
	for _, c := range status.Challenges {
		assert.False(t, c.IsParticipating)
		assert.Equal(t, 0, c.ParticipantCount)
	}
}

func TestRemoveUser(t *testing.T) {
	manager, _ := newTestChallengeManager(t)
	ctx := context.Background()

	require.NoError(t, manager.AddUser(ctx, "user-1", "wallet-1", true))
	manager.RemoveUser("user-1")

	status, err := manager.GetStatus(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, status.Challenges[0].IsParticipating)
}

func TestSelectWinnersCapsAtMax(t *testing.T) {
	participants := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	winners := selectWinners(participants, maxWinnersPerWindow)
	assert.Len(t, winners, maxWinnersPerWindow)

	seen := make(map[string]struct{})
	for _, w := range winners {
		_, dup := seen[w]
		assert.False(t, dup, "winner %q drawn twice", w)
		seen[w] = struct{}{}
		assert.Contains(t, participants, w)
	}
}

func TestSelectWinnersSmallPool(t *testing.T) {
	winners := selectWinners([]string{"a", "b"}, maxWinnersPerWindow)
	assert.ElementsMatch(t, []string{"a", "b"}, winners)

	assert.Empty(t, selectWinners(nil, maxWinnersPerWindow))
}

func TestWindowRolloverCreditsWinners(t *testing.T) {
	manager, _ := newTestChallengeManager(t)
	ctx := context.Background()

	for _, id := range []string{"user-1", "user-2", "user-3"} {
		require.NoError(t, manager.AddUser(ctx, id, "wallet-"+id, true))
	}

	before, err := manager.GetStatus(ctx, "")
	require.NoError(t, err)
	shortID := before.Challenges[0].ID

	// Both windows have run their full duration at this instant.
	expiry := time.Now().Add(testChallengeConfig().LongDuration + time.Minute)
	manager.scanExpiredWindows(ctx, expiry)

	after, err := manager.GetStatus(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, shortID+1, after.Challenges[0].ID, "rollover must start a fresh window")

	// Three participants, cap of five: everyone wins on both tracks.
	for _, id := range []string{"user-1", "user-2", "user-3"} {
		rewards := manager.GetPendingRewards(id)
		require.Len(t, rewards, 2, "user %s should win on both tracks", id)
		tracks := []models.Track{rewards[0].Track, rewards[1].Track}
		assert.ElementsMatch(t, []models.Track{models.TrackShort, models.TrackLong}, tracks)
	}

	// The participant set carries forward into the new window.
	status, err := manager.GetStatus(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, status.Challenges[0].IsParticipating)
	assert.Equal(t, 3, status.Challenges[0].ParticipantCount)
}

func TestScanLeavesRunningWindowsAlone(t *testing.T) {
	manager, _ := newTestChallengeManager(t)
	ctx := context.Background()
	require.NoError(t, manager.AddUser(ctx, "user-1", "wallet-1", true))

	before, err := manager.GetStatus(ctx, "")
	require.NoError(t, err)

	manager.scanExpiredWindows(ctx, time.Now().Add(time.Hour))

	after, err := manager.GetStatus(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, before.Challenges[0].ID, after.Challenges[0].ID)
	assert.Empty(t, manager.GetPendingRewards("user-1"))
}

func TestClaimRewardExactlyOnce(t *testing.T) {
	manager, _ := newTestChallengeManager(t)
	ctx := context.Background()
	require.NoError(t, manager.AddUser(ctx, "user-1", "wallet-1", true))

	expiry := time.Now().Add(testChallengeConfig().LongDuration + time.Minute)
	manager.scanExpiredWindows(ctx, expiry)
	require.Len(t, manager.GetPendingRewards("user-1"), 2)

	assert.True(t, manager.ClaimReward("user-1", models.TrackShort))
	assert.False(t, manager.ClaimReward("user-1", models.TrackShort), "a reward can only be claimed once")

	remaining := manager.GetPendingRewards("user-1")
	require.Len(t, remaining, 1)
	assert.Equal(t, models.TrackLong, remaining[0].Track)

	assert.True(t, manager.ClaimReward("user-1", models.TrackLong))
	assert.Empty(t, manager.GetPendingRewards("user-1"))
}

func TestClaimRewardUnknownUser(t *testing.T) {
	manager, _ := newTestChallengeManager(t)
	assert.False(t, manager.ClaimReward("nobody", models.TrackShort))
}

func TestRewardSettingAppliedAtRotation(t *testing.T) {
	manager, rewardSettings := newTestChallengeManager(t)
	ctx := context.Background()
	require.NoError(t, manager.AddUser(ctx, "user-1", "wallet-1", true))

	require.NoError(t, rewardSettings.UpsertByKey(ctx, models.RewardSettingShort, "99", ""))

	expiry := time.Now().Add(testChallengeConfig().LongDuration + time.Minute)
	manager.scanExpiredWindows(ctx, expiry)

	// The winner was credited at the expired window's amount; the new window
	// carries the updated setting.
	rewards := manager.GetPendingRewards("user-1")
	require.Len(t, rewards, 2)
	for _, r := range rewards {
		if r.Track == models.TrackShort {
			assert.Equal(t, "20.00000000", r.RewardAmount)
		}
	}

	status, err := manager.GetStatus(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "99.00000000", status.Challenges[0].RewardAmount)
}

func TestReloadRewardSettingsAppliesImmediately(t *testing.T) {
	manager, rewardSettings := newTestChallengeManager(t)
	ctx := context.Background()

	require.NoError(t, rewardSettings.UpsertByKey(ctx, models.RewardSettingLong, "77.5", ""))
	require.NoError(t, manager.ReloadRewardSettings(ctx))

	status, err := manager.GetStatus(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "77.50000000", status.Challenges[1].RewardAmount)
}

func TestProgressPercentageIsCapped(t *testing.T) {
	cfg := testChallengeConfig()
	cfg.ShortDuration = time.Nanosecond
	cfg.LongDuration = time.Nanosecond
	manager := NewChallengeManager(newFakeRewardSettingRepo(), cfg)
	require.NoError(t, manager.Initialize(context.Background()))

	time.Sleep(time.Millisecond)
	status, err := manager.GetStatus(context.Background(), "")
	require.NoError(t, err)
	for _, c := range status.Challenges {
		assert.Equal(t, 100.0, c.Progress.ProgressPercentage)
		assert.True(t, c.Progress.IsCompleted)
	}
}

func TestStartAndStopScheduler(t *testing.T) {
	manager := NewChallengeManager(newFakeRewardSettingRepo(), testChallengeConfig())

	require.NoError(t, manager.Start(context.Background()))
	require.NoError(t, manager.Stop())
}

func TestStopWithoutStart(t *testing.T) {
	manager := NewChallengeManager(newFakeRewardSettingRepo(), testChallengeConfig())
	assert.NoError(t, manager.Stop())
}

func TestNormalizeAmount(t *testing.T) {
	assert.Equal(t, "20.00000000", normalizeAmount("20", "0"))
	assert.Equal(t, "12.34567890", normalizeAmount("12.3456789", "0"))
	assert.Equal(t, "fallback", normalizeAmount("garbage", "fallback"))
}
