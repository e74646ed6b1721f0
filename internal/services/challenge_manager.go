package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/shopspring/decimal"
	"github.com/shsyteam/shsy-staking-backend/internal/config"
	"github.com/shsyteam/shsy-staking-backend/internal/models"
	"github.com/shsyteam/shsy-staking-backend/internal/repositories"
	"github.com/shsyteam/shsy-staking-backend/internal/utils"
	"go.mongodb.org/mongo-driver/mongo"
)

// maxWinnersPerWindow caps how many participants are drawn when a window
// expires. Every participant has equal probability regardless of tenure.
const maxWinnersPerWindow = 5

// ChallengeManager owns the two global challenge tracks: their active
// windows, the participant sets, and the pending-reward ledger. Exactly one
// instance exists per process; the state is in-memory and does not survive a
// restart. All state is guarded by a single mutex so request-triggered
// mutations and the periodic expiry scan never interleave.
type ChallengeManager struct {
	mu             sync.Mutex
	rewardSettings repositories.RewardSettingRepository
	cfg            config.ChallengeConfig
	windows        map[models.Track]*models.ChallengeWindow
	participants   map[models.Track]map[string]struct{}
	pendingRewards map[string][]models.PendingReward // userID -> unclaimed rewards
	scheduler      gocron.Scheduler
	initialized    bool
}

// NewChallengeManager creates a new ChallengeManager. Initialize (or any
// lazily-initializing method) must run before the manager is useful; Start
// launches the periodic expiry scan.
func NewChallengeManager(rewardSettings repositories.RewardSettingRepository, cfg config.ChallengeConfig) *ChallengeManager {
	return &ChallengeManager{
		rewardSettings: rewardSettings,
		cfg:            cfg,
		windows:        make(map[models.Track]*models.ChallengeWindow),
		participants:   make(map[models.Track]map[string]struct{}),
		pendingRewards: make(map[string][]models.PendingReward),
	}
}

// Initialize creates the short and long windows and their empty participant
// sets. Idempotent; reward amounts are loaded from the reward settings with
// configured fallbacks.
func (m *ChallengeManager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initializeLocked(ctx)
}

func (m *ChallengeManager) initializeLocked(ctx context.Context) error {
	if m.initialized {
		return nil
	}

	slog.Info("Initializing global challenges")

	shortReward := m.loadRewardAmount(ctx, models.TrackShort, m.cfg.DefaultShortReward)
	longReward := m.loadRewardAmount(ctx, models.TrackLong, m.cfg.DefaultLongReward)

	now := time.Now()
	m.windows[models.TrackShort] = &models.ChallengeWindow{
		ID:           1,
		Track:        models.TrackShort,
		StartedAt:    now,
		Duration:     m.cfg.ShortDuration,
		RewardAmount: shortReward,
		Status:       models.ChallengeWindowActive,
	}
	m.windows[models.TrackLong] = &models.ChallengeWindow{
		ID:           2,
		Track:        models.TrackLong,
		StartedAt:    now,
		Duration:     m.cfg.LongDuration,
		RewardAmount: longReward,
		Status:       models.ChallengeWindowActive,
	}
	m.participants[models.TrackShort] = make(map[string]struct{})
	m.participants[models.TrackLong] = make(map[string]struct{})
	m.initialized = true

	slog.Info("Global challenges initialized",
		"shortReward", shortReward,
		"longReward", longReward,
		"shortDuration", m.cfg.ShortDuration,
		"longDuration", m.cfg.LongDuration,
	)
	return nil
}

// Start launches the periodic expiry scan. The scan runs until Stop is
// called at shutdown.
func (m *ChallengeManager) Start(ctx context.Context) error {
	if err := m.Initialize(ctx); err != nil {
		return err
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create challenge scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(m.cfg.ScanInterval),
		gocron.NewTask(func() {
			m.scanExpiredWindows(context.Background(), time.Now())
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule challenge scan: %w", err)
	}

	scheduler.Start()
	m.scheduler = scheduler
	slog.Info("Challenge expiry scan started", "interval", m.cfg.ScanInterval)
	return nil
}

// Stop halts the periodic expiry scan.
func (m *ChallengeManager) Stop() error {
	if m.scheduler == nil {
		return nil
	}
	return m.scheduler.Shutdown()
}

// AddUser inserts the user into both tracks' participant sets when eligible,
// and removes them from both when not. This is the sole membership mutation
// path; the external eligibility check calls it on every status query.
func (m *ChallengeManager) AddUser(ctx context.Context, userID, walletAddress string, isEligible bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.initializeLocked(ctx); err != nil {
		return err
	}

	if isEligible {
		m.participants[models.TrackShort][userID] = struct{}{}
		m.participants[models.TrackLong][userID] = struct{}{}
		slog.Debug("Added user to global challenges", "userId", userID, "wallet", utils.MaskWallet(walletAddress))
	} else {
		delete(m.participants[models.TrackShort], userID)
		delete(m.participants[models.TrackLong], userID)
		slog.Debug("Removed user from global challenges", "userId", userID, "wallet", utils.MaskWallet(walletAddress))
	}
	return nil
}

// RemoveUser unconditionally removes the user from both tracks.
func (m *ChallengeManager) RemoveUser(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	delete(m.participants[models.TrackShort], userID)
	delete(m.participants[models.TrackLong], userID)
	slog.Debug("Removed user from global challenges", "userId", userID)
}

// GetStatus returns a snapshot of both tracks plus the user's unclaimed
// rewards. Pass an empty userID for an anonymous snapshot.
func (m *ChallengeManager) GetStatus(ctx context.Context, userID string) (*models.ChallengeStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.initializeLocked(ctx); err != nil {
		return nil, err
	}

	now := time.Now()
	status := &models.ChallengeStatus{
		Challenges:     make([]models.ChallengeSnapshot, 0, 2),
		PendingRewards: make([]models.PendingReward, 0),
	}

	for _, track := range []models.Track{models.TrackShort, models.TrackLong} {
		status.Challenges = append(status.Challenges, m.snapshotLocked(track, userID, now))
	}

	if userID != "" {
		status.PendingRewards = append(status.PendingRewards, m.pendingRewards[userID]...)
	}
	return status, nil
}

func (m *ChallengeManager) snapshotLocked(track models.Track, userID string, now time.Time) models.ChallengeSnapshot {
	w := m.windows[track]
	elapsed := now.Sub(w.StartedAt)

	progress := elapsed.Seconds() / w.Duration.Seconds()
	if progress > 1 {
		progress = 1
	}

	_, isParticipating := m.participants[track][userID]
	return models.ChallengeSnapshot{
		ID:           w.ID,
		Track:        track,
		StartedAt:    w.StartedAt,
		RewardAmount: w.RewardAmount,
		Status:       w.Status,
		Progress: models.ChallengeProgress{
			ElapsedMinutes:     int(elapsed / time.Minute),
			TargetMinutes:      m.trackTargetMinutes(track),
			ProgressPercentage: progress * 100,
			IsCompleted:        elapsed >= w.Duration,
		},
		ParticipantCount: len(m.participants[track]),
		IsParticipating:  isParticipating,
	}
}

// ClaimReward removes the first unclaimed reward matching the track from the
// user's ledger. Returns false when there is nothing to claim. It does not
// transfer tokens; callers follow a successful claim with RewardLocker and
// an external distribution.
func (m *ChallengeManager) ClaimReward(userID string, track models.Track) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rewards := m.pendingRewards[userID]
	for i, r := range rewards {
		if r.Track == track {
			m.pendingRewards[userID] = append(rewards[:i], rewards[i+1:]...)
			if len(m.pendingRewards[userID]) == 0 {
				delete(m.pendingRewards, userID)
			}
			slog.Info("User claimed challenge reward", "userId", userID, "track", track, "rewardAmount", r.RewardAmount)
			return true
		}
	}
	return false
}

// GetPendingRewards returns a copy of the user's unclaimed rewards.
func (m *ChallengeManager) GetPendingRewards(userID string) []models.PendingReward {
	m.mu.Lock()
	defer m.mu.Unlock()

	rewards := make([]models.PendingReward, len(m.pendingRewards[userID]))
	copy(rewards, m.pendingRewards[userID])
	return rewards
}

// ReloadRewardSettings re-reads the reward settings and applies them to the
// live windows, so admin changes take effect without waiting for a rotation.
func (m *ChallengeManager) ReloadRewardSettings(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return nil
	}

	for _, track := range []models.Track{models.TrackShort, models.TrackLong} {
		w := m.windows[track]
		w.RewardAmount = m.loadRewardAmount(ctx, track, w.RewardAmount)
	}
	return nil
}

// scanExpiredWindows rolls over every track whose window has run its full
// duration. The replacement window starts at the scan instant, so a track is
// never without an active window.
func (m *ChallengeManager) scanExpiredWindows(ctx context.Context, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}

	for _, track := range []models.Track{models.TrackShort, models.TrackLong} {
		w := m.windows[track]
		if now.Sub(w.StartedAt) >= w.Duration {
			m.rolloverLocked(ctx, track, now)
		}
	}
}

// rolloverLocked completes one expired window: draws winners, credits their
// pending rewards at the window's current amount, and starts the replacement
// window with the participant set carried forward. Caller holds the mutex.
func (m *ChallengeManager) rolloverLocked(ctx context.Context, track models.Track, now time.Time) {
	w := m.windows[track]
	ids := make([]string, 0, len(m.participants[track]))
	for id := range m.participants[track] {
		ids = append(ids, id)
	}

	slog.Info("Processing completed challenge window", "track", track, "windowId", w.ID, "participants", len(ids))

	if len(ids) > 0 {
		winners := selectWinners(ids, maxWinnersPerWindow)
		for _, userID := range winners {
			m.pendingRewards[userID] = append(m.pendingRewards[userID], models.PendingReward{
				Track:        track,
				RewardAmount: w.RewardAmount,
				WonAt:        now,
			})
		}
		slog.Info("Selected challenge winners", "track", track, "windowId", w.ID, "winners", len(winners))
	}

	// Admin reward changes take effect at each rotation.
	reward := m.loadRewardAmount(ctx, track, w.RewardAmount)

	m.windows[track] = &models.ChallengeWindow{
		ID:           w.ID + 1,
		Track:        track,
		StartedAt:    now,
		Duration:     w.Duration,
		RewardAmount: reward,
		Status:       models.ChallengeWindowActive,
	}
	slog.Info("Restarted challenge window", "track", track, "windowId", w.ID+1, "participants", len(m.participants[track]))
}

// selectWinners draws up to max distinct winners uniformly at random.
func selectWinners(participants []string, max int) []string {
	shuffled := make([]string, len(participants))
	copy(shuffled, participants)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > max {
		shuffled = shuffled[:max]
	}
	return shuffled
}

// loadRewardAmount reads the track's reward setting, normalized to 8 decimal
// places. Missing or malformed settings fall back to the supplied amount.
func (m *ChallengeManager) loadRewardAmount(ctx context.Context, track models.Track, fallback string) string {
	setting, err := m.rewardSettings.FindByKey(ctx, rewardSettingKey(track))
	if err != nil {
		if err != mongo.ErrNoDocuments {
			slog.Error("Failed to load reward setting, keeping current amount", "error", err, "track", track)
		}
		return normalizeAmount(fallback, fallback)
	}
	return normalizeAmount(setting.SettingValue, fallback)
}

func rewardSettingKey(track models.Track) string {
	if track == models.TrackShort {
		return models.RewardSettingShort
	}
	return models.RewardSettingLong
}

func (m *ChallengeManager) trackTargetMinutes(track models.Track) int {
	if track == models.TrackShort {
		return m.cfg.ShortTargetMinutes
	}
	return m.cfg.LongTargetMinutes
}

// normalizeAmount renders a decimal string with 8 fractional digits,
// returning the fallback unchanged when the value does not parse.
func normalizeAmount(value, fallback string) string {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return fallback
	}
	return d.StringFixed(8)
}
