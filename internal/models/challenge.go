package models

import (
	"time"
)

// Track identifies one of the two parallel global challenge timers.
// The labels are opaque identifiers; durations and progress targets are
// configured independently per track.
type Track string

const (
	TrackShort Track = "short"
	TrackLong  Track = "long"
)

// ChallengeWindowStatus values
const (
	ChallengeWindowActive = "active"
)

// ChallengeWindow is one finite-duration instance of a track. On expiry it is
// replaced in place by a new window with an incremented ID; a track never has
// more than one window at a time.
type ChallengeWindow struct {
	ID           int           `json:"id"`
	Track        Track         `json:"track"`
	StartedAt    time.Time     `json:"startedAt"`
	Duration     time.Duration `json:"-"`
	RewardAmount string        `json:"rewardAmount"`
	Status       string        `json:"status"`
}

// PendingReward is a won-but-unclaimed challenge reward credited to a user
// after a window's winner draw. The reward amount is a snapshot of the
// window's configured reward at win time.
type PendingReward struct {
	Track        Track     `json:"track"`
	RewardAmount string    `json:"rewardAmount"`
	WonAt        time.Time `json:"wonAt"`
}

// ChallengeProgress describes how far an active window has advanced.
type ChallengeProgress struct {
	ElapsedMinutes     int     `json:"elapsedMinutes"`
	TargetMinutes      int     `json:"targetMinutes"`
	ProgressPercentage float64 `json:"progressPercentage"`
	IsCompleted        bool    `json:"isCompleted"`
}

// ChallengeSnapshot is a read-only view of one track's active window.
type ChallengeSnapshot struct {
	ID               int               `json:"id"`
	Track            Track             `json:"track"`
	StartedAt        time.Time         `json:"startedAt"`
	RewardAmount     string            `json:"rewardAmount"`
	Status           string            `json:"status"`
	Progress         ChallengeProgress `json:"progress"`
	ParticipantCount int               `json:"participantCount"`
	IsParticipating  bool              `json:"isParticipating"`
}

// ChallengeStatus is the full status payload returned to clients: both
// tracks' snapshots plus the requesting user's unclaimed rewards.
type ChallengeStatus struct {
	Challenges     []ChallengeSnapshot `json:"challenges"`
	PendingRewards []PendingReward     `json:"pendingRewards"`
}

// Eligibility reports whether a user qualifies to participate in the global
// challenges and which qualifying activity was found.
type Eligibility struct {
	IsEligible   bool   `json:"isEligible"`
	HasStakes    bool   `json:"hasStakes"`
	HasGuesses   bool   `json:"hasGuesses"`
	HasPoolEntry bool   `json:"hasPoolEntry"`
	Message      string `json:"message"`
}
