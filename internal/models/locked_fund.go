package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LockedFund status values. A fund transitions locked -> withdrawn exactly
// once, after the external transfer of the locked portion has succeeded.
const (
	LockedFundStatusLocked    = "locked"
	LockedFundStatusWithdrawn = "withdrawn"
)

// LockedFund is the portion of a distributed reward withheld from immediate
// transfer until its maturity timestamp. Amounts are stored as decimal
// strings; lockPercentage and lockDays are snapshots of the lock settings at
// creation time.
type LockedFund struct {
	ID                    primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID                primitive.ObjectID `bson:"userId" json:"userId"`
	WalletAddress         string             `bson:"walletAddress" json:"walletAddress"`
	RewardType            string             `bson:"rewardType" json:"rewardType"`
	TokenType             string             `bson:"tokenType" json:"tokenType"`
	TotalRewardAmount     string             `bson:"totalRewardAmount" json:"totalRewardAmount"`
	LockedAmount          string             `bson:"lockedAmount" json:"lockedAmount"`
	AvailableAmount       string             `bson:"availableAmount" json:"availableAmount"`
	LockPercentage        int                `bson:"lockPercentage" json:"lockPercentage"`
	LockDays              int                `bson:"lockDays" json:"lockDays"`
	LockedAt              time.Time          `bson:"lockedAt" json:"lockedAt"`
	UnlocksAt             time.Time          `bson:"unlocksAt" json:"unlocksAt"`
	Status                string             `bson:"status" json:"status"`
	OriginalTransactionID string             `bson:"originalTransactionId,omitempty" json:"originalTransactionId,omitempty"`
	CreatedAt             time.Time          `bson:"createdAt" json:"createdAt"`
}

// RewardSplit is the result of splitting a reward into its locked and
// immediately available portions.
type RewardSplit struct {
	LockedAmount    float64 `json:"lockedAmount"`
	AvailableAmount float64 `json:"availableAmount"`
	LockPercentage  int     `json:"lockPercentage"`
	LockDays        int     `json:"lockDays"`
}
