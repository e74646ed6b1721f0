package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lock setting keys
const (
	LockSettingPercentage = "lock_percentage"
	LockSettingDays       = "lock_days"
)

// Reward setting keys, one per challenge track
const (
	RewardSettingShort = "participation_short"
	RewardSettingLong  = "participation_long"
)

// LockSetting is one admin-controlled reward-locking parameter.
type LockSetting struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SettingKey   string             `bson:"settingKey" json:"settingKey"`
	SettingValue string             `bson:"settingValue" json:"settingValue"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RewardSetting is one admin-controlled challenge reward amount.
type RewardSetting struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SettingKey   string             `bson:"settingKey" json:"settingKey"`
	SettingValue string             `bson:"settingValue" json:"settingValue"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
