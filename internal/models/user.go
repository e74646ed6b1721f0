package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a dapp user identified by their wallet address.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	WalletAddress string             `bson:"walletAddress" json:"walletAddress"`
	Username      string             `bson:"username,omitempty" json:"username,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
