package mongodb

import (
	"context"

	"github.com/shsyteam/shsy-staking-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ActivityRepository implements the repositories.ActivityRepository interface.
// It reads the collections written by the staking, riddle, and million-pool
// flows; this backend never mutates them.
type ActivityRepository struct {
	stakes      *mongo.Collection
	riddles     *mongo.Collection
	poolEntries *mongo.Collection
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *mongo.Database) repositories.ActivityRepository {
	return &ActivityRepository{
		stakes:      db.Collection("stakes"),
		riddles:     db.Collection("riddleSubmissions"),
		poolEntries: db.Collection("millionPoolParticipants"),
	}
}

// CountActiveStakes counts the user's stakes that have not been withdrawn
func (r *ActivityRepository) CountActiveStakes(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	filter := bson.M{
		"userId": userID,
		"status": bson.M{"$ne": "withdrawn"},
	}
	return r.stakes.CountDocuments(ctx, filter)
}

// CountRiddleSubmissions counts the user's riddle guesses
func (r *ActivityRepository) CountRiddleSubmissions(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.riddles.CountDocuments(ctx, bson.M{"userId": userID})
}

// CountActivePoolEntries counts the user's active million pool entries
func (r *ActivityRepository) CountActivePoolEntries(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	filter := bson.M{
		"userId":   userID,
		"isActive": true,
	}
	return r.poolEntries.CountDocuments(ctx, filter)
}
