package mongodb

import (
	"context"
	"time"

	"github.com/shsyteam/shsy-staking-backend/internal/models"
	"github.com/shsyteam/shsy-staking-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LockedFundRepository implements the repositories.LockedFundRepository interface
type LockedFundRepository struct {
	collection *mongo.Collection
}

// NewLockedFundRepository creates a new LockedFundRepository
func NewLockedFundRepository(db *mongo.Database) repositories.LockedFundRepository {
	return &LockedFundRepository{
		collection: db.Collection("lockedFunds"),
	}
}

// Create inserts a new locked fund record
func (r *LockedFundRepository) Create(ctx context.Context, fund *models.LockedFund) error {
	fund.CreatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, fund)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		fund.ID = id
	}
	return nil
}

// FindByID finds a locked fund by ID
func (r *LockedFundRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.LockedFund, error) {
	var fund models.LockedFund
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&fund)
	if err != nil {
		return nil, err
	}
	return &fund, nil
}

// FindByWallet finds all locked funds for a wallet, newest first
func (r *LockedFundRepository) FindByWallet(ctx context.Context, walletAddress string) ([]*models.LockedFund, error) {
	opts := options.Find().SetSort(bson.M{"lockedAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{"walletAddress": walletAddress}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var funds []*models.LockedFund
	if err := cursor.All(ctx, &funds); err != nil {
		return nil, err
	}
	return funds, nil
}

// FindAvailableByWallet finds locked funds that have reached maturity and are
// still in locked status
func (r *LockedFundRepository) FindAvailableByWallet(ctx context.Context, walletAddress string, now time.Time) ([]*models.LockedFund, error) {
	filter := bson.M{
		"walletAddress": walletAddress,
		"status":        models.LockedFundStatusLocked,
		"unlocksAt":     bson.M{"$lte": now},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var funds []*models.LockedFund
	if err := cursor.All(ctx, &funds); err != nil {
		return nil, err
	}
	return funds, nil
}

// MarkWithdrawn transitions a fund from locked to withdrawn and returns the
// updated record. Returns mongo.ErrNoDocuments if no locked fund matches.
func (r *LockedFundRepository) MarkWithdrawn(ctx context.Context, id primitive.ObjectID) (*models.LockedFund, error) {
	filter := bson.M{"_id": id, "status": models.LockedFundStatusLocked}
	update := bson.M{"$set": bson.M{"status": models.LockedFundStatusWithdrawn}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var fund models.LockedFund
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&fund)
	if err != nil {
		return nil, err
	}
	return &fund, nil
}
