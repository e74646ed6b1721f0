package mongodb

import (
	"context"
	"time"

	"github.com/shsyteam/shsy-staking-backend/internal/models"
	"github.com/shsyteam/shsy-staking-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RewardSettingRepository implements the repositories.RewardSettingRepository interface
type RewardSettingRepository struct {
	collection *mongo.Collection
}

// NewRewardSettingRepository creates a new RewardSettingRepository
func NewRewardSettingRepository(db *mongo.Database) repositories.RewardSettingRepository {
	return &RewardSettingRepository{
		collection: db.Collection("rewardSettings"),
	}
}

// FindByKey finds a reward setting by its key
func (r *RewardSettingRepository) FindByKey(ctx context.Context, key string) (*models.RewardSetting, error) {
	var setting models.RewardSetting
	err := r.collection.FindOne(ctx, bson.M{"settingKey": key}).Decode(&setting)
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// UpsertByKey creates or updates a reward setting
func (r *RewardSettingRepository) UpsertByKey(ctx context.Context, key, value, description string) error {
	filter := bson.M{"settingKey": key}
	update := bson.M{"$set": bson.M{
		"settingValue": value,
		"description":  description,
		"updatedAt":    time.Now(),
	}}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindAll returns all reward settings
func (r *RewardSettingRepository) FindAll(ctx context.Context) ([]*models.RewardSetting, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var settings []*models.RewardSetting
	if err := cursor.All(ctx, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}
