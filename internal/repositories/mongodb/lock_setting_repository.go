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

// LockSettingRepository implements the repositories.LockSettingRepository interface
type LockSettingRepository struct {
	collection *mongo.Collection
}

// NewLockSettingRepository creates a new LockSettingRepository
func NewLockSettingRepository(db *mongo.Database) repositories.LockSettingRepository {
	return &LockSettingRepository{
		collection: db.Collection("lockSettings"),
	}
}

// FindByKey finds a lock setting by its key
func (r *LockSettingRepository) FindByKey(ctx context.Context, key string) (*models.LockSetting, error) {
	var setting models.LockSetting
	err := r.collection.FindOne(ctx, bson.M{"settingKey": key}).Decode(&setting)
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// UpsertByKey creates or updates a lock setting
func (r *LockSettingRepository) UpsertByKey(ctx context.Context, key, value, description string) error {
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

// FindAll returns all lock settings
func (r *LockSettingRepository) FindAll(ctx context.Context) ([]*models.LockSetting, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var settings []*models.LockSetting
	if err := cursor.All(ctx, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}
