package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lrbooking/models"
)

const settingsDocID = "company"

type MongoSettingsRepo struct {
	DB       *mongo.Client
	Database string
}

func NewMongoSettingsRepo(db *mongo.Client, database string) *MongoSettingsRepo {
	return &MongoSettingsRepo{DB: db, Database: database}
}

func (r *MongoSettingsRepo) SaveSettings(ctx context.Context, s *models.CompanySettings) error {
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now().UTC()
	}
	_, err := r.DB.Database(r.Database).Collection("settings").ReplaceOne(ctx,
		bson.M{"_id": settingsDocID},
		s,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *MongoSettingsRepo) GetSettings(ctx context.Context) (*models.CompanySettings, error) {
	var s models.CompanySettings
	err := r.DB.Database(r.Database).Collection("settings").FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
