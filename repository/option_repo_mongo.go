package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lrbooking/models"
)

// MongoOptionRepo implements OptionStore and PartyCache.
type MongoOptionRepo struct {
	DB       *mongo.Client
	Database string
}

func NewMongoOptionRepo(db *mongo.Client, database string) *MongoOptionRepo {
	return &MongoOptionRepo{DB: db, Database: database}
}

func (r *MongoOptionRepo) collection(name string) *mongo.Collection {
	return r.DB.Database(r.Database).Collection(name)
}

func (r *MongoOptionRepo) List(ctx context.Context, key string) ([]string, error) {
	var doc struct {
		Values []string `bson:"values"`
	}
	err := r.collection("options").FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []string{}, nil
		}
		return nil, err
	}
	return doc.Values, nil
}

func (r *MongoOptionRepo) Add(ctx context.Context, key, value string) error {
	_, err := r.collection("options").UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$addToSet": bson.M{"values": value}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *MongoOptionRepo) Consignees(ctx context.Context, destination string) ([]models.Party, error) {
	cur, err := r.collection("consignee_cache").Find(ctx, bson.M{"destination": destination})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Party{}
	for cur.Next(ctx) {
		var doc struct {
			Party models.Party `bson:"party"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.Party)
	}
	return out, cur.Err()
}

func (r *MongoOptionRepo) AddConsignee(ctx context.Context, destination string, p models.Party) error {
	_, err := r.collection("consignee_cache").UpdateOne(ctx,
		bson.M{"_id": destination + "|" + p.Key()},
		bson.M{"$setOnInsert": bson.M{"destination": destination, "party": p}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *MongoOptionRepo) Address(ctx context.Context, destination string) (string, error) {
	var doc struct {
		Address string `bson:"address"`
	}
	err := r.collection("address_cache").FindOne(ctx, bson.M{"_id": destination}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil
		}
		return "", err
	}
	return doc.Address, nil
}

func (r *MongoOptionRepo) AddAddress(ctx context.Context, destination, address string) error {
	_, err := r.collection("address_cache").UpdateOne(ctx,
		bson.M{"_id": destination},
		bson.M{"$setOnInsert": bson.M{"address": address}},
		options.Update().SetUpsert(true),
	)
	return err
}
