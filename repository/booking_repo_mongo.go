package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lrbooking/models"
)

const (
	bookingsCollection = "bookings"
	countersCollection = "counters"
	bookingCounterID   = "bookings"
)

type MongoBookingRepo struct {
	DB       *mongo.Client
	Database string

	seedMu sync.Mutex
	seeded bool
}

func NewMongoBookingRepo(db *mongo.Client, database string) *MongoBookingRepo {
	return &MongoBookingRepo{DB: db, Database: database}
}

func (r *MongoBookingRepo) collection(name string) *mongo.Collection {
	return r.DB.Database(r.Database).Collection(name)
}

// CreateBooking inserts one flattened booking document keyed by its LR number.
func (r *MongoBookingRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection(bookingsCollection).InsertOne(ctx, b)
	return err
}

func (r *MongoBookingRepo) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := r.collection(bookingsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *MongoBookingRepo) ListBookings(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error) {
	bsonFilter := bson.M{}
	if filter.Status != "" {
		bsonFilter["status"] = filter.Status
	}
	if filter.BookingType != "" {
		bsonFilter["bookingType"] = filter.BookingType
	}
	if filter.Destination != "" {
		bsonFilter["destination"] = filter.Destination
	}

	cur, err := r.collection(bookingsCollection).Find(ctx, bsonFilter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Booking
	for cur.Next(ctx) {
		var b models.Booking
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, cur.Err()
}

// UpdateBooking sets only the editable fields so a concurrent transition is kept.
func (r *MongoBookingRepo) UpdateBooking(ctx context.Context, id string, patch EditPatch) (*models.Booking, error) {
	var b models.Booking
	err := r.collection(bookingsCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M(patch.fields())},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *MongoBookingRepo) ApplyTransition(ctx context.Context, id string, from models.Status, patch TransitionPatch) (bool, error) {
	set := bson.M{
		"status":    patch.To,
		"updatedAt": patch.UpdatedAt,
	}
	if patch.DateField != "" {
		set[string(patch.DateField)] = patch.Date
	}
	if patch.Receiver != nil {
		set["receiver"] = patch.Receiver
	}
	if patch.DeliveryDiscount != nil {
		set["deliveryDiscount"] = *patch.DeliveryDiscount
	}

	res, err := r.collection(bookingsCollection).UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *MongoBookingRepo) UpdatePDFURL(ctx context.Context, id, url string, t time.Time) error {
	_, err := r.collection(bookingsCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"pdfUrl": url, "updatedAt": t}},
	)
	return err
}

func (r *MongoBookingRepo) DeleteBooking(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := r.collection(bookingsCollection).FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// NextSequence increments the booking counter atomically. The first call
// raises the counter to the highest PT<n> already stored so documents
// written before the counter existed are never reissued.
func (r *MongoBookingRepo) NextSequence(ctx context.Context) (int64, error) {
	if err := r.seedCounter(ctx); err != nil {
		return 0, err
	}

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": bookingCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func (r *MongoBookingRepo) seedCounter(ctx context.Context) error {
	r.seedMu.Lock()
	defer r.seedMu.Unlock()
	if r.seeded {
		return nil
	}

	cur, err := r.collection(bookingsCollection).Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return err
		}
		ids = append(ids, doc.ID)
	}
	if err := cur.Err(); err != nil {
		return err
	}

	// $max never lowers a counter another instance already advanced.
	_, err = r.collection(countersCollection).UpdateOne(ctx,
		bson.M{"_id": bookingCounterID},
		bson.M{"$max": bson.M{"seq": maxSequence(ids)}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}
	r.seeded = true
	return nil
}
