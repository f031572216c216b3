package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id primitive.ObjectID) (*Booking, error)
	SeatTaken(ctx context.Context, tripID primitive.ObjectID, seatNum string) (bool, error)
	SetBookingQRCode(ctx context.Context, id primitive.ObjectID, qr string) error
	ListBookings(ctx context.Context, userID *primitive.ObjectID) ([]*BookingView, error)
	UpdateBookingStatus(ctx context.Context, id primitive.ObjectID, status BookingStatus) (*Booking, error)
	CountBookingsByTrip(ctx context.Context, tripID primitive.ObjectID, status BookingStatus) (int64, error)
	CountBookingsByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// CreateBooking inserts the booking. The partial unique index on
// (trip_id, seat_num, status=confirmed) is the real guard: if a concurrent
// request already confirmed the seat, the insert fails with a duplicate key
// and the caller sees ErrConflict.
func (mdb *MongodbRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, DbName, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, booking); err != nil {
		return nil, AsRepoError(err)
	}
	return booking, nil
}

func (mdb *MongodbRepo) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, DbName, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var booking Booking
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		return nil, AsRepoError(err)
	}
	return &booking, nil
}

// SeatTaken reports whether a confirmed booking already holds the seat on the
// trip. Used as the friendly pre-check before the insert; the unique index
// has the final word.
func (mdb *MongodbRepo) SeatTaken(ctx context.Context, tripID primitive.ObjectID, seatNum string) (bool, error) {
	col, err := mdb.GetCollection(ctx, DbName, BookingColName)
	if err != nil {
		return false, fmt.Errorf("error getting collection: %v", err)
	}

	err = col.FindOne(ctx, bson.M{
		"trip_id":  tripID,
		"seat_num": seatNum,
		"status":   BookingConfirmed,
	}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (mdb *MongodbRepo) SetBookingQRCode(ctx context.Context, id primitive.ObjectID, qr string) error {
	col, err := mdb.GetCollection(ctx, DbName, BookingColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	_, err = col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"qr_code": qr}})
	return err
}

// ListBookings returns bookings joined with their trip and the owner's name
// and email. A nil userID returns every booking (staff view); otherwise only
// that user's bookings.
func (mdb *MongodbRepo) ListBookings(ctx context.Context, userID *primitive.ObjectID) ([]*BookingView, error) {
	col, err := mdb.GetCollection(ctx, DbName, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	match := bson.M{}
	if userID != nil {
		match["user_id"] = *userID
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$lookup": bson.M{
			"from":         TripColName,
			"localField":   "trip_id",
			"foreignField": "_id",
			"as":           "trip_docs",
		}},
		{"$lookup": bson.M{
			"from":         UserColName,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user_docs",
		}},
		{"$addFields": bson.M{
			"trip":       bson.M{"$first": "$trip_docs"},
			"user_name":  bson.M{"$first": "$user_docs.full_name"},
			"user_email": bson.M{"$first": "$user_docs.email"},
		}},
		{"$project": bson.M{"trip_docs": 0, "user_docs": 0}},
	}

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %v", err)
	}
	defer cursor.Close(ctx)

	var bookings []*BookingView
	for cursor.Next(ctx) {
		var b BookingView
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %v", err)
		}
		bookings = append(bookings, &b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return bookings, nil
}

func (mdb *MongodbRepo) UpdateBookingStatus(ctx context.Context, id primitive.ObjectID, status BookingStatus) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, DbName, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Booking
	err = col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		opts,
	).Decode(&updated)
	if err != nil {
		return nil, AsRepoError(err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) CountBookingsByTrip(ctx context.Context, tripID primitive.ObjectID, status BookingStatus) (int64, error) {
	col, err := mdb.GetCollection(ctx, DbName, BookingColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}
	filter := bson.M{"trip_id": tripID}
	if status != "" {
		filter["status"] = status
	}
	return col.CountDocuments(ctx, filter)
}

func (mdb *MongodbRepo) CountBookingsByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	col, err := mdb.GetCollection(ctx, DbName, BookingColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}
	return col.CountDocuments(ctx, bson.M{"user_id": userID})
}
