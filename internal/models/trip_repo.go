package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TripRepo interface {
	CreateTrip(ctx context.Context, trip *Trip) (*Trip, error)
	GetTripByID(ctx context.Context, id primitive.ObjectID) (*TripView, error)
	ListTrips(ctx context.Context, filter TripFilter) ([]*TripView, error)
	UpdateTrip(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*Trip, error)
	DeleteTrip(ctx context.Context, id primitive.ObjectID) error
	CountTripsByOffice(ctx context.Context, officeID primitive.ObjectID) (int64, error)
	CountTripsByBus(ctx context.Context, busID primitive.ObjectID) (int64, error)
}

func (mdb *MongodbRepo) CreateTrip(ctx context.Context, trip *Trip) (*Trip, error) {
	col, err := mdb.GetCollection(ctx, DbName, TripColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if trip.ID.IsZero() {
		trip.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, trip); err != nil {
		return nil, AsRepoError(err)
	}
	return trip, nil
}

func tripLookupStages() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         OfficeColName,
			"localField":   "office_id",
			"foreignField": "_id",
			"as":           "office_docs",
		}},
		{"$lookup": bson.M{
			"from":         BusColName,
			"localField":   "bus_id",
			"foreignField": "_id",
			"as":           "bus_docs",
		}},
		{"$addFields": bson.M{
			"office": bson.M{"$first": "$office_docs"},
			"bus":    bson.M{"$first": "$bus_docs"},
		}},
		{"$project": bson.M{"office_docs": 0, "bus_docs": 0}},
	}
}

func (mdb *MongodbRepo) GetTripByID(ctx context.Context, id primitive.ObjectID) (*TripView, error) {
	col, err := mdb.GetCollection(ctx, DbName, TripColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	pipeline := append([]bson.M{{"$match": bson.M{"_id": id}}}, tripLookupStages()...)
	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error finding trip: %v", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("cursor error: %v", err)
		}
		return nil, ErrNotFound
	}
	var t TripView
	if err := cursor.Decode(&t); err != nil {
		return nil, fmt.Errorf("error decoding trip: %v", err)
	}
	return &t, nil
}

// ListTrips returns trips matching the filter, each joined with its office
// and bus. The date filter is a half-open day window on departure_time.
func (mdb *MongodbRepo) ListTrips(ctx context.Context, filter TripFilter) ([]*TripView, error) {
	col, err := mdb.GetCollection(ctx, DbName, TripColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	match := bson.M{}
	if filter.DepartureCity != "" {
		match["departure_city"] = filter.DepartureCity
	}
	if filter.ArrivalCity != "" {
		match["arrival_city"] = filter.ArrivalCity
	}
	if filter.Date != nil {
		// Callers normalize Date to midnight; the window covers that whole day.
		match["departure_time"] = bson.M{
			"$gte": *filter.Date,
			"$lt":  filter.Date.AddDate(0, 0, 1),
		}
	}

	pipeline := append([]bson.M{{"$match": match}}, tripLookupStages()...)
	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error listing trips: %v", err)
	}
	defer cursor.Close(ctx)

	var trips []*TripView
	for cursor.Next(ctx) {
		var t TripView
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("error decoding trip: %v", err)
		}
		trips = append(trips, &t)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return trips, nil
}

func (mdb *MongodbRepo) UpdateTrip(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*Trip, error) {
	col, err := mdb.GetCollection(ctx, DbName, TripColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Trip
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		return nil, AsRepoError(err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) DeleteTrip(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, DbName, TripColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (mdb *MongodbRepo) CountTripsByOffice(ctx context.Context, officeID primitive.ObjectID) (int64, error) {
	col, err := mdb.GetCollection(ctx, DbName, TripColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}
	return col.CountDocuments(ctx, bson.M{"office_id": officeID})
}

func (mdb *MongodbRepo) CountTripsByBus(ctx context.Context, busID primitive.ObjectID) (int64, error) {
	col, err := mdb.GetCollection(ctx, DbName, TripColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}
	return col.CountDocuments(ctx, bson.M{"bus_id": busID})
}
