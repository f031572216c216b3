package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BusRepo interface {
	CreateBus(ctx context.Context, bus *Bus) (*Bus, error)
	GetBusByID(ctx context.Context, id primitive.ObjectID) (*Bus, error)
	ListBuses(ctx context.Context) ([]*BusView, error)
	UpdateBus(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*Bus, error)
	DeleteBus(ctx context.Context, id primitive.ObjectID) error
	CountBusesByOffice(ctx context.Context, officeID primitive.ObjectID) (int64, error)
}

type SeatRepo interface {
	ListSeatsByBus(ctx context.Context, busID primitive.ObjectID) ([]*Seat, error)
	ReplaceSeatsForBus(ctx context.Context, busID primitive.ObjectID, seats []*Seat) ([]*Seat, error)
}

func (mdb *MongodbRepo) CreateBus(ctx context.Context, bus *Bus) (*Bus, error) {
	col, err := mdb.GetCollection(ctx, DbName, BusColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if bus.ID.IsZero() {
		bus.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, bus); err != nil {
		return nil, AsRepoError(err)
	}
	return bus, nil
}

func (mdb *MongodbRepo) GetBusByID(ctx context.Context, id primitive.ObjectID) (*Bus, error) {
	col, err := mdb.GetCollection(ctx, DbName, BusColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var bus Bus
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&bus); err != nil {
		return nil, AsRepoError(err)
	}
	return &bus, nil
}

// ListBuses returns every bus joined with the owning office's name.
func (mdb *MongodbRepo) ListBuses(ctx context.Context) ([]*BusView, error) {
	col, err := mdb.GetCollection(ctx, DbName, BusColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	pipeline := []bson.M{
		{"$lookup": bson.M{
			"from":         OfficeColName,
			"localField":   "office_id",
			"foreignField": "_id",
			"as":           "office",
		}},
		{"$addFields": bson.M{
			"office_name": bson.M{"$first": "$office.office_name"},
		}},
		{"$project": bson.M{"office": 0}},
	}

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error listing buses: %v", err)
	}
	defer cursor.Close(ctx)

	var buses []*BusView
	for cursor.Next(ctx) {
		var b BusView
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding bus: %v", err)
		}
		buses = append(buses, &b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return buses, nil
}

func (mdb *MongodbRepo) UpdateBus(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*Bus, error) {
	col, err := mdb.GetCollection(ctx, DbName, BusColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Bus
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		return nil, AsRepoError(err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) DeleteBus(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, DbName, BusColName)
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

func (mdb *MongodbRepo) CountBusesByOffice(ctx context.Context, officeID primitive.ObjectID) (int64, error) {
	col, err := mdb.GetCollection(ctx, DbName, BusColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}
	return col.CountDocuments(ctx, bson.M{"office_id": officeID})
}

func (mdb *MongodbRepo) ListSeatsByBus(ctx context.Context, busID primitive.ObjectID) ([]*Seat, error) {
	col, err := mdb.GetCollection(ctx, DbName, SeatColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, bson.M{"bus_id": busID})
	if err != nil {
		return nil, fmt.Errorf("error listing seats: %v", err)
	}
	defer cursor.Close(ctx)

	var seats []*Seat
	for cursor.Next(ctx) {
		var s Seat
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("error decoding seat: %v", err)
		}
		seats = append(seats, &s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return seats, nil
}

// ReplaceSeatsForBus swaps out a bus's entire seat layout. Layout edits are a
// staff operation on reference data, so wholesale replacement is simpler and
// safer than diffing individual seats.
func (mdb *MongodbRepo) ReplaceSeatsForBus(ctx context.Context, busID primitive.ObjectID, seats []*Seat) ([]*Seat, error) {
	col, err := mdb.GetCollection(ctx, DbName, SeatColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if _, err := col.DeleteMany(ctx, bson.M{"bus_id": busID}); err != nil {
		return nil, fmt.Errorf("error clearing seats: %v", err)
	}
	if len(seats) == 0 {
		return []*Seat{}, nil
	}

	docs := make([]interface{}, 0, len(seats))
	for _, s := range seats {
		if s.ID.IsZero() {
			s.ID = primitive.NewObjectID()
		}
		s.BusID = busID
		docs = append(docs, s)
	}
	if _, err := col.InsertMany(ctx, docs); err != nil {
		return nil, AsRepoError(err)
	}
	return seats, nil
}
