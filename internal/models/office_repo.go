package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OfficeRepo interface {
	CreateOffice(ctx context.Context, office *Office) (*Office, error)
	GetOfficeByID(ctx context.Context, id primitive.ObjectID) (*Office, error)
	ListOffices(ctx context.Context) ([]*Office, error)
	UpdateOffice(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*Office, error)
	DeleteOffice(ctx context.Context, id primitive.ObjectID) error
}

func (mdb *MongodbRepo) CreateOffice(ctx context.Context, office *Office) (*Office, error) {
	col, err := mdb.GetCollection(ctx, DbName, OfficeColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if office.ID.IsZero() {
		office.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, office); err != nil {
		return nil, AsRepoError(err)
	}
	return office, nil
}

func (mdb *MongodbRepo) GetOfficeByID(ctx context.Context, id primitive.ObjectID) (*Office, error) {
	col, err := mdb.GetCollection(ctx, DbName, OfficeColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var office Office
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&office); err != nil {
		return nil, AsRepoError(err)
	}
	return &office, nil
}

func (mdb *MongodbRepo) ListOffices(ctx context.Context) ([]*Office, error) {
	col, err := mdb.GetCollection(ctx, DbName, OfficeColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	cursor, err := col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error listing offices: %v", err)
	}
	defer cursor.Close(ctx)

	var offices []*Office
	for cursor.Next(ctx) {
		var o Office
		if err := cursor.Decode(&o); err != nil {
			return nil, fmt.Errorf("error decoding office: %v", err)
		}
		offices = append(offices, &o)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return offices, nil
}

func (mdb *MongodbRepo) UpdateOffice(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*Office, error) {
	col, err := mdb.GetCollection(ctx, DbName, OfficeColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Office
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		return nil, AsRepoError(err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) DeleteOffice(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, DbName, OfficeColName)
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
