package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetUserByPhone(ctx context.Context, phone string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]*UserView, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	CountUsersByOffice(ctx context.Context, officeID primitive.ObjectID) (int64, error)
}

func (mdb *MongodbRepo) CreateUser(ctx context.Context, user *User) (*User, error) {
	col, err := mdb.GetCollection(ctx, DbName, UserColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, user); err != nil {
		return nil, AsRepoError(err)
	}
	return user, nil
}

func (mdb *MongodbRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	col, err := mdb.GetCollection(ctx, DbName, UserColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var user User
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, AsRepoError(err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) GetUserByPhone(ctx context.Context, phone string) (*User, error) {
	col, err := mdb.GetCollection(ctx, DbName, UserColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var user User
	if err := col.FindOne(ctx, bson.M{"phone": phone}).Decode(&user); err != nil {
		return nil, AsRepoError(err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	col, err := mdb.GetCollection(ctx, DbName, UserColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var user User
	if err := col.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return nil, AsRepoError(err)
	}
	return &user, nil
}

// ListUsers returns every user joined with the owning office's name.
func (mdb *MongodbRepo) ListUsers(ctx context.Context) ([]*UserView, error) {
	col, err := mdb.GetCollection(ctx, DbName, UserColName)
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
		{"$project": bson.M{"office": 0, "password_hash": 0}},
	}

	cursor, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %v", err)
	}
	defer cursor.Close(ctx)

	var users []*UserView
	for cursor.Next(ctx) {
		var u UserView
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("error decoding user: %v", err)
		}
		users = append(users, &u)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}
	return users, nil
}

func (mdb *MongodbRepo) UpdateUser(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*User, error) {
	col, err := mdb.GetCollection(ctx, DbName, UserColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated User
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		return nil, AsRepoError(err)
	}
	return &updated, nil
}

func (mdb *MongodbRepo) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, DbName, UserColName)
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

func (mdb *MongodbRepo) CountUsersByOffice(ctx context.Context, officeID primitive.ObjectID) (int64, error) {
	col, err := mdb.GetCollection(ctx, DbName, UserColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %v", err)
	}
	return col.CountDocuments(ctx, bson.M{"office_id": officeID})
}
