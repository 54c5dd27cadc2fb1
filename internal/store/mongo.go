package store

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongo connects to MongoDB and verifies the connection with a ping.
func NewMongo(ctx context.Context, uri, database string) (Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(database)

	// Product slugs are URL keys
	_, err = db.Collection(Products).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create product slug index: %w", err)
	}

	return &mongoStore{client: client, db: db}, nil
}

func (s *mongoStore) Driver() string { return "mongo" }

func (s *mongoStore) Name() string { return s.db.Name() }

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *mongoStore) Collections(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}

func (s *mongoStore) Insert(ctx context.Context, collection string, doc any) (string, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	var fields bson.D
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}

	oid := primitive.NewObjectID()
	record := bson.D{{Key: "_id", Value: oid}}
	for _, field := range fields {
		if field.Key != "_id" {
			record = append(record, field)
		}
	}

	if _, err := s.db.Collection(collection).InsertOne(ctx, record); err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, err)
	}

	return oid.Hex(), nil
}

func (s *mongoStore) Find(ctx context.Context, collection string, q Query, out any) error {
	filter, err := mongoFilter(q)
	if err != nil {
		return err
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", collection, err)
	}
	return nil
}

func (s *mongoStore) Update(ctx context.Context, collection, id string, fields map[string]any) (bool, error) {
	oid, err := ParseID(id)
	if err != nil {
		return false, err
	}

	set := bson.M{}
	for k, v := range fields {
		if k != "_id" && k != idField {
			set[k] = v
		}
	}

	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update %s: %w", collection, err)
	}
	return res.MatchedCount > 0, nil
}

func (s *mongoStore) Increment(ctx context.Context, collection, id, field string, delta int) (bool, error) {
	oid, err := ParseID(id)
	if err != nil {
		return false, err
	}

	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return false, fmt.Errorf("failed to increment %s.%s: %w", collection, field, err)
	}
	return res.MatchedCount > 0, nil
}

func (s *mongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func mongoFilter(q Query) (bson.M, error) {
	filter := bson.M{}

	if len(q.IDs) > 0 {
		oids, err := parseIDs(q.IDs)
		if err != nil {
			return nil, err
		}
		filter["_id"] = bson.M{"$in": oids}
	}

	for field, value := range q.Equals {
		filter[field] = value
	}

	if q.Match != nil && q.Match.Term != "" {
		pattern := regexp.QuoteMeta(q.Match.Term)
		or := make(bson.A, 0, len(q.Match.Fields))
		for _, field := range q.Match.Fields {
			or = append(or, bson.M{field: primitive.Regex{Pattern: pattern, Options: "i"}})
		}
		filter["$or"] = or
	}

	return filter, nil
}
