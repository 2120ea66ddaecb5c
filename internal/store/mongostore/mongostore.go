// Package mongostore implements store.Store on top of mongo-driver.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront-backend/internal/store"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ store.Store = (*Store)(nil)

// NewStore connects to uri, pings the server and selects dbName.
func NewStore(ctx context.Context, uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect failed: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongostore: ping failed: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}

	if err := s.ensureIndexes(ctx); err != nil {
		log.Warn().Err(err).Str("component", "NewStore").Msg("ensure indexes failed")
	}

	return s, nil
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// ensureIndexes creates lookup indexes only. Email is deliberately not
// unique: duplicate registration is rejected by a pre-check.
func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := []struct {
		col  string
		keys bson.D
	}{
		{store.ColUser, bson.D{{Key: "email", Value: 1}}},
		{store.ColProduct, bson.D{{Key: "category", Value: 1}}},
		{store.ColProduct, bson.D{{Key: "price", Value: 1}}},
	}

	for _, i := range indexes {
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: i.keys}); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}
	return nil
}

func (s *Store) Insert(ctx context.Context, collection string, doc interface{}) (primitive.ObjectID, error) {
	res, err := s.col(collection).InsertOne(ctx, doc)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Insert").Str("collection", collection).Msg("")
		return primitive.NilObjectID, err
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, store.ErrUnexpectedID
	}
	return id, nil
}

func (s *Store) Find(ctx context.Context, collection string, filter bson.D, opts store.FindOptions) ([]bson.M, error) {
	if filter == nil {
		filter = bson.D{}
	}

	findOpts := options.Find().SetSkip(opts.Skip)
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}
	if len(opts.Sort) > 0 {
		findOpts.SetSort(opts.Sort)
	}

	cursor, err := s.col(collection).Find(ctx, filter, findOpts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Find").Str("collection", collection).Msg("")
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []bson.M{}
	if err := cursor.All(ctx, &results); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Find").Str("collection", collection).Msg("")
		return nil, err
	}
	return results, nil
}

func (s *Store) FindOne(ctx context.Context, collection string, filter bson.D) (bson.M, error) {
	var doc bson.M
	err := s.col(collection).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "FindOne").Str("collection", collection).Msg("")
		return nil, err
	}
	return doc, nil
}

func (s *Store) Count(ctx context.Context, collection string, filter bson.D) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	n, err := s.col(collection).CountDocuments(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Count").Str("collection", collection).Msg("")
	}
	return n, err
}

func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	return s.db.ListCollectionNames(ctx, bson.D{})
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Drop removes the whole database. Used by integration tests.
func (s *Store) Drop(ctx context.Context) error {
	return s.db.Drop(ctx)
}
