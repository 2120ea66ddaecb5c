package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront-backend/internal/store"
)

type item struct {
	Name     string  `bson:"name"`
	Price    float64 `bson:"price"`
	Qty      int     `bson:"qty"`
	Featured bool    `bson:"featured"`
}

func seeded(t *testing.T) *Store {
	t.Helper()
	s := New()
	ctx := context.Background()
	for _, it := range []item{
		{"Glass Card Pro", 199, 50, true},
		{"Metal Card X", 299, 20, true},
		{"Card Sleeve", 29, 200, false},
	} {
		_, err := s.Insert(ctx, "things", it)
		require.NoError(t, err)
	}
	return s
}

func names(docs []bson.M) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d["name"].(string))
	}
	return out
}

func TestInsertAssignsID(t *testing.T) {
	s := New()
	id, err := s.Insert(context.Background(), "things", item{Name: "a"})
	require.NoError(t, err)
	assert.False(t, id.IsZero())

	doc, err := s.FindOne(context.Background(), "things", bson.D{{Key: "_id", Value: id}})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "a", doc["name"])
}

func TestInsertRejectsDuplicateID(t *testing.T) {
	s := New()
	id := primitive.NewObjectID()
	_, err := s.Insert(context.Background(), "things", bson.M{"_id": id})
	require.NoError(t, err)
	_, err = s.Insert(context.Background(), "things", bson.M{"_id": id})
	assert.Error(t, err)
}

func TestFindFilters(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter bson.D
		want   []string
	}{
		{"empty", bson.D{}, []string{"Glass Card Pro", "Metal Card X", "Card Sleeve"}},
		{"equality", bson.D{{Key: "name", Value: "Card Sleeve"}}, []string{"Card Sleeve"}},
		{"bool", bson.D{{Key: "featured", Value: false}}, []string{"Card Sleeve"}},
		{"range", bson.D{{Key: "price", Value: bson.D{{Key: "$gte", Value: 100.0}, {Key: "$lte", Value: 250.0}}}}, []string{"Glass Card Pro"}},
		{"int vs float", bson.D{{Key: "qty", Value: bson.D{{Key: "$gt", Value: 20.5}}}}, []string{"Glass Card Pro", "Card Sleeve"}},
		{"regex insensitive", bson.D{{Key: "name", Value: bson.D{{Key: "$regex", Value: "card"}, {Key: "$options", Value: "i"}}}}, []string{"Glass Card Pro", "Metal Card X", "Card Sleeve"}},
		{"regex sensitive", bson.D{{Key: "name", Value: bson.D{{Key: "$regex", Value: "card"}}}}, nil},
		{"primitive regex", bson.D{{Key: "name", Value: primitive.Regex{Pattern: "^metal", Options: "i"}}}, []string{"Metal Card X"}},
		{"missing field", bson.D{{Key: "colour", Value: "red"}}, nil},
		{"type mismatch", bson.D{{Key: "price", Value: "199"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := s.Find(ctx, "things", tt.filter, store.FindOptions{})
			require.NoError(t, err)
			assert.NotNil(t, docs)
			if tt.want == nil {
				assert.Empty(t, docs)
				return
			}
			assert.Equal(t, tt.want, names(docs))
		})
	}
}

func TestFindSortSkipLimit(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	docs, err := s.Find(ctx, "things", nil, store.FindOptions{Sort: bson.D{{Key: "_id", Value: -1}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Card Sleeve", "Metal Card X", "Glass Card Pro"}, names(docs))

	docs, err = s.Find(ctx, "things", nil, store.FindOptions{Sort: bson.D{{Key: "price", Value: 1}}, Skip: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Glass Card Pro"}, names(docs))

	docs, err = s.Find(ctx, "things", nil, store.FindOptions{Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestFindReturnsCopies(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	docs, err := s.Find(ctx, "things", nil, store.FindOptions{Limit: 1})
	require.NoError(t, err)
	delete(docs[0], "_id")
	docs[0]["name"] = "mutated"

	again, err := s.Find(ctx, "things", nil, store.FindOptions{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, "Glass Card Pro", again[0]["name"])
	assert.Contains(t, again[0], "_id")
}

func TestCountAndListCollections(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	n, err := s.Count(ctx, "things", bson.D{{Key: "featured", Value: true}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = s.Count(ctx, "nothing", nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	cols, err := s.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"things"}, cols)
}

func TestUnsupportedOperator(t *testing.T) {
	s := seeded(t)
	_, err := s.Find(context.Background(), "things", bson.D{{Key: "name", Value: bson.D{{Key: "$where", Value: "1"}}}}, store.FindOptions{})
	assert.Error(t, err)
}
