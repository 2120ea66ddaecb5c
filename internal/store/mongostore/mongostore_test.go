package mongostore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront-backend/internal/store"
)

// newTestStore connects to MONGO_TEST_URI and uses a throwaway database.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set, skipping mongo integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := NewStore(ctx, uri, fmt.Sprintf("storefront_test_%d", time.Now().UnixNano()))
	if err != nil {
		t.Skipf("mongo not reachable: %v", err)
	}
	t.Cleanup(func() {
		ctx := context.Background()
		_ = s.Drop(ctx)
		_ = s.Close(ctx)
	})
	return s
}

func TestInsertAndFind(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, title := range []string{"a", "b", "c"} {
		_, err := s.Insert(ctx, store.ColProduct, bson.M{"title": title, "price": float64(i * 100)})
		require.NoError(t, err)
	}

	docs, err := s.Find(ctx, store.ColProduct, bson.D{{Key: "price", Value: bson.D{{Key: "$gte", Value: 100.0}}}}, store.FindOptions{})
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = s.Find(ctx, store.ColProduct, nil, store.FindOptions{
		Sort:  bson.D{{Key: "_id", Value: -1}},
		Limit: 1,
	})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "c", docs[0]["title"])

	docs, err = s.Find(ctx, store.ColBlogPost, bson.D{}, store.FindOptions{})
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestFindOneMiss(t *testing.T) {
	s := newTestStore(t)
	doc, err := s.FindOne(context.Background(), store.ColProduct, bson.D{{Key: "_id", Value: primitive.NewObjectID()}})
	assert.NoError(t, err)
	assert.Nil(t, doc)
}

func TestCountAndListCollections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Insert(ctx, store.ColContact, bson.M{"name": "A"})
	require.NoError(t, err)
	assert.False(t, id.IsZero())

	n, err := s.Count(ctx, store.ColContact, bson.D{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	names, err := s.ListCollections(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, store.ColContact)
}
