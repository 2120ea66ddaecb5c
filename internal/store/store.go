// Package store defines the document-store collaborator used by the service
// layer. Implementations live in mongostore (MongoDB) and memstore
// (in-process, same filter subset).
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names.
const (
	ColUser     = "user"
	ColProduct  = "product"
	ColBlogPost = "blogpost"
	ColOrder    = "order"
	ColContact  = "contact"
)

// Collections lists every collection the API writes to, in schema order.
var Collections = []string{ColUser, ColProduct, ColBlogPost, ColOrder, ColContact}

var ErrUnexpectedID = errors.New("store: inserted id is not an ObjectID")

// FindOptions controls ordering and paging of Find. A zero Limit means no
// limit; an empty Sort means the store's natural order.
type FindOptions struct {
	Sort  bson.D
	Skip  int64
	Limit int64
}

type Store interface {
	Insert(ctx context.Context, collection string, doc interface{}) (primitive.ObjectID, error)
	// Find never returns a nil slice on success.
	Find(ctx context.Context, collection string, filter bson.D, opts FindOptions) ([]bson.M, error)
	// FindOne returns (nil, nil) when nothing matches.
	FindOne(ctx context.Context, collection string, filter bson.D) (bson.M, error)
	Count(ctx context.Context, collection string, filter bson.D) (int64, error)
	ListCollections(ctx context.Context) ([]string, error)
	Close(ctx context.Context) error
}
