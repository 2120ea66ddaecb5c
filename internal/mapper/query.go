package mapper

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"

	"storefront-backend/internal/store"
)

const (
	DefaultProductLimit = 50
	DefaultBlogLimit    = 20
	MaxLimit            = 100
)

// ProductQuery is the query string of GET /api/products. Pointer fields are
// optional predicates: nil means "not supplied", which is different from a
// zero value.
type ProductQuery struct {
	Q         string   `form:"q"`
	Category  string   `form:"category"`
	MinPrice  *float64 `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice  *float64 `form:"max_price" binding:"omitempty,gte=0"`
	MinRating *float64 `form:"min_rating" binding:"omitempty,gte=0,lte=5"`
	Featured  *bool    `form:"featured"`
	Limit     int      `form:"limit,default=50" binding:"gte=1,lte=100"`
	Skip      int      `form:"skip,default=0" binding:"gte=0"`
}

// Filter builds the conjunction of every supplied predicate. The title match
// is a case-insensitive literal substring.
func (q ProductQuery) Filter() bson.D {
	filter := bson.D{}

	if q.Q != "" {
		filter = append(filter, bson.E{Key: "title", Value: bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(q.Q)},
			{Key: "$options", Value: "i"},
		}})
	}
	if q.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: q.Category})
	}

	priceRange := bson.D{}
	if q.MinPrice != nil {
		priceRange = append(priceRange, bson.E{Key: "$gte", Value: *q.MinPrice})
	}
	if q.MaxPrice != nil {
		priceRange = append(priceRange, bson.E{Key: "$lte", Value: *q.MaxPrice})
	}
	if len(priceRange) > 0 {
		filter = append(filter, bson.E{Key: "price", Value: priceRange})
	}

	if q.MinRating != nil {
		filter = append(filter, bson.E{Key: "rating", Value: bson.D{{Key: "$gte", Value: *q.MinRating}}})
	}
	if q.Featured != nil {
		filter = append(filter, bson.E{Key: "featured", Value: *q.Featured})
	}

	return filter
}

// FindOptions keeps the store's natural order; only paging is applied.
func (q ProductQuery) FindOptions() store.FindOptions {
	return store.FindOptions{Skip: int64(q.Skip), Limit: int64(q.Limit)}
}

// BlogQuery is the query string of GET /api/blogs.
type BlogQuery struct {
	Limit int `form:"limit,default=20" binding:"gte=1,lte=100"`
	Skip  int `form:"skip,default=0" binding:"gte=0"`
}

// FindOptions sorts newest first; ObjectIDs grow with creation time.
func (q BlogQuery) FindOptions() store.FindOptions {
	return store.FindOptions{
		Sort:  bson.D{{Key: "_id", Value: -1}},
		Skip:  int64(q.Skip),
		Limit: int64(q.Limit),
	}
}
