package mapper

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront-backend/pkg/errs"
)

// IsValidIdentifier reports whether s is a canonical store identifier.
func IsValidIdentifier(s string) bool {
	return primitive.IsValidObjectID(s)
}

// ParseIdentifier returns errs.ErrMalformedID when s is not a valid identifier.
func ParseIdentifier(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", errs.ErrMalformedID, s)
	}
	return id, nil
}

func IDFilter(id primitive.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

// Serialize moves the store's _id into a public "id" string. A document
// without _id gets "id": null. The document is modified in place and returned.
func Serialize(doc bson.M) bson.M {
	if doc == nil {
		return nil
	}
	raw := doc["_id"]
	delete(doc, "_id")
	doc["id"] = IdentifierString(raw)
	return doc
}

// SerializeAll applies Serialize to every element. The result is never nil.
func SerializeAll(docs []bson.M) []bson.M {
	out := make([]bson.M, 0, len(docs))
	for _, doc := range docs {
		out = append(out, Serialize(doc))
	}
	return out
}

// IdentifierString renders an identifier value; nil stays nil.
func IdentifierString(v interface{}) interface{} {
	switch id := v.(type) {
	case nil:
		return nil
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}
