// Package memstore is an in-process store.Store. It understands the same
// filter subset the service layer builds: field equality, $regex/$options,
// and the comparison operators $gt, $gte, $lt, $lte, $ne.
//
// Documents round-trip through BSON on insert and on read, so struct tags are
// honoured and callers never share maps with the store.
package memstore

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront-backend/internal/store"
)

type Store struct {
	mu          sync.RWMutex
	collections map[string][]bson.M
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{collections: make(map[string][]bson.M)}
}

func (s *Store) Insert(ctx context.Context, collection string, doc interface{}) (primitive.ObjectID, error) {
	m, err := toDocument(doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, ok := m["_id"].(primitive.ObjectID)
	if _, present := m["_id"]; present && !ok {
		return primitive.NilObjectID, store.ErrUnexpectedID
	}
	if !ok {
		id = primitive.NewObjectID()
		m["_id"] = id
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.collections[collection] {
		if existing["_id"] == id {
			return primitive.NilObjectID, fmt.Errorf("memstore: duplicate _id %s", id.Hex())
		}
	}
	s.collections[collection] = append(s.collections[collection], m)
	return id, nil
}

func (s *Store) Find(ctx context.Context, collection string, filter bson.D, opts store.FindOptions) ([]bson.M, error) {
	s.mu.RLock()
	matched, err := s.match(collection, filter)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	if len(opts.Sort) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			for _, key := range opts.Sort {
				c := compareValues(matched[i][key.Key], matched[j][key.Key])
				if c == 0 {
					continue
				}
				if direction(key.Value) < 0 {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}

	if opts.Skip > 0 {
		if opts.Skip >= int64(len(matched)) {
			matched = matched[:0]
		} else {
			matched = matched[opts.Skip:]
		}
	}
	if opts.Limit > 0 && int64(len(matched)) > opts.Limit {
		matched = matched[:opts.Limit]
	}

	results := make([]bson.M, 0, len(matched))
	for _, doc := range matched {
		c, err := toDocument(doc)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, nil
}

func (s *Store) FindOne(ctx context.Context, collection string, filter bson.D) (bson.M, error) {
	docs, err := s.Find(ctx, collection, filter, store.FindOptions{Limit: 1})
	if err != nil || len(docs) == 0 {
		return nil, err
	}
	return docs[0], nil
}

func (s *Store) Count(ctx context.Context, collection string, filter bson.D) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched, err := s.match(collection, filter)
	return int64(len(matched)), err
}

func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.collections))
	for name, docs := range s.collections {
		if len(docs) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) Close(ctx context.Context) error {
	return nil
}

// match must be called with s.mu held.
func (s *Store) match(collection string, filter bson.D) ([]bson.M, error) {
	var out []bson.M
	for _, doc := range s.collections[collection] {
		ok, err := matches(doc, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, doc)
		}
	}
	return out, nil
}

func matches(doc bson.M, filter bson.D) (bool, error) {
	for _, cond := range filter {
		value, present := doc[cond.Key]
		ok, err := matchCondition(value, present, cond.Value)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func matchCondition(value interface{}, present bool, cond interface{}) (bool, error) {
	switch c := cond.(type) {
	case bson.D:
		if isOperatorDoc(c) {
			return matchOperators(value, present, c)
		}
	case primitive.Regex:
		return matchRegex(value, c.Pattern, c.Options)
	}
	return present && sameClass(value, cond) && compareValues(value, cond) == 0, nil
}

func isOperatorDoc(d bson.D) bool {
	return len(d) > 0 && strings.HasPrefix(d[0].Key, "$")
}

func matchOperators(value interface{}, present bool, ops bson.D) (bool, error) {
	var pattern, regexOpts string
	hasRegex := false

	for _, op := range ops {
		switch op.Key {
		case "$regex":
			p, ok := op.Value.(string)
			if !ok {
				return false, fmt.Errorf("memstore: $regex needs a string, got %T", op.Value)
			}
			pattern, hasRegex = p, true
		case "$options":
			regexOpts, _ = op.Value.(string)
		case "$ne":
			if present && sameClass(value, op.Value) && compareValues(value, op.Value) == 0 {
				return false, nil
			}
		case "$gt", "$gte", "$lt", "$lte":
			if !present || !sameClass(value, op.Value) {
				return false, nil
			}
			c := compareValues(value, op.Value)
			if (op.Key == "$gt" && c <= 0) || (op.Key == "$gte" && c < 0) ||
				(op.Key == "$lt" && c >= 0) || (op.Key == "$lte" && c > 0) {
				return false, nil
			}
		default:
			return false, fmt.Errorf("memstore: unsupported operator %s", op.Key)
		}
	}

	if hasRegex {
		return matchRegex(value, pattern, regexOpts)
	}
	return true, nil
}

func matchRegex(value interface{}, pattern, opts string) (bool, error) {
	s, ok := value.(string)
	if !ok {
		return false, nil
	}
	if strings.Contains(opts, "i") {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Errorf("memstore: bad regex: %w", err)
	}
	return re.MatchString(s), nil
}

func direction(v interface{}) int {
	if f, ok := toFloat(v); ok && f < 0 {
		return -1
	}
	return 1
}

// sameClass reports whether a and b belong to the same comparison class.
func sameClass(a, b interface{}) bool {
	if _, ok := toFloat(a); ok {
		_, ok = toFloat(b)
		return ok
	}
	switch a.(type) {
	case string:
		_, ok := b.(string)
		return ok
	case bool:
		_, ok := b.(bool)
		return ok
	case primitive.ObjectID:
		_, ok := b.(primitive.ObjectID)
		return ok
	case nil:
		return b == nil
	}
	return false
}

// compareValues orders two values of the same class. Values of different
// classes compare by class name so sorting stays deterministic.
func compareValues(a, b interface{}) int {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			}
			return 1
		}
	case primitive.ObjectID:
		if bv, ok := b.(primitive.ObjectID); ok {
			return bytes.Compare(av[:], bv[:])
		}
	case nil:
		if b == nil {
			return 0
		}
	}
	return strings.Compare(fmt.Sprintf("%T", a), fmt.Sprintf("%T", b))
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

func toDocument(doc interface{}) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("memstore: marshal document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("memstore: unmarshal document: %w", err)
	}
	return m, nil
}
