// Package service implements the storefront operations over an optional
// document store.
//
// A nil store means the database is unreachable. Read operations then degrade
// to empty or default answers while write operations fail with
// errs.ErrStoreUnavailable.
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"storefront-backend/internal/auth"
	"storefront-backend/internal/mapper"
	"storefront-backend/internal/model"
	"storefront-backend/internal/store"
	"storefront-backend/pkg/errs"
)

type Options struct {
	PaymentBaseURL string
	Tokens         *auth.TokenIssuer
	Passwords      auth.Passwords
}

type Service struct {
	store          store.Store
	paymentBaseURL string
	tokens         *auth.TokenIssuer
	passwords      auth.Passwords
}

func New(s store.Store, opts Options) *Service {
	if opts.Tokens == nil {
		opts.Tokens = auth.NewTokenIssuer("")
	}
	return &Service{
		store:          s,
		paymentBaseURL: opts.PaymentBaseURL,
		tokens:         opts.Tokens,
		passwords:      opts.Passwords,
	}
}

func (s *Service) Available() bool {
	return s.store != nil
}

func storeError(ctx context.Context, component string, err error) error {
	log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
	return fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
}

func (s *Service) ListProducts(ctx context.Context, q mapper.ProductQuery) ([]bson.M, error) {
	if !s.Available() {
		return []bson.M{}, nil
	}
	docs, err := s.store.Find(ctx, store.ColProduct, q.Filter(), q.FindOptions())
	if err != nil {
		return nil, storeError(ctx, "ListProducts", err)
	}
	return mapper.SerializeAll(docs), nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (bson.M, error) {
	return s.getByID(ctx, "GetProduct", store.ColProduct, id)
}

func (s *Service) ListBlogPosts(ctx context.Context, q mapper.BlogQuery) ([]bson.M, error) {
	if !s.Available() {
		return []bson.M{}, nil
	}
	docs, err := s.store.Find(ctx, store.ColBlogPost, bson.D{}, q.FindOptions())
	if err != nil {
		return nil, storeError(ctx, "ListBlogPosts", err)
	}
	return mapper.SerializeAll(docs), nil
}

func (s *Service) GetBlogPost(ctx context.Context, id string) (bson.M, error) {
	return s.getByID(ctx, "GetBlogPost", store.ColBlogPost, id)
}

// getByID rejects malformed identifiers before looking at the store, so a
// bad id is a client error even while the database is down.
func (s *Service) getByID(ctx context.Context, component, collection, rawID string) (bson.M, error) {
	id, err := mapper.ParseIdentifier(rawID)
	if err != nil {
		return nil, err
	}
	if !s.Available() {
		return nil, errs.ErrNotFound
	}

	doc, err := s.store.FindOne(ctx, collection, mapper.IDFilter(id))
	if err != nil {
		return nil, storeError(ctx, component, err)
	}
	if doc == nil {
		return nil, errs.ErrNotFound
	}
	return mapper.Serialize(doc), nil
}

// CreateOrder stores the order as sent. Item prices and totals are not
// recomputed and stock is not touched.
func (s *Service) CreateOrder(ctx context.Context, order model.Order) (model.OrderResponse, error) {
	if !s.Available() {
		return model.OrderResponse{}, errs.ErrStoreUnavailable
	}

	order.ApplyDefaults()
	id, err := s.store.Insert(ctx, store.ColOrder, order)
	if err != nil {
		return model.OrderResponse{}, storeError(ctx, "CreateOrder", err)
	}

	return model.OrderResponse{
		OrderID:    id.Hex(),
		Status:     model.DefaultOrderStatus,
		PaymentURL: fmt.Sprintf("%s/%s", s.paymentBaseURL, id.Hex()),
	}, nil
}

// SubmitContact always reports success to the caller; without a store the
// message is acknowledged but not kept.
func (s *Service) SubmitContact(ctx context.Context, msg model.ContactMessage) (model.ContactResponse, error) {
	if !s.Available() {
		return model.ContactResponse{Status: "received"}, nil
	}

	id, err := s.store.Insert(ctx, store.ColContact, msg)
	if err != nil {
		return model.ContactResponse{}, storeError(ctx, "SubmitContact", err)
	}
	return model.ContactResponse{Status: "ok", ID: id.Hex()}, nil
}

// Register rejects an email that is already stored. The check and the insert
// are separate calls; concurrent registrations of one address can both pass.
func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (model.RegisterResponse, error) {
	if !s.Available() {
		return model.RegisterResponse{}, errs.ErrStoreUnavailable
	}

	existing, err := s.store.FindOne(ctx, store.ColUser, bson.D{{Key: "email", Value: req.Email}})
	if err != nil {
		return model.RegisterResponse{}, storeError(ctx, "Register", err)
	}
	if existing != nil {
		return model.RegisterResponse{}, errs.ErrDuplicateEmail
	}

	password, err := s.passwords.Prepare(req.Password)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Register").Msg("")
		return model.RegisterResponse{}, errs.ErrInternalServer
	}

	id, err := s.store.Insert(ctx, store.ColUser, model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: password,
		IsActive: true,
	})
	if err != nil {
		return model.RegisterResponse{}, storeError(ctx, "Register", err)
	}
	return model.RegisterResponse{Status: "ok", UserID: id.Hex()}, nil
}

// Login needs an exact email and password match. The returned user never
// carries the password field.
func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	if !s.Available() {
		return model.LoginResponse{Status: "ok", Token: auth.DemoToken}, nil
	}

	doc, err := s.findCredentials(ctx, req)
	if err != nil {
		return model.LoginResponse{}, storeError(ctx, "Login", err)
	}
	if doc == nil {
		return model.LoginResponse{}, errs.ErrInvalidCredentials
	}

	user := mapper.Serialize(doc)
	delete(user, "password")

	userID, _ := user["id"].(string)
	token, err := s.tokens.Issue(userID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Login").Msg("")
		return model.LoginResponse{}, errs.ErrInternalServer
	}
	return model.LoginResponse{Status: "ok", Token: token, User: user}, nil
}

func (s *Service) findCredentials(ctx context.Context, req model.LoginRequest) (bson.M, error) {
	if !s.passwords.Hashing() {
		return s.store.FindOne(ctx, store.ColUser, bson.D{
			{Key: "email", Value: req.Email},
			{Key: "password", Value: req.Password},
		})
	}

	doc, err := s.store.FindOne(ctx, store.ColUser, bson.D{{Key: "email", Value: req.Email}})
	if err != nil || doc == nil {
		return nil, err
	}
	stored, _ := doc["password"].(string)
	if !s.passwords.Matches(stored, req.Password) {
		return nil, nil
	}
	return doc, nil
}
