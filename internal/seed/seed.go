// Package seed populates an empty store with demo catalogue data.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"storefront-backend/internal/mapper"
	"storefront-backend/internal/model"
	"storefront-backend/internal/store"
)

func strPtr(s string) *string { return &s }

func Products() []model.Product {
	return []model.Product{
		{
			Title:       "Glass Card Pro",
			Description: "Premium transparent credit card with NFC and rewards.",
			Price:       199.0,
			Category:    "Cards",
			Stock:       50,
			Rating:      4.8,
			Images: []string{
				"https://images.unsplash.com/photo-1556742393-d75f468bfcb0?auto=format&fit=crop&w=1200&q=60",
				"https://images.unsplash.com/photo-1542744094-24638eff58bb?auto=format&fit=crop&w=1200&q=60",
			},
			Thumbnail: strPtr("https://images.unsplash.com/photo-1556742393-d75f468bfcb0?auto=format&fit=crop&w=800&q=60"),
			Featured:  true,
		},
		{
			Title:       "Metal Card X",
			Description: "Brushed metal card with concierge and lounge access.",
			Price:       299.0,
			Category:    "Cards",
			Stock:       20,
			Rating:      4.9,
			Images: []string{
				"https://images.unsplash.com/photo-1517245386807-bb43f82c33c4?auto=format&fit=crop&w=1200&q=60",
			},
			Thumbnail: strPtr("https://images.unsplash.com/photo-1517245386807-bb43f82c33c4?auto=format&fit=crop&w=800&q=60"),
			Featured:  true,
		},
		{
			Title:       "Card Sleeve",
			Description: "Minimalist leather sleeve with RFID protection.",
			Price:       29.0,
			Category:    "Accessories",
			Stock:       200,
			Rating:      4.6,
			Images: []string{
				"https://images.unsplash.com/photo-1555529771-35a38c3c12c1?auto=format&fit=crop&w=1200&q=60",
			},
			Thumbnail: strPtr("https://images.unsplash.com/photo-1555529771-35a38c3c12c1?auto=format&fit=crop&w=800&q=60"),
			Featured:  false,
		},
	}
}

func BlogPosts() []model.BlogPost {
	return []model.BlogPost{
		{
			Title:     "Designing the Future of Payments",
			Excerpt:   "A look into glassmorphism and 3D in fintech UI.",
			Content:   "Modern fintech combines security and delightful experiences...",
			Thumbnail: strPtr("https://images.unsplash.com/photo-1553729459-efe14ef6055d?auto=format&fit=crop&w=1000&q=60"),
			Author:    model.DefaultAuthor,
			Tags:      []string{"design", "fintech"},
		},
		{
			Title:     "How We Built Metal Card X",
			Excerpt:   "Materials, durability, and sustainable sourcing.",
			Content:   "The Metal Card X project started with a mission...",
			Thumbnail: strPtr("https://images.unsplash.com/photo-1498050108023-c5249f4df085?auto=format&fit=crop&w=1000&q=60"),
			Author:    model.DefaultAuthor,
			Tags:      []string{"hardware", "product"},
		},
	}
}

// Run inserts the demo rows into each collection that is still empty. It is
// safe to call on every start. A nil store is a no-op.
func Run(ctx context.Context, s store.Store) error {
	if s == nil {
		return nil
	}

	products := Products()
	productDocs := make([]interface{}, 0, len(products))
	for i := range products {
		productDocs = append(productDocs, &products[i])
	}
	if err := seedCollection(ctx, s, store.ColProduct, productDocs); err != nil {
		return err
	}

	posts := BlogPosts()
	postDocs := make([]interface{}, 0, len(posts))
	for i := range posts {
		postDocs = append(postDocs, &posts[i])
	}
	return seedCollection(ctx, s, store.ColBlogPost, postDocs)
}

func seedCollection(ctx context.Context, s store.Store, collection string, docs []interface{}) error {
	n, err := s.Count(ctx, collection, bson.D{})
	if err != nil {
		return fmt.Errorf("seed: count %s: %w", collection, err)
	}
	if n > 0 {
		return nil
	}

	for _, doc := range docs {
		if err := mapper.Validate(doc); err != nil {
			return fmt.Errorf("seed: invalid %s row: %w", collection, err)
		}
		if _, err := s.Insert(ctx, collection, doc); err != nil {
			return fmt.Errorf("seed: insert %s: %w", collection, err)
		}
	}

	log.Ctx(ctx).Info().Str("component", "Seed").Str("collection", collection).Int("rows", len(docs)).Msg("seeded")
	return nil
}
