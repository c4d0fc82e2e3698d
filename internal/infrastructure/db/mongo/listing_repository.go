package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stayease/marketplace-system/internal/core/domain"
	"github.com/stayease/marketplace-system/internal/core/ports"
)

const collectionListings = "listings"

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection(collectionListings)}
}

// Create inserts a new listing document.
func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, l)
	if err != nil {
		return err
	}
	return nil
}

// FindByID retrieves a listing by id.
func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.Listing
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}
	return &l, nil
}

// List returns a page of listings matching filter and the total count.
// Search matches title or location case-insensitively.
func (r *ListingRepository) List(ctx context.Context, filter ports.ListListingsFilter) ([]*domain.Listing, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"location": re},
		}
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	price := bson.M{}
	if filter.PriceMin > 0 {
		price["$gte"] = filter.PriceMin
	}
	if filter.PriceMax > 0 {
		price["$lte"] = filter.PriceMax
	}
	if len(price) > 0 {
		query["price_per_night"] = price
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var listings []*domain.Listing
	if err := cur.All(ctx, &listings); err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// EnsureIndexes creates necessary indexes on the listings collection.
func (r *ListingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "host_id", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
		{Keys: bson.D{{Key: "price_per_night", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
