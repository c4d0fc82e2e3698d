package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionFavorites = "favorites"

type FavoritesRepository struct {
	col *mongo.Collection
}

func NewFavoritesRepository(db *mongo.Database) *FavoritesRepository {
	return &FavoritesRepository{col: db.Collection(collectionFavorites)}
}

type favoriteDoc struct {
	UserID    string    `bson:"user_id"`
	ListingID string    `bson:"listing_id"`
	CreatedAt time.Time `bson:"created_at"`
}

// Add records a favorite. Upsert keeps the write idempotent when the dedup
// layer lets a redelivery through anyway.
func (r *FavoritesRepository) Add(ctx context.Context, userID, listingID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID, "listing_id": listingID}
	update := bson.M{"$setOnInsert": favoriteDoc{
		UserID:    userID,
		ListingID: listingID,
		CreatedAt: time.Now().UTC(),
	}}
	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// Remove deletes a favorite. Removing an absent favorite is not an error.
func (r *FavoritesRepository) Remove(ctx context.Context, userID, listingID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"user_id": userID, "listing_id": listingID})
	return err
}

// ListIDs returns the listing ids a user has favorited, oldest first.
func (r *FavoritesRepository) ListIDs(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []favoriteDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ListingID)
	}
	return ids, nil
}

// EnsureIndexes creates the unique user/listing index on favorites.
func (r *FavoritesRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "listing_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := r.col.Indexes().CreateOne(ctx, index)
	return err
}
