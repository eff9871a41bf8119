package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/qent/car-rental-system/internal/core/domain"
)

const collectionBrands = "brands"

type BrandRepository struct {
	coll *mongo.Collection
}

func NewBrandRepository(db *mongo.Database) *BrandRepository {
	return &BrandRepository{coll: db.Collection(collectionBrands)}
}

type brandDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Categories []string           `bson:"categories,omitempty"`
}

func (r *BrandRepository) Create(ctx context.Context, brand *domain.Brand) (string, error) {
	doc := brandDoc{Name: brand.Name, Categories: brand.Categories}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrBrandExists
		}
		return "", fmt.Errorf("insert brand: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *BrandRepository) List(ctx context.Context) ([]*domain.Brand, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer cur.Close(ctx)

	var brands []*domain.Brand
	for cur.Next(ctx) {
		var doc brandDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode brand: %w", err)
		}
		brands = append(brands, &domain.Brand{ID: doc.ID.Hex(), Name: doc.Name, Categories: doc.Categories})
	}
	return brands, cur.Err()
}

// EnsureIndexes creates the unique name index on the brands collection.
func (r *BrandRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
