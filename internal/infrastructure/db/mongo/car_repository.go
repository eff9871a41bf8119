package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/qent/car-rental-system/internal/core/domain"
	"github.com/qent/car-rental-system/internal/core/ports"
)

const collectionCars = "cars"

type CarRepository struct {
	coll *mongo.Collection
}

func NewCarRepository(db *mongo.Database) *CarRepository {
	return &CarRepository{coll: db.Collection(collectionCars)}
}

type geoPointDoc struct {
	Latitude  float64 `bson:"latitude"`
	Longitude float64 `bson:"longitude"`
}

type carDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Price         float64            `bson:"price"`
	Brand         string             `bson:"brand"`
	Category      string             `bson:"category,omitempty"`
	Location      *geoPointDoc       `bson:"location,omitempty"`
	RentalAddress string             `bson:"rental_address,omitempty"`
	Image         string             `bson:"image,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (d carDoc) toDomain() *domain.Car {
	car := &domain.Car{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Price:         d.Price,
		Brand:         d.Brand,
		Category:      d.Category,
		RentalAddress: d.RentalAddress,
		Image:         d.Image,
		CreatedAt:     d.CreatedAt,
	}
	if d.Location != nil {
		car.Location = &domain.GeoPoint{Latitude: d.Location.Latitude, Longitude: d.Location.Longitude}
	}
	return car
}

func (r *CarRepository) Create(ctx context.Context, car *domain.Car) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := carDoc{
		Name:          car.Name,
		Price:         car.Price,
		Brand:         car.Brand,
		Category:      car.Category,
		RentalAddress: car.RentalAddress,
		Image:         car.Image,
		CreatedAt:     car.CreatedAt,
	}
	if car.Location != nil {
		doc.Location = &geoPointDoc{Latitude: car.Location.Latitude, Longitude: car.Location.Longitude}
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert car: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *CarRepository) FindByID(ctx context.Context, id string) (*domain.Car, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCarNotFound
	}

	var doc carDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCarNotFound
		}
		return nil, fmt.Errorf("find car: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns a page of cars matching filter plus the total match count.
func (r *CarRepository) List(ctx context.Context, filter ports.ListCarsFilter) ([]*domain.Car, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Brand != "" {
		query["brand"] = filter.Brand
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		query["name"] = bson.M{"$regex": primitive.Regex{Pattern: filter.Search, Options: "i"}}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count cars: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
		if filter.Page > 1 {
			opts.SetSkip(int64((filter.Page - 1) * filter.Limit))
		}
	}

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list cars: %w", err)
	}
	defer cur.Close(ctx)

	var cars []*domain.Car
	for cur.Next(ctx) {
		var doc carDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode car: %w", err)
		}
		cars = append(cars, doc.toDomain())
	}
	return cars, total, cur.Err()
}

func (r *CarRepository) Update(ctx context.Context, id string, update ports.CarUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCarNotFound
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Brand != nil {
		set["brand"] = *update.Brand
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Location != nil {
		set["location"] = geoPointDoc{Latitude: update.Location.Latitude, Longitude: update.Location.Longitude}
	}
	if update.RentalAddress != nil {
		set["rental_address"] = *update.RentalAddress
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}
	if len(set) == 0 {
		return nil
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update car: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCarNotFound
	}
	return nil
}

func (r *CarRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCarNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete car: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCarNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the cars collection.
func (r *CarRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "brand", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
