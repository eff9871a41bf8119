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
)

const collectionRentals = "rentals"

type RentalRepository struct {
	coll *mongo.Collection
}

func NewRentalRepository(db *mongo.Database) *RentalRepository {
	return &RentalRepository{coll: db.Collection(collectionRentals)}
}

// rentDate keeps the original ISO-8601 string shape rather than a BSON date,
// matching the document contract consumed by mobile clients.
type rentalDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	CarID      string             `bson:"car_id"`
	CarName    string             `bson:"car_name"`
	Image      string             `bson:"image,omitempty"`
	RentDate   string             `bson:"rent_date"`
	Duration   int                `bson:"duration"`
	Status     string             `bson:"status"`
	TotalPrice float64            `bson:"total_price"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d rentalDoc) toDomain() *domain.Rental {
	return &domain.Rental{
		ID:         d.ID.Hex(),
		UserID:     d.UserID,
		CarID:      d.CarID,
		CarName:    d.CarName,
		Image:      d.Image,
		RentDate:   d.RentDate,
		Duration:   d.Duration,
		Status:     domain.RentalStatus(d.Status),
		TotalPrice: d.TotalPrice,
		CreatedAt:  d.CreatedAt,
	}
}

func (r *RentalRepository) Create(ctx context.Context, rental *domain.Rental) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := rentalDoc{
		UserID:     rental.UserID,
		CarID:      rental.CarID,
		CarName:    rental.CarName,
		Image:      rental.Image,
		RentDate:   rental.RentDate,
		Duration:   rental.Duration,
		Status:     string(rental.Status),
		TotalPrice: rental.TotalPrice,
		CreatedAt:  rental.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert rental: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *RentalRepository) FindByID(ctx context.Context, id string) (*domain.Rental, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRentalNotFound
	}

	var doc rentalDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRentalNotFound
		}
		return nil, fmt.Errorf("find rental: %w", err)
	}
	return doc.toDomain(), nil
}

// FindActiveByCar returns all active rentals for the car. This is the read the
// availability check depends on; it intentionally has no pagination since a
// single car only ever carries a handful of active rentals.
func (r *RentalRepository) FindActiveByCar(ctx context.Context, carID string) ([]*domain.Rental, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"car_id": carID,
		"status": string(domain.RentalActive),
	}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find active rentals: %w", err)
	}
	defer cur.Close(ctx)

	return decodeRentals(ctx, cur)
}

func (r *RentalRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Rental, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	defer cur.Close(ctx)

	return decodeRentals(ctx, cur)
}

func (r *RentalRepository) UpdateStatus(ctx context.Context, id string, status domain.RentalStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRentalNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		return fmt.Errorf("update rental status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRentalNotFound
	}
	return nil
}

func decodeRentals(ctx context.Context, cur *mongo.Cursor) ([]*domain.Rental, error) {
	var rentals []*domain.Rental
	for cur.Next(ctx) {
		var doc rentalDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode rental: %w", err)
		}
		rentals = append(rentals, doc.toDomain())
	}
	return rentals, cur.Err()
}

// EnsureIndexes creates necessary indexes on the rentals collection.
func (r *RentalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "car_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
