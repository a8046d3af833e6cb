package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/citypulse/report-system/internal/core/domain"
)

const collectionStreets = "streets"

// LocationRepository serves the read paths into the geographic hierarchy.
// Location CRUD is owned by a separate tool; this service only resolves
// streets for registration and user queries.
type LocationRepository struct {
	streets *mongo.Collection
}

func NewLocationRepository(db *mongo.Database) *LocationRepository {
	return &LocationRepository{streets: db.Collection(collectionStreets)}
}

type streetDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	DistrictID string             `bson:"district_id"`
}

func (r *LocationRepository) FindStreetByID(ctx context.Context, id string) (*domain.Street, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStreetNotFound
	}

	var doc streetDoc
	if err := r.streets.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStreetNotFound
		}
		return nil, fmt.Errorf("find street: %w", err)
	}
	return toStreet(&doc), nil
}

func (r *LocationRepository) FindStreetsByDistrictID(ctx context.Context, districtID string) ([]domain.Street, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.streets.Find(ctx, bson.M{"district_id": districtID})
	if err != nil {
		return nil, fmt.Errorf("list streets: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Street
	for cur.Next(ctx) {
		var doc streetDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode street: %w", err)
		}
		out = append(out, *toStreet(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate streets: %w", err)
	}
	return out, nil
}

func toStreet(doc *streetDoc) *domain.Street {
	return &domain.Street{
		ID:         doc.ID.Hex(),
		Name:       doc.Name,
		DistrictID: doc.DistrictID,
	}
}
