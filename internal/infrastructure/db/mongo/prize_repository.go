package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/promoplay/playgate/internal/core/domain"
)

const collectionPrizes = "prizes"

// PrizeRepository implements ports.PrizeRepository using MongoDB.
type PrizeRepository struct {
	col       *mongo.Collection
	opTimeout time.Duration
}

func NewPrizeRepository(db *mongo.Database, opTimeout time.Duration) *PrizeRepository {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	return &PrizeRepository{col: db.Collection(collectionPrizes), opTimeout: opTimeout}
}

type prizeDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Value       float64            `bson:"value"`
	ImageURL    string             `bson:"imageUrl,omitempty"`
	Quantity    int                `bson:"quantity"`
	Probability float64            `bson:"probability"`
	IsActive    bool               `bson:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d prizeDoc) toDomain() domain.Prize {
	return domain.Prize{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Value:       d.Value,
		ImageURL:    d.ImageURL,
		Quantity:    d.Quantity,
		Probability: d.Probability,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

func prizeIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "quantity", Value: 1}},
		Options: options.Index().SetName("isActive_quantity"),
	}
}

// ListAvailable returns active prizes with quantity > 0.
func (r *PrizeRepository) ListAvailable(ctx context.Context) ([]domain.Prize, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	filter := bson.M{
		"isActive": true,
		"quantity": bson.M{"$gt": 0},
	}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find prizes: %w", classify(err))
	}

	var docs []prizeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode prizes: %w", classify(err))
	}

	prizes := make([]domain.Prize, 0, len(docs))
	for _, d := range docs {
		prizes = append(prizes, d.toDomain())
	}
	return prizes, nil
}
