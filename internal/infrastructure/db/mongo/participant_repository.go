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

	"github.com/promoplay/playgate/internal/core/domain"
)

const collectionParticipants = "users"

// ParticipantRepository implements ports.ParticipantRepository using MongoDB.
type ParticipantRepository struct {
	col       *mongo.Collection
	opTimeout time.Duration
}

// NewParticipantRepository returns a repository over the users collection.
// opTimeout <= 0 selects the default operation bound.
func NewParticipantRepository(db *mongo.Database, opTimeout time.Duration) *ParticipantRepository {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	return &ParticipantRepository{col: db.Collection(collectionParticipants), opTimeout: opTimeout}
}

type participantDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	PhoneNumber string             `bson:"phoneNumber"`
	HasPlayed   bool               `bson:"hasPlayed"`
	PlayedAt    *time.Time         `bson:"playedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d participantDoc) toDomain() *domain.Participant {
	p := &domain.Participant{
		ID:          d.ID.Hex(),
		PhoneNumber: d.PhoneNumber,
		HasPlayed:   d.HasPlayed,
		CreatedAt:   d.CreatedAt.UTC(),
	}
	if d.PlayedAt != nil {
		at := d.PlayedAt.UTC()
		p.PlayedAt = &at
	}
	return p
}

func participantIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "phoneNumber", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("phoneNumber_unique"),
	}
}

// FindByPhoneNumber retrieves a participant by phone number.
func (r *ParticipantRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc participantDoc
	err := r.col.FindOne(ctx, bson.M{"phoneNumber": phoneNumber}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("find participant: %w", classify(err))
	}
	return doc.toDomain(), nil
}

// Create inserts a new participant. The unique phoneNumber index turns a
// concurrent duplicate into domain.ErrParticipantExists.
func (r *ParticipantRepository) Create(ctx context.Context, p *domain.Participant) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	doc := participantDoc{
		PhoneNumber: p.PhoneNumber,
		HasPlayed:   false,
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.CreatedAt.UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrParticipantExists
		}
		return nil, fmt.Errorf("insert participant: %w", classify(err))
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert participant: unexpected id type %T", res.InsertedID)
	}
	doc.ID = id
	return doc.toDomain(), nil
}

// MarkPlayed flips hasPlayed in a single findAndModify conditioned on the
// participant not having played. Documents written before hasPlayed existed
// count as unplayed.
func (r *ParticipantRepository) MarkPlayed(ctx context.Context, phoneNumber string, at time.Time) (*domain.Participant, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	at = at.UTC()
	filter := bson.M{
		"phoneNumber": phoneNumber,
		"hasPlayed":   bson.M{"$ne": true},
	}
	update := bson.M{
		"$set": bson.M{
			"hasPlayed": true,
			"playedAt":  at,
			"updatedAt": at,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc participantDoc
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("mark participant played: %w", classify(err))
	}
	return doc.toDomain(), true, nil
}
