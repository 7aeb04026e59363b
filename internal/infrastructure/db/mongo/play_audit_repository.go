package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/promoplay/playgate/internal/core/domain"
)

const collectionPlayAudits = "play_audits"

// PlayAuditRepository writes the granted-play audit trail.
type PlayAuditRepository struct {
	col       *mongo.Collection
	opTimeout time.Duration
}

func NewPlayAuditRepository(db *mongo.Database, opTimeout time.Duration) *PlayAuditRepository {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	return &PlayAuditRepository{col: db.Collection(collectionPlayAudits), opTimeout: opTimeout}
}

func playAuditIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "phoneNumber", Value: 1}},
		Options: options.Index().SetName("phoneNumber"),
	}
}

// InsertPlayAudit persists a granted play to the play_audits collection.
func (r *PlayAuditRepository) InsertPlayAudit(ctx context.Context, audit *domain.PlayAudit) error {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	doc := bson.M{
		"participantId": audit.ParticipantID,
		"phoneNumber":   audit.PhoneNumber,
		"playedAt":      audit.PlayedAt.UTC(),
		"requestId":     audit.RequestID,
		"recordedAt":    time.Now().UTC(),
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert play audit: %w", classify(err))
	}
	return nil
}
