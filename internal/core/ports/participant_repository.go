package ports

import (
	"context"
	"time"

	"github.com/promoplay/playgate/internal/core/domain"
)

// ParticipantRepository is the durable backing of the participant registry.
// Implementations must enforce phone number uniqueness in the store itself.
type ParticipantRepository interface {
	// FindByPhoneNumber returns domain.ErrParticipantNotFound when no record exists.
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Participant, error)

	// Create inserts p and returns the stored record with its assigned ID.
	// A uniqueness violation on the phone number is reported as domain.ErrParticipantExists.
	Create(ctx context.Context, p *domain.Participant) (*domain.Participant, error)

	// MarkPlayed atomically sets hasPlayed=true and playedAt=at, conditioned on
	// hasPlayed still being false. applied is false when the condition did not hold.
	MarkPlayed(ctx context.Context, phoneNumber string, at time.Time) (p *domain.Participant, applied bool, err error)
}

// PlayAuditRepository persists the audit trail of granted plays.
type PlayAuditRepository interface {
	InsertPlayAudit(ctx context.Context, audit *domain.PlayAudit) error
}
