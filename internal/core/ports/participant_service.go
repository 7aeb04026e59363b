package ports

import (
	"context"
	"time"

	"github.com/promoplay/playgate/internal/core/domain"
)

// GetOrCreateResult is returned by ParticipantService.GetOrCreate.
type GetOrCreateResult struct {
	Participant *domain.Participant
	// AlreadyExisted is true when the phone number was registered before this call,
	// including when a concurrent caller created it first.
	AlreadyExisted bool
}

// ClaimPlayResult is returned by ParticipantService.ClaimPlay.
type ClaimPlayResult struct {
	PhoneNumber string
	// Granted is true only for the single call that flipped the participant to played.
	Granted  bool
	PlayedAt *time.Time
}

// ParticipantService registers participants and gates their single play.
type ParticipantService interface {
	GetOrCreate(ctx context.Context, phoneNumber string) (*GetOrCreateResult, error)
	ClaimPlay(ctx context.Context, phoneNumber string) (*ClaimPlayResult, error)
}

// PlayRecorder receives granted plays for asynchronous auditing.
type PlayRecorder interface {
	Record(audit domain.PlayAudit)
}
