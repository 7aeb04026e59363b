package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/promoplay/playgate/internal/core/domain"
	"github.com/promoplay/playgate/internal/core/ports"
)

// ParticipantService is the participant registry. It holds no per-participant
// state: uniqueness and the single-play gate are enforced by the repository.
type ParticipantService struct {
	repo     ports.ParticipantRepository
	recorder ports.PlayRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

// NewParticipantService returns a ParticipantService. recorder may be nil.
func NewParticipantService(repo ports.ParticipantRepository, recorder ports.PlayRecorder, logger zerolog.Logger) *ParticipantService {
	return &ParticipantService{
		repo:     repo,
		recorder: recorder,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetOrCreate returns the participant registered under phoneNumber, creating it
// on first sight. Losing a creation race to a concurrent caller is reported as
// AlreadyExisted, never as an error.
func (s *ParticipantService) GetOrCreate(ctx context.Context, phoneNumber string) (*ports.GetOrCreateResult, error) {
	if err := domain.ValidatePhoneNumber(phoneNumber); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByPhoneNumber(ctx, phoneNumber)
	if err == nil {
		return &ports.GetOrCreateResult{Participant: existing, AlreadyExisted: true}, nil
	}
	if !errors.Is(err, domain.ErrParticipantNotFound) {
		return nil, fmt.Errorf("get or create: find: %w", err)
	}

	created, err := s.repo.Create(ctx, domain.NewParticipant(phoneNumber, s.now()))
	if err == nil {
		s.logger.Info().Str("participant_id", created.ID).Str("phone_number", phoneNumber).Msg("participant created")
		return &ports.GetOrCreateResult{Participant: created}, nil
	}
	if !errors.Is(err, domain.ErrParticipantExists) {
		return nil, fmt.Errorf("get or create: insert: %w", err)
	}

	// A concurrent caller inserted the same phone number between our read and insert.
	winner, err := s.repo.FindByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return nil, fmt.Errorf("get or create: re-read after conflict: %w", err)
	}
	s.logger.Debug().Str("phone_number", phoneNumber).Msg("registration race resolved to existing participant")
	return &ports.GetOrCreateResult{Participant: winner, AlreadyExisted: true}, nil
}

// ClaimPlay consumes the participant's single play. Exactly one call per phone
// number observes Granted=true; every other call, concurrent or later, gets false.
func (s *ParticipantService) ClaimPlay(ctx context.Context, phoneNumber string) (*ports.ClaimPlayResult, error) {
	if err := domain.ValidatePhoneNumber(phoneNumber); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return nil, fmt.Errorf("claim play: %w", err)
	}
	if !p.Status().CanTransitionTo(domain.StatusPlayed) {
		return &ports.ClaimPlayResult{PhoneNumber: phoneNumber, PlayedAt: p.PlayedAt}, nil
	}

	updated, applied, err := s.repo.MarkPlayed(ctx, phoneNumber, s.now())
	if err != nil {
		return nil, fmt.Errorf("claim play: mark played: %w", err)
	}
	if !applied {
		s.logger.Debug().Str("phone_number", phoneNumber).Msg("play claim lost to concurrent request")
		return &ports.ClaimPlayResult{PhoneNumber: phoneNumber}, nil
	}

	s.logger.Info().
		Str("participant_id", updated.ID).
		Str("phone_number", phoneNumber).
		Time("played_at", *updated.PlayedAt).
		Msg("play granted")

	if s.recorder != nil {
		s.recorder.Record(domain.PlayAudit{
			ParticipantID: updated.ID,
			PhoneNumber:   phoneNumber,
			PlayedAt:      *updated.PlayedAt,
			RequestID:     domain.RequestIDFrom(ctx),
		})
	}

	return &ports.ClaimPlayResult{
		PhoneNumber: phoneNumber,
		Granted:     true,
		PlayedAt:    updated.PlayedAt,
	}, nil
}
