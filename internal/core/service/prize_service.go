package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/promoplay/playgate/internal/core/domain"
	"github.com/promoplay/playgate/internal/core/ports"
)

type PrizeService struct {
	repo   ports.PrizeRepository
	cache  ports.PrizeCache
	logger zerolog.Logger
}

// NewPrizeService returns a PrizeService. cache may be nil to always read the store.
func NewPrizeService(repo ports.PrizeRepository, cache ports.PrizeCache, logger zerolog.Logger) *PrizeService {
	return &PrizeService{repo: repo, cache: cache, logger: logger}
}

// ListAvailable returns active prizes with stock left. Cache failures fall
// through to the store.
func (s *PrizeService) ListAvailable(ctx context.Context) ([]domain.Prize, error) {
	if s.cache != nil {
		prizes, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("prize cache read failed, reading store")
		} else if ok {
			return prizes, nil
		}
	}

	prizes, err := s.repo.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list available prizes: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, prizes); err != nil {
			s.logger.Warn().Err(err).Msg("prize cache write failed")
		}
	}
	return prizes, nil
}
