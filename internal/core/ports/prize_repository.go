package ports

import (
	"context"

	"github.com/promoplay/playgate/internal/core/domain"
)

// PrizeRepository reads the prize catalog.
type PrizeRepository interface {
	// ListAvailable returns prizes with isActive=true and quantity>0, in no particular order.
	ListAvailable(ctx context.Context) ([]domain.Prize, error)
}

// PrizeCache holds a copy of the available prize list.
// Get returns ok=false on a miss.
type PrizeCache interface {
	Get(ctx context.Context) (prizes []domain.Prize, ok bool, err error)
	Set(ctx context.Context, prizes []domain.Prize) error
}

// PrizeService exposes the read-only prize catalog.
type PrizeService interface {
	ListAvailable(ctx context.Context) ([]domain.Prize, error)
}
