package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/promoplay/playgate/internal/core/domain"
)

type stubPrizeService struct {
	prizes []domain.Prize
	err    error
}

func (s *stubPrizeService) ListAvailable(context.Context) ([]domain.Prize, error) {
	return s.prizes, s.err
}

func TestPrizeHandler_Available(t *testing.T) {
	stub := &stubPrizeService{prizes: []domain.Prize{
		{ID: "p1", Name: "Mug", Value: 12.5, Quantity: 3, Probability: 0.4, IsActive: true},
		{ID: "p2", Name: "Cap", Value: 8, Quantity: 1, Probability: 0.6, IsActive: true},
	}}
	h := NewPrizeHandler(stub)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/prizes/available", nil), rec)

	if err := h.Available(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp["success"] != true || resp["count"] != float64(2) {
		t.Errorf("unexpected envelope: %v", resp)
	}
	prizes, ok := resp["prizes"].([]any)
	if !ok || len(prizes) != 2 {
		t.Fatalf("expected 2 prizes, got %v", resp["prizes"])
	}
	first := prizes[0].(map[string]any)
	if first["name"] != "Mug" || first["isActive"] != true || first["quantity"] != float64(3) {
		t.Errorf("unexpected prize payload: %v", first)
	}
}

func TestPrizeHandler_Available_Error(t *testing.T) {
	h := NewPrizeHandler(&stubPrizeService{err: domain.ErrStoreUnavailable})

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/prizes/available", nil), httptest.NewRecorder())

	if err := h.Available(c); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected store error, got %v", err)
	}
}
