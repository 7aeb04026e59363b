package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/promoplay/playgate/internal/core/domain"
	"github.com/promoplay/playgate/internal/core/ports"
)

type stubParticipantService struct {
	getOrCreateFn func(ctx context.Context, phone string) (*ports.GetOrCreateResult, error)
	claimPlayFn   func(ctx context.Context, phone string) (*ports.ClaimPlayResult, error)
}

func (s *stubParticipantService) GetOrCreate(ctx context.Context, phone string) (*ports.GetOrCreateResult, error) {
	return s.getOrCreateFn(ctx, phone)
}

func (s *stubParticipantService) ClaimPlay(ctx context.Context, phone string) (*ports.ClaimPlayResult, error) {
	return s.claimPlayFn(ctx, phone)
}

func newPhoneContext(path, phone string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodGet, path+phone, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("phoneNumber")
	c.SetParamValues(phone)
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestParticipantHandler_CheckOrCreate_Created(t *testing.T) {
	created := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	stub := &stubParticipantService{
		getOrCreateFn: func(_ context.Context, phone string) (*ports.GetOrCreateResult, error) {
			if phone != "5551234567" {
				t.Fatalf("unexpected phone %q", phone)
			}
			return &ports.GetOrCreateResult{
				Participant: &domain.Participant{ID: "abc123", PhoneNumber: phone, CreatedAt: created},
			}, nil
		},
	}
	h := NewParticipantHandler(stub)
	c, rec := newPhoneContext("/api/users/check-or-create/", "5551234567")

	if err := h.CheckOrCreate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp["success"] != true || resp["alreadyExisted"] != false {
		t.Errorf("unexpected flags: %v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["id"] != "abc123" || user["phoneNumber"] != "5551234567" || user["createdAt"] != "2026-05-01T09:30:00Z" {
		t.Errorf("unexpected user payload: %+v", user)
	}
}

func TestParticipantHandler_CheckOrCreate_AlreadyExisted(t *testing.T) {
	stub := &stubParticipantService{
		getOrCreateFn: func(_ context.Context, phone string) (*ports.GetOrCreateResult, error) {
			return &ports.GetOrCreateResult{
				Participant:    &domain.Participant{ID: "abc123", PhoneNumber: phone, CreatedAt: time.Now()},
				AlreadyExisted: true,
			}, nil
		},
	}
	h := NewParticipantHandler(stub)
	c, rec := newPhoneContext("/api/users/check-or-create/", "5551234567")

	if err := h.CheckOrCreate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp["alreadyExisted"] != true || resp["message"] != "User already exists" {
		t.Errorf("unexpected payload: %v", resp)
	}
	if user, _ := resp["user"].(map[string]any); user["id"] != "abc123" {
		t.Errorf("expected existing participant id, got %v", resp["user"])
	}
}

func TestParticipantHandler_CheckOrCreate_InvalidPhone(t *testing.T) {
	stub := &stubParticipantService{
		getOrCreateFn: func(context.Context, string) (*ports.GetOrCreateResult, error) {
			t.Fatalf("service must not be called for an invalid phone")
			return nil, nil
		},
	}
	h := NewParticipantHandler(stub)

	for _, bad := range []string{"000", "12345678901234567", "555123456x"} {
		c, _ := newPhoneContext("/api/users/check-or-create/", bad)
		err := h.CheckOrCreate(c)
		if !errors.Is(err, domain.ErrInvalidPhoneNumber) {
			t.Errorf("%q: expected ErrInvalidPhoneNumber, got %v", bad, err)
		}
	}
}

func TestParticipantHandler_CheckOrCreate_ServiceError(t *testing.T) {
	boom := errors.New("boom")
	stub := &stubParticipantService{
		getOrCreateFn: func(context.Context, string) (*ports.GetOrCreateResult, error) {
			return nil, boom
		},
	}
	h := NewParticipantHandler(stub)
	c, _ := newPhoneContext("/api/users/check-or-create/", "5551234567")

	if err := h.CheckOrCreate(c); !errors.Is(err, boom) {
		t.Fatalf("expected service error to propagate, got %v", err)
	}
}

func TestParticipantHandler_CanPlay_Granted(t *testing.T) {
	playedAt := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	stub := &stubParticipantService{
		claimPlayFn: func(_ context.Context, phone string) (*ports.ClaimPlayResult, error) {
			return &ports.ClaimPlayResult{PhoneNumber: phone, Granted: true, PlayedAt: &playedAt}, nil
		},
	}
	h := NewParticipantHandler(stub)
	c, rec := newPhoneContext("/api/users/can-play/", "5551234567")

	if err := h.CanPlay(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp["canPlay"] != true || resp["success"] != true {
		t.Errorf("unexpected flags: %v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["playedAt"] != "2026-05-01T10:00:00Z" || user["phoneNumber"] != "5551234567" {
		t.Errorf("unexpected user payload: %v", resp["user"])
	}
}

func TestParticipantHandler_CanPlay_AlreadyPlayed(t *testing.T) {
	stub := &stubParticipantService{
		claimPlayFn: func(_ context.Context, phone string) (*ports.ClaimPlayResult, error) {
			return &ports.ClaimPlayResult{PhoneNumber: phone}, nil
		},
	}
	h := NewParticipantHandler(stub)
	c, rec := newPhoneContext("/api/users/can-play/", "5551234567")

	if err := h.CanPlay(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp["canPlay"] != false || resp["message"] != "This user has already played the game" {
		t.Errorf("unexpected payload: %v", resp)
	}
	if _, ok := resp["user"]; ok {
		t.Error("denied claim must not include user")
	}
}

func TestParticipantHandler_CanPlay_NotFound(t *testing.T) {
	stub := &stubParticipantService{
		claimPlayFn: func(context.Context, string) (*ports.ClaimPlayResult, error) {
			return nil, domain.ErrParticipantNotFound
		},
	}
	h := NewParticipantHandler(stub)
	c, _ := newPhoneContext("/api/users/can-play/", "9998887777")

	if err := h.CanPlay(c); !errors.Is(err, domain.ErrParticipantNotFound) {
		t.Fatalf("expected ErrParticipantNotFound, got %v", err)
	}
}

func TestParticipantHandler_CanPlay_InvalidPhone(t *testing.T) {
	stub := &stubParticipantService{
		claimPlayFn: func(context.Context, string) (*ports.ClaimPlayResult, error) {
			t.Fatalf("service must not be called for an invalid phone")
			return nil, nil
		},
	}
	h := NewParticipantHandler(stub)
	c, _ := newPhoneContext("/api/users/can-play/", "000")

	if err := h.CanPlay(c); !errors.Is(err, domain.ErrInvalidPhoneNumber) {
		t.Fatalf("expected ErrInvalidPhoneNumber, got %v", err)
	}
}

func TestParticipantHandler_PhoneNumberComesFromPathOnly(t *testing.T) {
	var claimed, registered []string
	stub := &stubParticipantService{
		getOrCreateFn: func(_ context.Context, phone string) (*ports.GetOrCreateResult, error) {
			registered = append(registered, phone)
			return &ports.GetOrCreateResult{Participant: &domain.Participant{ID: "abc123", PhoneNumber: phone}}, nil
		},
		claimPlayFn: func(_ context.Context, phone string) (*ports.ClaimPlayResult, error) {
			claimed = append(claimed, phone)
			now := time.Now()
			return &ports.ClaimPlayResult{PhoneNumber: phone, Granted: true, PlayedAt: &now}, nil
		},
	}
	h := NewParticipantHandler(stub)

	newRequest := func(path string) (echo.Context, *httptest.ResponseRecorder) {
		e := echo.New()
		e.Validator = NewValidator()
		req := httptest.NewRequest(http.MethodGet, path+"5551234567?phoneNumber=1112223333", strings.NewReader(`{"phoneNumber":"9998887777"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("phoneNumber")
		c.SetParamValues("5551234567")
		return c, rec
	}

	c, _ := newRequest("/api/users/check-or-create/")
	if err := h.CheckOrCreate(c); err != nil {
		t.Fatalf("check-or-create error: %v", err)
	}
	c, rec := newRequest("/api/users/can-play/")
	if err := h.CanPlay(c); err != nil {
		t.Fatalf("can-play error: %v", err)
	}

	if len(registered) != 1 || registered[0] != "5551234567" {
		t.Errorf("check-or-create used %v, want the path phone number", registered)
	}
	if len(claimed) != 1 || claimed[0] != "5551234567" {
		t.Errorf("can-play used %v, want the path phone number", claimed)
	}
	if user := decode(t, rec)["user"].(map[string]any); user["phoneNumber"] != "5551234567" {
		t.Errorf("unexpected user payload: %v", user)
	}
}
