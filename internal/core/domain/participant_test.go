package domain

import (
	"testing"
	"time"
)

func TestValidPhoneNumber(t *testing.T) {
	valid := []string{"5551234567", "123456789012345", "000000000000"}
	invalid := []string{"", "000", "123456789", "1234567890123456", "555-123-4567", "+5551234567", "55512345a7", " 5551234567", "５５５１２３４５６７"}

	for _, s := range valid {
		if !ValidPhoneNumber(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range invalid {
		if ValidPhoneNumber(s) {
			t.Errorf("expected %q to be invalid", s)
		}
		if err := ValidatePhoneNumber(s); err != ErrInvalidPhoneNumber {
			t.Errorf("ValidatePhoneNumber(%q) = %v, want ErrInvalidPhoneNumber", s, err)
		}
	}
}

func TestNewParticipant_StartsUnplayed(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	p := NewParticipant("5551234567", now)

	if p.HasPlayed || p.PlayedAt != nil {
		t.Fatalf("new participant must be unplayed: %+v", p)
	}
	if p.Status() != StatusUnplayed {
		t.Errorf("expected status %q, got %q", StatusUnplayed, p.Status())
	}
	if !p.CreatedAt.Equal(now) || p.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt should be now in UTC, got %v", p.CreatedAt)
	}
}

func TestPlayStatus_Transitions(t *testing.T) {
	if !StatusUnplayed.CanTransitionTo(StatusPlayed) {
		t.Error("unplayed -> played must be allowed")
	}
	if StatusPlayed.CanTransitionTo(StatusUnplayed) {
		t.Error("played -> unplayed must not be allowed")
	}
	if StatusPlayed.CanTransitionTo(StatusPlayed) {
		t.Error("played -> played must not be allowed")
	}
}

func TestPrize_Available(t *testing.T) {
	if !(Prize{IsActive: true, Quantity: 1}).Available() {
		t.Error("active prize in stock must be available")
	}
	if (Prize{IsActive: true, Quantity: 0}).Available() {
		t.Error("out of stock prize must not be available")
	}
	if (Prize{IsActive: false, Quantity: 5}).Available() {
		t.Error("inactive prize must not be available")
	}
}
