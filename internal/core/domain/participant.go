package domain

import (
	"regexp"
	"time"
)

// PlayStatus is the play-gate state of a participant.
type PlayStatus string

const (
	StatusUnplayed PlayStatus = "unplayed"
	StatusPlayed   PlayStatus = "played"
)

var phoneNumberPattern = regexp.MustCompile(`^[0-9]{10,15}$`)

// ValidPhoneNumber reports whether s is 10 to 15 ASCII digits.
func ValidPhoneNumber(s string) bool {
	return phoneNumberPattern.MatchString(s)
}

// ValidatePhoneNumber returns ErrInvalidPhoneNumber when s does not satisfy ValidPhoneNumber.
func ValidatePhoneNumber(s string) error {
	if !ValidPhoneNumber(s) {
		return ErrInvalidPhoneNumber
	}
	return nil
}

// Participant is a registered player, identified by a unique phone number.
// HasPlayed only ever moves from false to true; PlayedAt is set together with it.
type Participant struct {
	ID          string
	PhoneNumber string
	HasPlayed   bool
	PlayedAt    *time.Time
	CreatedAt   time.Time
}

// NewParticipant builds an unplayed participant for phoneNumber.
func NewParticipant(phoneNumber string, now time.Time) *Participant {
	return &Participant{
		PhoneNumber: phoneNumber,
		CreatedAt:   now.UTC(),
	}
}

// Status derives the play-gate state from HasPlayed.
func (p *Participant) Status() PlayStatus {
	if p.HasPlayed {
		return StatusPlayed
	}
	return StatusUnplayed
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Unplayed -> Played is the only transition.
func (s PlayStatus) CanTransitionTo(next PlayStatus) bool {
	return s == StatusUnplayed && next == StatusPlayed
}
