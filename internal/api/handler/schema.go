package handler

import (
	"time"

	"github.com/promoplay/playgate/internal/core/domain"
)

// errorResponse documents the envelope rendered by the API error handler.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type phoneParam struct {
	PhoneNumber string `param:"phoneNumber" validate:"required,phone"`
}

type userResponse struct {
	ID          string    `json:"id"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}

type checkOrCreateResponse struct {
	Success        bool         `json:"success"`
	Message        string       `json:"message"`
	AlreadyExisted bool         `json:"alreadyExisted"`
	User           userResponse `json:"user"`
}

type playUserResponse struct {
	PhoneNumber string     `json:"phoneNumber"`
	PlayedAt    *time.Time `json:"playedAt,omitempty"`
}

type canPlayResponse struct {
	Success bool              `json:"success"`
	CanPlay bool              `json:"canPlay"`
	Message string            `json:"message"`
	User    *playUserResponse `json:"user,omitempty"`
}

type prizesResponse struct {
	Success bool           `json:"success"`
	Count   int            `json:"count"`
	Prizes  []domain.Prize `json:"prizes"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}
