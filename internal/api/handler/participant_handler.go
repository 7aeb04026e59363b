package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/promoplay/playgate/internal/api/metrics"
	"github.com/promoplay/playgate/internal/core/domain"
	"github.com/promoplay/playgate/internal/core/ports"
)

// ParticipantHandler handles participant registration and play claims.
type ParticipantHandler struct {
	service ports.ParticipantService
}

func NewParticipantHandler(service ports.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{service: service}
}

// CheckOrCreate handles GET /users/check-or-create/:phoneNumber.
//
// @Summary      Register a participant or fetch the existing one
// @Tags         users
// @Produce      json
// @Param        phoneNumber  path      string  true  "Phone number, 10-15 digits"
// @Success      201          {object}  checkOrCreateResponse
// @Success      409          {object}  checkOrCreateResponse
// @Failure      400          {object}  errorResponse
// @Failure      500          {object}  errorResponse
// @Router       /users/check-or-create/{phoneNumber} [get]
func (h *ParticipantHandler) CheckOrCreate(c echo.Context) error {
	phoneNumber, err := bindPhoneNumber(c)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	res, err := h.service.GetOrCreate(c.Request().Context(), phoneNumber)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	user := userResponse{
		ID:          res.Participant.ID,
		PhoneNumber: res.Participant.PhoneNumber,
		CreatedAt:   res.Participant.CreatedAt.UTC(),
	}

	if res.AlreadyExisted {
		metrics.RegistrationsTotal.WithLabelValues("existing").Inc()
		return c.JSON(http.StatusConflict, checkOrCreateResponse{
			Success:        false,
			Message:        "User already exists",
			AlreadyExisted: true,
			User:           user,
		})
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, checkOrCreateResponse{
		Success: true,
		Message: "New user created successfully",
		User:    user,
	})
}

// CanPlay handles GET /users/can-play/:phoneNumber. The first call for a
// registered phone number consumes its play; later calls are told it is gone.
//
// @Summary      Claim the participant's single play
// @Tags         users
// @Produce      json
// @Param        phoneNumber  path      string  true  "Phone number, 10-15 digits"
// @Success      200          {object}  canPlayResponse
// @Failure      400          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Failure      500          {object}  errorResponse
// @Router       /users/can-play/{phoneNumber} [get]
func (h *ParticipantHandler) CanPlay(c echo.Context) error {
	phoneNumber, err := bindPhoneNumber(c)
	if err != nil {
		metrics.PlayClaimsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	res, err := h.service.ClaimPlay(c.Request().Context(), phoneNumber)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			metrics.PlayClaimsTotal.WithLabelValues("not_found").Inc()
		} else {
			metrics.PlayClaimsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	if !res.Granted {
		metrics.PlayClaimsTotal.WithLabelValues("denied").Inc()
		return c.JSON(http.StatusOK, canPlayResponse{
			Success: false,
			CanPlay: false,
			Message: "This user has already played the game",
		})
	}

	metrics.PlayClaimsTotal.WithLabelValues("granted").Inc()
	playedAt := res.PlayedAt.UTC()
	return c.JSON(http.StatusOK, canPlayResponse{
		Success: true,
		CanPlay: true,
		Message: "You can now play the game",
		User: &playUserResponse{
			PhoneNumber: res.PhoneNumber,
			PlayedAt:    &playedAt,
		},
	})
}

// pathBinder binds path parameters only. The phone number must come from the
// URL, never from a query string or request body.
var pathBinder = &echo.DefaultBinder{}

// bindPhoneNumber extracts and validates the :phoneNumber path parameter.
func bindPhoneNumber(c echo.Context) (string, error) {
	var p phoneParam
	if err := pathBinder.BindPathParams(c, &p); err != nil {
		return "", domain.ErrInvalidPhoneNumber
	}
	if err := c.Validate(&p); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidPhoneNumber, err)
	}
	return p.PhoneNumber, nil
}
