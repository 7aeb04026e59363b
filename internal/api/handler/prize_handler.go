package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/promoplay/playgate/internal/core/ports"
)

type PrizeHandler struct {
	service ports.PrizeService
}

func NewPrizeHandler(service ports.PrizeService) *PrizeHandler {
	return &PrizeHandler{service: service}
}

// Available handles GET /prizes/available.
//
// @Summary      List active prizes that are still in stock
// @Tags         prizes
// @Produce      json
// @Success      200  {object}  prizesResponse
// @Failure      500  {object}  errorResponse
// @Router       /prizes/available [get]
func (h *PrizeHandler) Available(c echo.Context) error {
	prizes, err := h.service.ListAvailable(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prizesResponse{
		Success: true,
		Count:   len(prizes),
		Prizes:  prizes,
	})
}
