package handler

import (
	"net/http"
	"strconv"

	"github.com/gourmetgo/gourmetgo-backend/internal/dto"
	"github.com/gourmetgo/gourmetgo-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type RatingHandler struct {
	svc service.RatingService
}

func NewRatingHandler(svc service.RatingService) *RatingHandler {
	return &RatingHandler{svc: svc}
}

func (h *RatingHandler) RegisterRoutes(public, user *echo.Group) {
	public.GET("/experiences/:id/ratings", h.ListByExperience)

	user.POST("/reservations/:id/rating", h.SubmitRating)
	user.GET("/reservations/:id/rating/eligibility", h.CanRate)
}

func (h *RatingHandler) SubmitRating(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	reservationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	var req dto.SubmitRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	rating, err := h.svc.SubmitRating(c.Request().Context(), uint(reservationID), userID, req.Score, req.Comment)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToRatingResponse(rating))
}

// CanRate exposes the eligibility check for client display. Submission
// re-checks server-side regardless of what the client saw here.
func (h *RatingHandler) CanRate(c echo.Context) error {
	if _, err := currentUserID(c); err != nil {
		return err
	}
	reservationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reservation id")
	}

	eligible, err := h.svc.CanRate(c.Request().Context(), uint(reservationID))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"eligible": eligible})
}

func (h *RatingHandler) ListByExperience(c echo.Context) error {
	experienceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid experience id")
	}

	ratings, err := h.svc.ListByExperience(c.Request().Context(), uint(experienceID))
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.RatingResponse, len(ratings))
	for i, r := range ratings {
		resp[i] = dto.ToRatingResponse(&r)
	}
	return c.JSON(http.StatusOK, resp)
}
