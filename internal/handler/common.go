package handler

import (
	"errors"
	"net/http"

	"github.com/gourmetgo/gourmetgo-backend/internal/middleware"
	"github.com/gourmetgo/gourmetgo-backend/internal/service"
	"github.com/labstack/echo/v4"
)

func currentUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return id, nil
}

func currentEmail(c echo.Context) string {
	email, _ := c.Get(middleware.CtxEmail).(string)
	return email
}

// toHTTPError maps service sentinels onto transport codes. Business-rule
// outcomes are conflicts, verification mismatches keep their step and come
// back as 422, everything unrecognized is a 500.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrExperienceNotFound),
		errors.Is(err, service.ErrReservationNotFound),
		errors.Is(err, service.ErrChallengeNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrInvalidCapacity):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrSoldOut),
		errors.Is(err, service.ErrBookingClosed),
		errors.Is(err, service.ErrDeletionBlocked),
		errors.Is(err, service.ErrNotEligible),
		errors.Is(err, service.ErrDuplicateRating),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrInvalidStep),
		errors.Is(err, service.ErrTooManyAttempts):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, service.ErrVerificationFailed),
		errors.Is(err, service.ErrChallengeExpired):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
