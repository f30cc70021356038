package handler

import (
	"net/http"
	"strconv"

	"github.com/gourmetgo/gourmetgo-backend/internal/dto"
	"github.com/gourmetgo/gourmetgo-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type DeletionHandler struct {
	svc service.DeletionService
}

func NewDeletionHandler(svc service.DeletionService) *DeletionHandler {
	return &DeletionHandler{svc: svc}
}

func (h *DeletionHandler) RegisterRoutes(chef *echo.Group) {
	chef.POST("/experiences/:id/deletion", h.Begin)
	chef.POST("/deletion/:id/resend", h.Resend)
	chef.POST("/deletion/:id/verify", h.Verify)
	chef.POST("/deletion/:id/confirm", h.Confirm)
}

func (h *DeletionHandler) Begin(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	experienceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid experience id")
	}

	var req dto.BeginDeletionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ch, err := h.svc.Begin(c.Request().Context(), uint(experienceID), ownerID, currentEmail(c), req.Email)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToChallengeResponse(ch))
}

func (h *DeletionHandler) Resend(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	challengeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid challenge id")
	}

	if err := h.svc.Resend(c.Request().Context(), uint(challengeID), ownerID, currentEmail(c)); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DeletionHandler) Verify(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	challengeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid challenge id")
	}

	var req dto.VerifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.Verify(c.Request().Context(), uint(challengeID), ownerID, req.Code); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DeletionHandler) Confirm(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	challengeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid challenge id")
	}

	if err := h.svc.Confirm(c.Request().Context(), uint(challengeID), ownerID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
