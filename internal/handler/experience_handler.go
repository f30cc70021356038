package handler

import (
	"net/http"
	"strconv"

	"github.com/gourmetgo/gourmetgo-backend/internal/dto"
	"github.com/gourmetgo/gourmetgo-backend/internal/models"
	"github.com/gourmetgo/gourmetgo-backend/internal/repository"
	"github.com/gourmetgo/gourmetgo-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ExperienceHandler struct {
	svc    service.ExperienceService
	resSvc service.ReservationService
}

func NewExperienceHandler(svc service.ExperienceService, resSvc service.ReservationService) *ExperienceHandler {
	return &ExperienceHandler{svc: svc, resSvc: resSvc}
}

func (h *ExperienceHandler) RegisterRoutes(public, chef *echo.Group) {
	public.GET("/experiences", h.ListExperiences)
	public.GET("/experiences/:id", h.GetExperience)

	chef.POST("/experiences", h.CreateExperience)
	chef.GET("/my/experiences", h.ListMine)
	chef.PUT("/experiences/:id/capacity", h.EditCapacity)
	chef.POST("/experiences/:id/activate", h.Activate)
	chef.GET("/experiences/:id/attendees", h.ListAttendees)
}

func (h *ExperienceHandler) CreateExperience(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateExperienceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	exp := &models.Experience{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		EventType:   req.EventType,
		LocationURL: req.LocationURL,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Capacity:    req.Capacity,
		DateTime:    req.DateTime,
	}
	if err := h.svc.CreateExperience(c.Request().Context(), exp); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToExperienceResponse(exp))
}

func (h *ExperienceHandler) ListExperiences(c echo.Context) error {
	filter := repository.ExperienceFilter{
		City:          c.QueryParam("city"),
		EventType:     c.QueryParam("event_type"),
		AvailableOnly: c.QueryParam("available") == "true",
	}

	exps, err := h.svc.ListExperiences(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.ExperienceResponse, len(exps))
	for i, e := range exps {
		resp[i] = dto.ToExperienceResponse(&e)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ExperienceHandler) GetExperience(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid experience id")
	}

	exp, err := h.svc.GetExperience(c.Request().Context(), uint(id))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.ToExperienceResponse(exp))
}

func (h *ExperienceHandler) ListMine(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	exps, err := h.svc.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.ExperienceResponse, len(exps))
	for i, e := range exps {
		resp[i] = dto.ToExperienceResponse(&e)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ExperienceHandler) EditCapacity(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid experience id")
	}

	var req dto.EditCapacityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	status, err := h.svc.EditCapacity(c.Request().Context(), uint(id), ownerID, req.Capacity)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.CapacityResponse{
		ID:       uint(id),
		Capacity: req.Capacity,
		Status:   status,
	})
}

func (h *ExperienceHandler) Activate(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid experience id")
	}

	if err := h.svc.Activate(c.Request().Context(), uint(id), ownerID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ExperienceHandler) ListAttendees(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid experience id")
	}

	exp, err := h.svc.GetExperience(c.Request().Context(), uint(id))
	if err != nil {
		return toHTTPError(err)
	}
	if exp.OwnerID != ownerID {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}

	confirmed := models.ReservationConfirmed
	reservations, err := h.resSvc.ListByExperience(c.Request().Context(), uint(id), &confirmed)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]dto.ReservationResponse, len(reservations))
	for i, r := range reservations {
		resp[i] = dto.ToReservationResponse(&r)
	}
	return c.JSON(http.StatusOK, resp)
}
