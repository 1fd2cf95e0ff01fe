package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/herbaria/plants-api/internal/core/domain"
	"github.com/herbaria/plants-api/internal/core/ports"
	"github.com/herbaria/plants-api/internal/core/service"
)

// PlantHandler handles HTTP requests for the plant catalog.
type PlantHandler struct {
	service ports.PlantService
}

func NewPlantHandler(service ports.PlantService) *PlantHandler {
	return &PlantHandler{service: service}
}

// List handles GET /v1/plants.
//
// @Summary      List plants
// @Tags         plants
// @Produce      json
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  plantListResponse
// @Router       /v1/plants [get]
func (h *PlantHandler) List(c echo.Context) error {
	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	result, err := h.service.List(c.Request().Context(), page, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, plantListResponse{
		Plants: result.Plants,
		Total:  result.Total,
		Page:   result.Page,
		Limit:  result.Limit,
	})
}

// Get handles GET /v1/plants/:id.
//
// @Summary      Get a plant by id
// @Tags         plants
// @Produce      json
// @Param        id   path      string  true  "Plant id"
// @Success      200  {object}  domain.Plant
// @Failure      404  {object}  map[string]string
// @Router       /v1/plants/{id} [get]
func (h *PlantHandler) Get(c echo.Context) error {
	plant, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrPlantNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "plant not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, plant)
}

// Create handles POST /v1/plants.
//
// @Summary      Create a plant
// @Tags         plants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      plantRequest  true  "Plant details"
// @Success      201   {object}  domain.Plant
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/plants [post]
func (h *PlantHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req plantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	plant, err := h.service.Create(c.Request().Context(), actor, plantInput(req))
	if err != nil {
		if errors.Is(err, service.ErrMissingPlantFields) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusCreated, plant)
}

// Update handles PUT /v1/plants/:id.
//
// @Summary      Update a plant
// @Tags         plants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Plant id"
// @Param        body  body      plantRequest  true  "Plant details"
// @Success      200   {object}  domain.Plant
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/plants/{id} [put]
func (h *PlantHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req plantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	plant, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), plantInput(req))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPlantNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "plant not found"})
		case errors.Is(err, service.ErrMissingPlantFields):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, plant)
}

// Delete handles DELETE /v1/plants/:id.
//
// @Summary      Delete a plant
// @Tags         plants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Plant id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/plants/{id} [delete]
func (h *PlantHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrPlantNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "plant not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "plant deleted successfully"})
}

// Search handles GET /v1/search.
//
// @Summary      Search the catalog
// @Tags         plants
// @Produce      json
// @Param        q       query     string  true   "Search query"
// @Param        filter  query     string  false  "all, name, or uses"
// @Success      200     {array}   domain.Plant
// @Router       /v1/search [get]
func (h *PlantHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	filter := ports.SearchFilter(c.QueryParam("filter"))

	results, err := h.service.Search(c.Request().Context(), query, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, results)
}

// Categories handles GET /v1/categories.
//
// @Summary      List category tags with counts
// @Tags         plants
// @Produce      json
// @Success      200  {array}  ports.CategoryCount
// @Router       /v1/categories [get]
func (h *PlantHandler) Categories(c echo.Context) error {
	counts, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, counts)
}

// Stats handles GET /v1/admin/stats.
//
// @Summary      Back-office dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.AdminStats
// @Router       /v1/admin/stats [get]
func (h *PlantHandler) Stats(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, stats)
}

func plantInput(req plantRequest) ports.PlantInput {
	return ports.PlantInput{
		Name:            req.Name,
		ScientificName:  req.ScientificName,
		TagalogName:     req.TagalogName,
		Family:          req.Family,
		Genus:           req.Genus,
		Category:        req.Category,
		Uses:            req.Uses,
		Description:     req.Description,
		ActiveCompounds: req.ActiveCompounds,
		Preparation:     req.Preparation,
		Precautions:     req.Precautions,
		Image:           req.Image,
	}
}
