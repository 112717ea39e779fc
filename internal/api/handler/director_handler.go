package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinevault/movies-api/internal/api/metrics"
	"github.com/cinevault/movies-api/internal/core/domain"
	"github.com/cinevault/movies-api/internal/core/ports"
)

// DirectorHandler handles HTTP requests for the director catalogue.
type DirectorHandler struct {
	service ports.DirectorService
}

func NewDirectorHandler(service ports.DirectorService) *DirectorHandler {
	return &DirectorHandler{service: service}
}

// List handles GET /directors.
//
// @Summary      List directors
// @Tags         directors
// @Produce      json
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size, max 100"
// @Success      200    {object}  directorListResponse
// @Failure      400    {object}  errorResponse
// @Router       /directors [get]
func (h *DirectorHandler) List(c echo.Context) error {
	page, err := queryPage(c)
	if err != nil {
		return err
	}
	res, err := h.service.ListDirectors(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, directorListResponse{Data: res.Items, Pagination: paginationOf(res)})
}

// Get handles GET /directors/:id.
//
// @Summary      Get a director
// @Tags         directors
// @Produce      json
// @Param        id   path      int  true  "Director ID"
// @Success      200  {object}  domain.Director
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /directors/{id} [get]
func (h *DirectorHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	d, err := h.service.GetDirector(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// Create handles POST /directors.
//
// @Summary      Create a director
// @Tags         directors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDirectorRequest  true  "Director"
// @Success      201   {object}  domain.Director
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /directors [post]
func (h *DirectorHandler) Create(c echo.Context) error {
	var req createDirectorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	d, err := h.service.CreateDirector(c.Request().Context(), domain.Director{
		Name:      req.Name,
		BirthYear: req.BirthYear,
	})
	if err != nil {
		return err
	}
	metrics.CatalogMutationsTotal.WithLabelValues("director", "create").Inc()
	return c.JSON(http.StatusCreated, d)
}

// Update handles PUT /directors/:id. Only the fields present in the body change.
//
// @Summary      Update a director
// @Tags         directors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Director ID"
// @Param        body  body      updateDirectorRequest  true  "Fields to change"
// @Success      200   {object}  domain.Director
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /directors/{id} [put]
func (h *DirectorHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateDirectorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	d, err := h.service.UpdateDirector(c.Request().Context(), id, domain.DirectorPatch{
		Name:      req.Name,
		BirthYear: req.BirthYear,
	})
	if err != nil {
		return err
	}
	metrics.CatalogMutationsTotal.WithLabelValues("director", "update").Inc()
	return c.JSON(http.StatusOK, d)
}

// Delete handles DELETE /directors/:id. Movies by the director keep
// existing without one.
//
// @Summary      Delete a director
// @Tags         directors
// @Security     BearerAuth
// @Param        id   path  int  true  "Director ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /directors/{id} [delete]
func (h *DirectorHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteDirector(c.Request().Context(), id); err != nil {
		return err
	}
	metrics.CatalogMutationsTotal.WithLabelValues("director", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
