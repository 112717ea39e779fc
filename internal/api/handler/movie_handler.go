package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinevault/movies-api/internal/api/metrics"
	"github.com/cinevault/movies-api/internal/core/domain"
	"github.com/cinevault/movies-api/internal/core/ports"
)

// MovieHandler handles HTTP requests for the movie catalogue.
type MovieHandler struct {
	service ports.MovieService
}

func NewMovieHandler(service ports.MovieService) *MovieHandler {
	return &MovieHandler{service: service}
}

// List handles GET /movies.
//
// @Summary      List movies
// @Tags         movies
// @Produce      json
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size, max 100"
// @Success      200    {object}  movieListResponse
// @Failure      400    {object}  errorResponse
// @Router       /movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	page, err := queryPage(c)
	if err != nil {
		return err
	}
	res, err := h.service.ListMovies(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movieListResponse{Data: res.Items, Pagination: paginationOf(res)})
}

// Get handles GET /movies/:id.
//
// @Summary      Get a movie
// @Tags         movies
// @Produce      json
// @Param        id   path      int  true  "Movie ID"
// @Success      200  {object}  domain.Movie
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /movies/{id} [get]
func (h *MovieHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	m, err := h.service.GetMovie(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Create handles POST /movies.
//
// @Summary      Create a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMovieRequest  true  "Movie"
// @Success      201   {object}  domain.Movie
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	var req createMovieRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	m, err := h.service.CreateMovie(c.Request().Context(), domain.Movie{
		Title:      req.Title,
		Year:       req.Year,
		DirectorID: req.DirectorID,
	})
	if err != nil {
		return err
	}
	metrics.CatalogMutationsTotal.WithLabelValues("movie", "create").Inc()
	return c.JSON(http.StatusCreated, m)
}

// Update handles PUT /movies/:id. Only the fields present in the body change.
//
// @Summary      Update a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Movie ID"
// @Param        body  body      updateMovieRequest  true  "Fields to change"
// @Success      200   {object}  domain.Movie
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /movies/{id} [put]
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateMovieRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	m, err := h.service.UpdateMovie(c.Request().Context(), id, domain.MoviePatch{
		Title:      req.Title,
		Year:       req.Year,
		DirectorID: req.DirectorID,
	})
	if err != nil {
		return err
	}
	metrics.CatalogMutationsTotal.WithLabelValues("movie", "update").Inc()
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /movies/:id.
//
// @Summary      Delete a movie
// @Tags         movies
// @Security     BearerAuth
// @Param        id   path  int  true  "Movie ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /movies/{id} [delete]
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteMovie(c.Request().Context(), id); err != nil {
		return err
	}
	metrics.CatalogMutationsTotal.WithLabelValues("movie", "delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
