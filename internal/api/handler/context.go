package handler

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cinevault/movies-api/internal/core/domain"
	"github.com/cinevault/movies-api/internal/core/ports"
)

// bindAndValidate decodes the JSON body into req and runs the struct
// validator. Malformed bodies become validation errors.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	return c.Validate(req)
}

// pathID parses the :id path parameter. Anything but a positive integer is
// rejected before reaching the service.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id must be a positive integer")
	}
	return id, nil
}

// queryPage reads ?page= and ?limit=. Missing values take the defaults;
// out-of-range values are clamped by the service.
func queryPage(c echo.Context) (domain.Page, error) {
	var p domain.Page
	var err error
	if raw := c.QueryParam("page"); raw != "" {
		if p.Page, err = strconv.Atoi(raw); err != nil {
			return p, domain.NewValidationError("page must be an integer")
		}
		if p.Page > domain.MaxPage {
			return p, domain.NewValidationError(fmt.Sprintf("page must be at most %d", domain.MaxPage))
		}
	}
	if raw := c.QueryParam("limit"); raw != "" {
		if p.Limit, err = strconv.Atoi(raw); err != nil {
			return p, domain.NewValidationError("limit must be an integer")
		}
	}
	return p, nil
}

func paginationOf[T any](r *ports.ListResult[T]) pagination {
	return pagination{Total: r.Total, Page: r.Page, Limit: r.Limit, TotalPages: r.TotalPages}
}
