package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openfightdb/fighterapi/store"
)

// SearchFighters matches fighters against the filter carried in the query
// string. All filter fields are optional; an empty filter returns everything.
func (h *Handler) SearchFighters(p store.Projection) echo.HandlerFunc {
	return func(c echo.Context) error {
		var filter store.FighterFilter
		if err := c.Bind(&filter); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		fighters, err := h.store.Search(c.Request().Context(), p, &filter)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, fighters)
	}
}

// TopFighters ranks fighters by the path field, capped at the limit query
// param, descending unless order=asc.
func (h *Handler) TopFighters(p store.Projection) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit, err := strconv.Atoi(c.QueryParam("limit"))
		if err != nil || limit < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		asc := strings.EqualFold(c.QueryParam("order"), "asc")

		fighters, err := h.store.TopByField(c.Request().Context(), p, c.Param("field"), limit, asc)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, fighters)
	}
}
