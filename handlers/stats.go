package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GroupedStat serves one grouped-aggregate route: the aggregate of the value
// field per distinct key field, labelled for the response. Groups with one
// member are suppressed by the store.
func (h *Handler) GroupedStat(keyField, valueField, agg, label string) echo.HandlerFunc {
	return func(c echo.Context) error {
		rows, err := h.store.GroupedStat(c.Request().Context(), keyField, valueField, agg)
		if err != nil {
			return httpError(err)
		}

		out := make([]map[string]any, len(rows))
		for i, row := range rows {
			out[i] = map[string]any{
				keyField: row.Group,
				label:    row.Stat,
				"count":  row.Count,
			}
		}
		return c.JSON(http.StatusOK, out)
	}
}
