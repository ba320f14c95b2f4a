package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func ddlMessage(c echo.Context, code int, format string, args ...any) error {
	return c.JSON(code, map[string]string{"message": fmt.Sprintf(format, args...)})
}

func columnSizeParam(c echo.Context) (int, error) {
	raw := c.QueryParam("column_size")
	if raw == "" {
		return 50, nil
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "column_size must be a positive integer")
	}
	return size, nil
}

// AddColumn appends a column to a table. column_type defaults to VARCHAR,
// column_size to 50.
func (h *Handler) AddColumn(c echo.Context) error {
	table := c.QueryParam("table_name")
	column := c.QueryParam("column_name")
	colType := c.QueryParam("column_type")
	if colType == "" {
		colType = "VARCHAR"
	}
	size, err := columnSizeParam(c)
	if err != nil {
		return err
	}

	if err := h.store.AddColumn(c.Request().Context(), table, column, colType, size); err != nil {
		return httpError(err)
	}
	return ddlMessage(c, http.StatusCreated, "Column %s added to table %s", column, table)
}

func (h *Handler) RemoveColumn(c echo.Context) error {
	table := c.QueryParam("table_name")
	column := c.QueryParam("column_name")

	if err := h.store.RemoveColumn(c.Request().Context(), table, column); err != nil {
		return httpError(err)
	}
	return ddlMessage(c, http.StatusAccepted, "Column %s removed from table %s", column, table)
}

func (h *Handler) RenameColumn(c echo.Context) error {
	table := c.QueryParam("table_name")
	oldName := c.QueryParam("old_column_name")
	newName := c.QueryParam("new_column_name")

	if err := h.store.RenameColumn(c.Request().Context(), table, oldName, newName); err != nil {
		return httpError(err)
	}
	return ddlMessage(c, http.StatusAccepted, "Column %s renamed to %s in table %s", oldName, newName, table)
}

func (h *Handler) ChangeColumnType(c echo.Context) error {
	table := c.QueryParam("table_name")
	column := c.QueryParam("column_name")
	colType := c.QueryParam("column_type")

	if err := h.store.ChangeColumnType(c.Request().Context(), table, column, colType); err != nil {
		return httpError(err)
	}
	return ddlMessage(c, http.StatusAccepted, "Column %s in table %s changed to %s", column, table, colType)
}

// CreateTable builds a table from a column-name to column-type map carried in
// the body.
func (h *Handler) CreateTable(c echo.Context) error {
	table := c.QueryParam("table_name")

	var columns map[string]string
	if err := c.Bind(&columns); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.store.CreateTable(c.Request().Context(), table, columns); err != nil {
		return httpError(err)
	}
	return ddlMessage(c, http.StatusCreated, "Table %s created", table)
}

func (h *Handler) DropTable(c echo.Context) error {
	table := c.QueryParam("table_name")

	if err := h.store.DropTable(c.Request().Context(), table); err != nil {
		return httpError(err)
	}
	return ddlMessage(c, http.StatusAccepted, "Table %s dropped", table)
}

func (h *Handler) TruncateTable(c echo.Context) error {
	table := c.QueryParam("table_name")

	if err := h.store.TruncateTable(c.Request().Context(), table); err != nil {
		return httpError(err)
	}
	return ddlMessage(c, http.StatusAccepted, "Table %s truncated", table)
}
