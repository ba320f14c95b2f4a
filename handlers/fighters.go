package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/openfightdb/fighterapi/models"
	"github.com/openfightdb/fighterapi/store"
)

// oneOrMany unwraps single-row results so a unique lookup returns an object
// while a multi-row one returns an array.
func oneOrMany(fighters []models.Fighter) any {
	if len(fighters) == 1 {
		return fighters[0]
	}
	return fighters
}

func fighterIDParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("fighter_id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "fighter_id must be an integer")
	}
	return id, nil
}

// ListFighters returns every fighter in the given projection.
func (h *Handler) ListFighters(p store.Projection) echo.HandlerFunc {
	return func(c echo.Context) error {
		fighters, err := h.store.List(c.Request().Context(), p)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, fighters)
	}
}

// GetFighterByID fetches one fighter by primary key.
func (h *Handler) GetFighterByID(p store.Projection) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := fighterIDParam(c)
		if err != nil {
			return err
		}
		fighter, err := h.store.ByID(c.Request().Context(), p, id)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, fighter)
	}
}

// GetFightersByCountry fetches one or many fighters by country.
func (h *Handler) GetFightersByCountry(p store.Projection) echo.HandlerFunc {
	return func(c echo.Context) error {
		fighters, err := h.store.ByCountry(c.Request().Context(), p, c.Param("country"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, oneOrMany(fighters))
	}
}

// GetFighterByDetails fetches one fighter by the (name, nickname, surname)
// natural key.
func (h *Handler) GetFighterByDetails(p store.Projection) echo.HandlerFunc {
	return func(c echo.Context) error {
		fighter, err := h.store.ByNames(c.Request().Context(), p,
			c.Param("name"), c.Param("nickname"), c.Param("surname"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, fighter)
	}
}

// CreateFighter inserts a new fighter, with nested stats payloads in the
// extended tree.
func (h *Handler) CreateFighter(p store.Projection) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in store.ExtendedFighterFilter
		if err := c.Bind(&in); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		fighter, err := h.store.Create(c.Request().Context(), p, &in)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusCreated, fighter)
	}
}

// CreateFighters inserts a batch of fighters, returning one success flag per
// input. A failure anywhere aborts the whole batch.
func (h *Handler) CreateFighters(p store.Projection) echo.HandlerFunc {
	return func(c echo.Context) error {
		var ins []store.ExtendedFighterFilter
		if err := c.Bind(&ins); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		flags, err := h.store.CreateMany(c.Request().Context(), p, ins)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusCreated, flags)
	}
}

// UpdateFighterByID patches only the fields present in the payload.
func (h *Handler) UpdateFighterByID(p store.Projection) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := fighterIDParam(c)
		if err != nil {
			return err
		}
		var patch store.ExtendedFighterFilter
		if err := c.Bind(&patch); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if err := h.store.UpdateByID(c.Request().Context(), p, id, &patch); err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusAccepted, true)
	}
}

// UpdateFighterByDetails patches a fighter addressed by the natural key.
func (h *Handler) UpdateFighterByDetails(p store.Projection) echo.HandlerFunc {
	return func(c echo.Context) error {
		var patch store.ExtendedFighterFilter
		if err := c.Bind(&patch); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		err := h.store.UpdateByNames(c.Request().Context(), p,
			c.Param("name"), c.Param("nickname"), c.Param("surname"), &patch)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusAccepted, true)
	}
}

// DeleteFighter removes a fighter; the cascade removes its stats rows.
func (h *Handler) DeleteFighter() echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := fighterIDParam(c)
		if err != nil {
			return err
		}
		if err := h.store.DeleteByID(c.Request().Context(), id); err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, true)
	}
}

// DeleteFighters bulk-deletes by id list. An empty list returns an empty
// result without touching the database.
func (h *Handler) DeleteFighters() echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.QueryParams()["list_of_ids"]
		ids := make([]int, 0, len(raw))
		for _, s := range raw {
			id, err := strconv.Atoi(s)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "list_of_ids must be integers")
			}
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			return c.JSON(http.StatusOK, []any{})
		}
		n, err := h.store.DeleteByIDs(c.Request().Context(), ids)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, map[string]int64{"rows_affected": n})
	}
}
