package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/openfightdb/fighterapi/store"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db       *bun.DB
	store    *store.Store
	jwtKey   []byte
	tokenTTL time.Duration
}

// New creates a Handler with the given database connection, JWT signing key
// and access-token lifetime.
func New(db *bun.DB, jwtKey []byte, tokenTTL time.Duration) *Handler {
	return &Handler{
		db:       db,
		store:    store.New(db),
		jwtKey:   jwtKey,
		tokenTTL: tokenTTL,
	}
}

// httpError translates store errors into transport errors: empty results are
// 404, bad filter columns and identifiers are the client's fault, anything
// else is a 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Fighter/Fighters not found")
	case errors.Is(err, store.ErrUnknownColumn), errors.Is(err, store.ErrBadIdentifier):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
