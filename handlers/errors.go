package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// errorEnvelope is the stable wire shape for every failure response.
type errorEnvelope struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
	Path   string `json:"path"`
}

func errorName(code int) string {
	switch code {
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusInternalServerError:
		return "internal_server_error"
	default:
		return "unexpected_error"
	}
}

// ErrorHandler is the single translation point from errors to the JSON
// envelope. Uncaught errors become a generic 500; no stack traces reach the
// client.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	detail := "Unexpected server error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		detail = fmt.Sprint(he.Message)
	}

	if code >= http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err), zap.String("path", c.Request().URL.Path))
	}

	env := errorEnvelope{
		Error:  errorName(code),
		Detail: detail,
		Path:   c.Request().URL.Path,
	}
	if jsonErr := c.JSON(code, env); jsonErr != nil {
		zap.L().Error("write error response", zap.Error(jsonErr))
	}
}
