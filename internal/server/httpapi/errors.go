package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/labstack/echo/v4"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var errForbidden = errors.New("forbidden")

func statusOf(err error) (int, ErrorBody) {
	var ve *common.ValidationError
	var he *echo.HTTPError

	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ErrorBody{Code: "validation_error", Message: ve.Error()}
	case errors.Is(err, common.ErrAlreadyExists):
		return http.StatusConflict, ErrorBody{Code: "conflict", Message: "email already registered"}
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, ErrorBody{Code: "unauthorized", Message: "invalid or missing credentials"}
	case errors.Is(err, errForbidden):
		return http.StatusForbidden, ErrorBody{Code: "forbidden", Message: "access denied"}
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, ErrorBody{Code: "not_found", Message: "resource not found"}
	case errors.As(err, &he):
		return he.Code, ErrorBody{Code: codeFor(he.Code), Message: fmt.Sprint(he.Message)}
	default:
		return http.StatusInternalServerError, ErrorBody{Code: "internal_error", Message: "internal error"}
	}
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "error"
	}
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request().Context(), "request failed", "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		s.logger.Error(c.Request().Context(), "error response failed", "error", err)
	}
}
