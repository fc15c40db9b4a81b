package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/workoutapi/db"
)

// apiError is the body of every error response.
type apiError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ValidationError lists the request fields that failed validation, keyed by
// JSON name, with the rule each one broke.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// storeError maps store errors onto HTTP errors. Unknown errors pass through
// and end up as a logged 500.
func storeError(err error, notFound, duplicate string) error {
	var refErr *db.ReferenceError
	switch {
	case errors.As(err, &refErr):
		return echo.NewHTTPError(http.StatusBadRequest, refErr.Error())
	case errors.Is(err, db.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, notFound)
	case errors.Is(err, db.ErrDuplicate):
		// Conflicts answer 303, as the service always has.
		return echo.NewHTTPError(http.StatusSeeOther, duplicate)
	}
	return err
}

// HTTPErrorHandler renders errors as {"detail": ...} and logs server failures.
func HTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		body := apiError{Detail: "internal server error"}

		var verr *ValidationError
		var he *echo.HTTPError
		switch {
		case errors.As(err, &verr):
			code = http.StatusUnprocessableEntity
			body = apiError{Detail: "validation error", Fields: verr.Fields}
		case errors.As(err, &he):
			code = he.Code
			body.Detail = fmt.Sprint(he.Message)
			if code >= http.StatusInternalServerError && he.Internal != nil {
				err = he.Internal
			}
		}

		if code >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			logger.Warn("write error response", zap.Error(err))
		}
	}
}
