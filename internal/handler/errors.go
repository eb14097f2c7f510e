package handler

import (
	"errors"
	"fmt"
	"net/http"
	"storefront-api/internal/apperror"
	"storefront-api/internal/dto"
	"storefront-api/internal/logger"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorHandler renders failed requests as {"error": message} with the
// status taken from the application error kind. Unclassified errors become
// a 500 and their cause is only logged.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		logger.FromEcho(c).Error("request failed", zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, dto.ErrorResponse{Error: message})
	}
	if err != nil {
		logger.FromEcho(c).Warn("write error response", zap.Error(err))
	}
}

func classify(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message)
	}

	var ae *apperror.Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError, "internal server error"
	}

	switch ae.Kind {
	case apperror.KindNotFound:
		return http.StatusNotFound, ae.Message
	case apperror.KindInvalidArgument:
		return http.StatusBadRequest, ae.Message
	case apperror.KindConflict:
		return http.StatusConflict, ae.Message
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
	}
	return uint(id), nil
}

func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	return nil
}

func deleted(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.DeleteResponse{OK: true})
}
