package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/relgate/relgate/internal/entity"
)

// Every endpoint answers with the same envelope: ok plus either a result or
// a reason-coded error.
type envelope struct {
	OK     bool       `json:"ok"`
	Result any        `json:"result,omitempty"`
	Error  *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

func respondOK(c echo.Context, result any) error {
	return c.JSON(http.StatusOK, &envelope{OK: true, Result: result})
}

// respondErr maps the entity taxonomy onto HTTP statuses. Anything outside
// the taxonomy collapses to internal_server_error so implementation detail
// never leaks to callers.
func respondErr(c echo.Context, err error) error {
	var appErr *entity.Error
	if !errors.As(err, &appErr) {
		zerolog.Ctx(c.Request().Context()).Error().Err(err).Msg("unexpected error")
		appErr = entity.ErrInternal
	}
	return c.JSON(statusFor(appErr.Reason), &envelope{
		OK:    false,
		Error: &errorBody{Reason: appErr.Reason, Detail: appErr.Detail},
	})
}

func statusFor(reason string) int {
	switch reason {
	case entity.ReasonUnauthorized:
		return http.StatusForbidden
	case entity.ReasonNotFound:
		return http.StatusNotFound
	case entity.ReasonBranchNotFound, entity.ReasonValidationFailed:
		return http.StatusBadRequest
	case entity.ReasonReleaseApproved, entity.ReasonReleaseNotApproved, entity.ReasonDeploymentAlreadyStarted:
		return http.StatusConflict
	case entity.ReasonExternalUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
