package http

import (
	"errors"
	"log/slog"
	"net/http"

	"vendorportal/internal/pkg/errs"
	"vendorportal/internal/pkg/result"

	"github.com/labstack/echo/v4"
)

// failureStatuses maps fault kinds to HTTP statuses, strongest first.
var failureStatuses = []struct {
	kind   errs.Kind
	status int
}{
	{errs.KindUnexpectedFailure, http.StatusInternalServerError},
	{errs.KindNotFound, http.StatusNotFound},
	{errs.KindAlreadyAwarded, http.StatusConflict},
	{errs.KindNotYourTurn, http.StatusConflict},
	{errs.KindInvalidTransition, http.StatusConflict},
	{errs.KindMalformedPayload, http.StatusBadRequest},
	{errs.KindValidation, http.StatusBadRequest},
}

func failureStatus[T any](env result.Envelope[T]) int {
	for _, f := range failureStatuses {
		if env.HasError(f.kind) {
			return f.status
		}
	}
	return http.StatusBadRequest
}

// respond writes the envelope of a handled request. Infrastructure errors go
// to the echo error handler.
func respond[T any](ctx echo.Context, okStatus int, env result.Envelope[T], err error) error {
	if err != nil {
		return err
	}
	if env.Success {
		return ctx.JSON(okStatus, env)
	}
	return ctx.JSON(failureStatus(env), env)
}

// rejected answers a request whose input could not be turned into a command.
func rejected(ctx echo.Context, err error) error {
	if !errs.IsDomain(err) {
		err = errs.NewValueIsInvalidErrorWithCause("request", err)
	}
	env := result.Fail[any](err)
	return ctx.JSON(failureStatus(env), env)
}

// errorHandler renders every error that reaches echo as a failed envelope.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var (
			status = http.StatusInternalServerError
			env    result.Envelope[any]
			he     *echo.HTTPError
		)
		switch {
		case errors.As(err, &he):
			status = he.Code
			env = result.Fail[any](httpFault(he))
		default:
			logger.ErrorContext(ctx.Request().Context(), "request failed",
				"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
			env = result.Envelope[any]{
				Message: "unexpected failure",
				Errors:  []string{string(errs.KindUnexpectedFailure) + ": unexpected failure"},
			}
		}

		if ctx.Request().Method == http.MethodHead {
			err = ctx.NoContent(status)
		} else {
			err = ctx.JSON(status, env)
		}
		if err != nil {
			logger.ErrorContext(ctx.Request().Context(), "write error response", "error", err)
		}
	}
}

func httpFault(he *echo.HTTPError) error {
	msg, ok := he.Message.(string)
	if !ok {
		msg = http.StatusText(he.Code)
	}
	if he.Code == http.StatusNotFound {
		return errs.NewObjectNotFoundError("route", msg)
	}
	return errs.NewValueIsInvalidError(msg)
}
