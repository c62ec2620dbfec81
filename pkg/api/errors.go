package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/openswoop/cgpa/pkg/session"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var errInvalidID = echo.NewHTTPError(http.StatusBadRequest, "invalid id")

// newHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
func newHTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = "failed on the '" + vErr.Tag() + "' rule"
			}
			code = http.StatusBadRequest
			message = fldErrs
		default:
			switch origErr {
			case session.ErrSemesterNotFound, session.ErrSubjectNotFound:
				code = http.StatusNotFound
				message = err.Error()
			case session.ErrInvalidFile:
				code = http.StatusBadRequest
				message = session.ErrInvalidFile.Error()
			case session.ErrUnknownField, session.ErrInvalidValue:
				code = http.StatusBadRequest
				message = err.Error()
			default: // any other error is a server error
				code = http.StatusInternalServerError
				message = http.StatusText(code)
				log.Error("Request failed", zap.String("uri", ctx.Request().RequestURI), zap.Error(err))
			}
		}

		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				log.Error("Unable to send error response", zap.Error(err))
			}
		}
	}
}
