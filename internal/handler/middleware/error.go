package middleware

import (
	"log/slog"
	"net/http"

	"calendar-booking/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

// ErrorHandler writes the body for handlers that recorded an error but wrote
// nothing. The newest public error wins; private errors collapse to a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		if public := c.Errors.ByType(gin.ErrorTypePublic); len(public) > 0 {
			if resp, ok := public.Last().Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status >= http.StatusBadRequest && status < http.StatusInternalServerError {
			c.JSON(status, httperr.NewResponse(c, status, http.StatusText(status), nil))
			return
		}
		slog.Error("unhandled request error",
			"error", c.Errors.Last().Error(),
			"path", c.Request.URL.Path,
			"request_id", GetRequestID(c),
		)
		c.JSON(http.StatusInternalServerError, httperr.NewResponse(c, http.StatusInternalServerError, internalErrorMessage, nil))
	}
}

// CustomRecovery turns a panic into the standard 500 body.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("recovered from panic", "panic", rec, "path", c.Request.URL.Path, "request_id", GetRequestID(c))
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					httperr.NewResponse(c, http.StatusInternalServerError, internalErrorMessage, nil))
			}
		}()
		c.Next()
	}
}
