// Package httperr shapes public error bodies. The wrapped error stays on the
// gin context for logging and never reaches the client.
package httperr

import (
	"calendar-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key the request logger stores its id under.
const RequestIDKey = "request_id"

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message   string `json:"message"`
		RequestID string `json:"requestId,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func NewResponse(c *gin.Context, status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	resp.Error.RequestID = c.GetString(RequestIDKey)
	return resp
}

// AbortWithError answers with msg and records err for the error handler.
// A nil err is replaced by msg itself.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errs.New(msg)
	}
	resp := NewResponse(c, status, msg, detail)
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
