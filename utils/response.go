package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	serviceerrors "github.com/hanjiho/tripmate/services/errors"
)

// JSONResponse defines the uniform structure for API responses.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success returns a standard success response.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, 200, 0, "success", data)
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, code int, message string) {
	Respond(ctx, status, code, message, nil)
}

// ServiceError maps a service-layer error onto the HTTP surface: not-found
// conditions become 404, invariant and state conflicts 409, authorization
// failures 403, bad input 400, everything else 500.
func ServiceError(ctx *gin.Context, err error) {
	code := serviceerrors.Code(err)
	var se *serviceerrors.ServiceError
	message := "internal server error"
	if e, ok := err.(*serviceerrors.ServiceError); ok {
		se = e
		message = se.Message
	}

	status := http.StatusInternalServerError
	switch code {
	case serviceerrors.ErrMemberNotFound,
		serviceerrors.ErrFeedNotFound,
		serviceerrors.ErrRecruitmentNotFound,
		serviceerrors.ErrFollowNotFound:
		status = http.StatusNotFound
	case serviceerrors.ErrSelfFollow,
		serviceerrors.ErrDuplicateFollow,
		serviceerrors.ErrDuplicateEmail,
		serviceerrors.ErrDuplicateNickname,
		serviceerrors.ErrRecruitmentExpired:
		status = http.StatusConflict
	case serviceerrors.ErrWriterMismatch:
		status = http.StatusForbidden
	case serviceerrors.ErrInvalidInput:
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		Sugar.Errorf("service failure: %v", err)
	}
	Error(ctx, status, int(code), message)
}
