package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hanjiho/tripmate/utils"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns each request an id for log correlation, honoring an
// inbound X-Request-ID header when present.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(utils.ContextRequestIDKey, id)
		ctx.Header(requestIDHeader, id)
		ctx.Next()
	}
}
