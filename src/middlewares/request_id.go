package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const REQUEST_ID_HEADER = "X-Request-Id"

// RequestID keeps an incoming X-Request-Id or generates one.
func RequestID(ctx *gin.Context) {
	id := ctx.GetHeader(REQUEST_ID_HEADER)
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	ctx.Set("request_id", id)
	ctx.Header(REQUEST_ID_HEADER, id)
	ctx.Next()
}
