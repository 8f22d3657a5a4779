package middlewares

import (
	"errors"
	"log"
	"net/http"
	"shareit/src/types"

	"github.com/gin-gonic/gin"
)

const unexpectedErrorMessage = "Unexpected error occurred"

func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrValidation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// AbortWithError writes the error body for err. Unexpected errors are logged
// and replaced by a generic message.
func AbortWithError(ctx *gin.Context, err error) {
	status := ErrorStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("[%s] %s %s failed: %s\n", ctx.GetString("request_id"), ctx.Request.Method, ctx.Request.URL.Path, err.Error())
		ctx.AbortWithStatusJSON(status, gin.H{"error": unexpectedErrorMessage})
		return
	}
	ctx.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// AbortWithBindError reports malformed input as a validation failure.
func AbortWithBindError(ctx *gin.Context, err error) {
	log.Printf("[%s] Bad request: %s\n", ctx.GetString("request_id"), err.Error())
	ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
