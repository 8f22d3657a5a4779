package middlewares

import (
	"errors"
	"log"
	"net/http"
	"shareit/src/config"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SharerMiddleware resolves the caller from the X-Sharer-User-Id header and
// stores it under "id".
func SharerMiddleware(ctx *gin.Context) {
	raw := ctx.GetHeader(config.SHARER_HEADER)
	if raw == "" {
		err := errors.New("missing " + config.SHARER_HEADER + " header")
		log.Printf("Check failed: %s\n", err.Error())
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		log.Printf("Check failed: invalid %s %q\n", config.SHARER_HEADER, raw)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + config.SHARER_HEADER + " header"})
		return
	}
	ctx.Set("id", uint(id))
	ctx.Next()
}
