package middlewares

import (
	"fmt"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

func createStore(rd *redis.Client, routeID string) (limiter.Store, error) {
	prefix := fmt.Sprintf("rate_limiter:%s", routeID)
	if rd == nil {
		return memorystore.NewStoreWithOptions(limiter.StoreOptions{Prefix: prefix}), nil
	}
	return redisstore.NewStoreWithOptions(rd, limiter.StoreOptions{
		Prefix:   prefix,
		MaxRetry: 3,
	})
}

// NewRateLimiter limits a route per caller. rate uses the limiter format,
// e.g. "30-M". Without redis the counters live in process memory.
func NewRateLimiter(rate, routeID string, rd *redis.Client) gin.HandlerFunc {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		log.Printf("Error parsing rate for route %s: %v\n", routeID, err)
		return func(ctx *gin.Context) {
			ctx.Next()
		}
	}
	store, err := createStore(rd, routeID)
	if err != nil {
		log.Printf("Error creating rate limiter store for route %s: %v\n", routeID, err)
		return func(ctx *gin.Context) {
			ctx.Next()
		}
	}
	return ginmiddleware.NewMiddleware(limiter.New(store, parsed), ginmiddleware.WithKeyGetter(func(ctx *gin.Context) string {
		if id := ctx.GetUint("id"); id != 0 {
			return strconv.FormatUint(uint64(id), 10)
		}
		return ctx.ClientIP()
	}))
}
