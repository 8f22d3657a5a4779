package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path"
	"regexp"
	"shareit/src/boot"
	"shareit/src/config"
	"shareit/src/controllers"
	"shareit/src/db"
	"shareit/src/lib"
	"shareit/src/middlewares"
	"shareit/src/store"
	"shareit/src/validation"
	"shareit/src/views"
	"syscall"
	"time"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

const (
	apiPrefix string = "/api/v1"
)

type app struct {
	store    store.Store
	redis    *redis.Client
	bookings *controllers.BookingController
	items    *controllers.ItemController
}

func newApp(s store.Store, rd *redis.Client, events lib.EventPublisher, now func() time.Time) *app {
	gate := &validation.BookingValidation{
		Bookings: s,
		Items:    s,
		Users:    s,
		Policy:   config.GetDatePolicy(),
		Now:      now,
	}
	assembler := &views.Assembler{
		Items:    s,
		Users:    s,
		History:  s,
		Comments: s,
		Now:      now,
	}
	var cache *lib.BookingCache
	if rd != nil {
		cache = lib.NewBookingCache(rd, config.GetCacheTTL())
	}
	return &app{
		store: s,
		redis: rd,
		bookings: &controllers.BookingController{
			Store:  s,
			Items:  s,
			Gate:   gate,
			Views:  assembler,
			Cache:  cache,
			Events: events,
			Now:    now,
		},
		items: &controllers.ItemController{
			Items: s,
			Gate:  gate,
			Views: assembler,
		},
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(middlewares.RequestID)
	router.Use(middlewares.SecureHeaders)
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		if config.IsMaintenanceMode() {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
	})
	return g
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookingdate", bookingDateValidatorFunc)
	}
}

func registerRoutes(g *gin.RouterGroup, a *app, createLimiter gin.HandlerFunc) {
	g.GET("/health", func(ctx *gin.Context) {
		if err := a.store.Ping(ctx.Request.Context()); err != nil {
			log.Printf("Health check failed: %s\n", err.Error())
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authorized := g.Group("")
	authorized.Use(middlewares.SharerMiddleware)
	bookingHandlers(authorized, a.bookings, createLimiter)
	itemHandlers(authorized, a.items)
}

func corsMiddleware() gin.HandlerFunc {
	if config.IsLocal() {
		return cors.Default()
	}
	appHost := os.Getenv("APP_HOST")
	cc := cors.DefaultConfig()
	cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH")
	cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "X-Sharer-User-Id", "X-Request-Id")
	cc.ExposeHeaders = append(cc.ExposeHeaders, middlewares.REQUEST_ID_HEADER)
	cc.AllowOriginFunc = func(origin string) bool {
		if appHost == "" {
			return false
		}
		match, _ := regexp.MatchString(appHost, origin)
		return match
	}
	return cors.New(cc)
}

func newRouter(a *app) *gin.Engine {
	router := setupRouter()
	router.Use(corsMiddleware())
	router = maintenanceModeMiddleware(router)

	createLimiter := middlewares.NewRateLimiter(config.GetBookingRateLimit(), "bookings_create", a.redis)
	registerRoutes(&router.RouterGroup, a, createLimiter)
	registerRoutes(apiv1Group(router), a, createLimiter)
	return router
}

func initLogger() {
	cwd, _ := os.Getwd()
	logsDir := path.Join(cwd, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		log.Printf("Could not create %s: %s\n", logsDir, err.Error())
		return
	}
	serverLogs := path.Join(logsDir, "server.log")
	apiLogs := path.Join(logsDir, "api.log")

	f, err := os.Create(apiLogs)
	if err == nil {
		gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	}
	log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	}))
}

func openStore() store.Store {
	if config.UseMemoryStore() {
		log.Println("USE_MEMORY_STORE set, records will not survive a restart")
		return store.NewMemoryStore()
	}
	return store.NewGormStore(boot.InitDb(db.GetDb()))
}

func main() {
	if config.IsLocal() {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()
	registerValidators()

	var events lib.EventPublisher
	if p := boot.InitBroker(); p != nil {
		events = p
		defer p.Close()
	}
	rd := lib.GetRedisClient()
	if rd != nil {
		defer rd.Close()
	}

	router := newRouter(newApp(openStore(), rd, events, time.Now))

	srv := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Listening on %s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %s\n", err.Error())
	}
}
