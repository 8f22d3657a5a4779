package main

import (
	"net/http"
	"shareit/src/config"
	"shareit/src/controllers"
	"shareit/src/middlewares"
	"shareit/src/types"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// parseBookingDate accepts config.TIME_PARSE_FORMAT in local time or RFC3339.
func parseBookingDate(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(config.TIME_PARSE_FORMAT, value, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

var bookingDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := parseBookingDate(date)
	return err == nil
}

func pageDefaults(from, size *int) (*int, *int) {
	if from == nil {
		f := types.DEFAULT_PAGE_FROM
		from = &f
	}
	if size == nil {
		s := types.DEFAULT_PAGE_SIZE
		size = &s
	}
	return from, size
}

func bookingHandlers(g *gin.RouterGroup, bookings *controllers.BookingController, createLimiter gin.HandlerFunc) *gin.RouterGroup {
	g.
		POST("/bookings", createLimiter, func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				middlewares.AbortWithBindError(ctx, err)
				return
			}
			start, _ := parseBookingDate(body.Start)
			end, _ := parseBookingDate(body.End)
			booking, err := bookings.Create(ctx.Request.Context(), types.BookingDraft{
				Start:  start,
				End:    end,
				ItemID: body.ItemID,
			}, ctx.GetUint("id"))
			if err != nil {
				middlewares.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, booking)
		}).
		PATCH("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				middlewares.AbortWithBindError(ctx, err)
				return
			}
			var query types.ApproveBookingQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				middlewares.AbortWithBindError(ctx, err)
				return
			}
			booking, err := bookings.Approve(ctx.Request.Context(), params.ID, *query.Approved, ctx.GetUint("id"))
			if err != nil {
				middlewares.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, booking)
		}).
		GET("/bookings/owner", func(ctx *gin.Context) {
			var query types.BookingListQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				middlewares.AbortWithBindError(ctx, err)
				return
			}
			from, size := pageDefaults(query.From, query.Size)
			list, err := bookings.FindAllByOwner(ctx.Request.Context(), ctx.GetUint("id"), query.State, from, size)
			if err != nil {
				middlewares.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, list)
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				middlewares.AbortWithBindError(ctx, err)
				return
			}
			booking, err := bookings.FindByID(ctx.Request.Context(), params.ID, ctx.GetUint("id"))
			if err != nil {
				middlewares.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, booking)
		}).
		GET("/bookings", func(ctx *gin.Context) {
			var query types.BookingListQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				middlewares.AbortWithBindError(ctx, err)
				return
			}
			from, size := pageDefaults(query.From, query.Size)
			list, err := bookings.FindAllByBooker(ctx.Request.Context(), ctx.GetUint("id"), query.State, from, size)
			if err != nil {
				middlewares.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, list)
		})
	return g
}
