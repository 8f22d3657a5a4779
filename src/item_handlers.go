package main

import (
	"net/http"
	"shareit/src/controllers"
	"shareit/src/middlewares"
	"shareit/src/types"

	"github.com/gin-gonic/gin"
)

func itemHandlers(g *gin.RouterGroup, items *controllers.ItemController) *gin.RouterGroup {
	g.
		GET("/items/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				middlewares.AbortWithBindError(ctx, err)
				return
			}
			item, err := items.FindByID(ctx.Request.Context(), params.ID, ctx.GetUint("id"))
			if err != nil {
				middlewares.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, item)
		}).
		GET("/items", func(ctx *gin.Context) {
			var query types.PageQuery
			if err := ctx.ShouldBindQuery(&query); err != nil {
				middlewares.AbortWithBindError(ctx, err)
				return
			}
			from, size := pageDefaults(query.From, query.Size)
			list, err := items.FindAllByOwner(ctx.Request.Context(), ctx.GetUint("id"), from, size)
			if err != nil {
				middlewares.AbortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, list)
		})
	return g
}
