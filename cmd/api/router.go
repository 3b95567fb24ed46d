package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-api/internal/shared/middleware"
	"library-api/internal/shared/response"
	"library-api/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		c.Metrics.Middleware(),
	)

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Not found")
	})

	router.GET("/health", healthCheckHandler(c))
	router.GET("/metrics", gin.WrapH(c.Metrics.Handler()))
	router.POST("/login", c.AuthHandler.Login)

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		protected.GET("/protected", c.AuthHandler.Protected)
		setupBookRoutes(protected, c)
		setupMemberRoutes(protected, c)
	}

	return router
}

func setupBookRoutes(rg *gin.RouterGroup, c *container.Container) {
	books := rg.Group("/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.POST("", c.BookHandler.CreateBook)
		books.GET("/export", c.BookHandler.ExportBooks)
		books.GET("/:id", c.BookHandler.GetBook)
		books.PUT("/:id", c.BookHandler.UpdateBook)
		books.DELETE("/:id", c.BookHandler.DeleteBook)
	}
}

func setupMemberRoutes(rg *gin.RouterGroup, c *container.Container) {
	members := rg.Group("/members")
	{
		members.GET("", c.MemberHandler.ListMembers)
		members.POST("", c.MemberHandler.CreateMember)
		members.GET("/export", c.MemberHandler.ExportMembers)
		members.GET("/:id", c.MemberHandler.GetMember)
		members.PUT("/:id", c.MemberHandler.UpdateMember)
		members.DELETE("/:id", c.MemberHandler.DeleteMember)
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := appCtx.Health(ctx); err != nil {
			log.Warn().Err(err).Msg("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unavailable",
				"timestamp": time.Now().Format(time.RFC3339),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		})
	}
}
