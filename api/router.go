package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/talentclip/api/handler"
	"github.com/use-agent/talentclip/api/middleware"
	"github.com/use-agent/talentclip/config"
	"github.com/use-agent/talentclip/controller"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	Form:    RateLimit
//
// Health sits outside the rate limit so probes always work. Background
// work started for the router stops when ctx is done.
func NewRouter(ctx context.Context, ctl *controller.Controller, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	v1.GET("/health", handler.Health(cfg.Store.Backend, startTime))

	form := v1.Group("/form")
	form.Use(middleware.RateLimit(ctx, cfg.RateLimit))

	form.GET("", handler.GetForm(ctl))
	form.POST("/refresh", handler.RefreshForm(ctl))
	form.PUT("/fields/:field", handler.EditField(ctl))
	form.POST("/submit", handler.SubmitForm(ctl))

	return r
}
