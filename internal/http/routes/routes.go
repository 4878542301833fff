package routes

import (
	"net/http"
	"strings"

	"github.com/albertogalvisvml/labelpdfapp/internal/http/handlers"
	"github.com/albertogalvisvml/labelpdfapp/internal/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Options struct {
	CORSOrigins    []string
	PublicPrefix   string
	PublicDir      string
	TrustedProxies []string
}

type Router struct {
	labelHandler *handlers.LabelHandler
	opts         Options
	logger       *zap.Logger
}

func NewRouter(
	labelHandler *handlers.LabelHandler,
	opts Options,
	logger *zap.Logger,
) *Router {
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.PublicPrefix == "" {
		opts.PublicPrefix = "/public"
	}
	opts.PublicPrefix = "/" + strings.Trim(opts.PublicPrefix, "/")

	return &Router{
		labelHandler: labelHandler,
		opts:         opts,
		logger:       logger,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(r.opts.TrustedProxies); err != nil {
		r.logger.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.CORS(r.opts.CORSOrigins))
	router.Use(middleware.SecurityHeaders())

	router.POST("/generate-pdf", r.labelHandler.GenerateLabels)
	router.POST("/generate-pdf/async", r.labelHandler.GenerateLabelsAsync)
	router.GET("/jobs/:id", r.labelHandler.GetJob)
	router.GET("/health", r.labelHandler.HealthCheck)
	router.GET("/variants", r.labelHandler.ListVariants)

	if r.opts.PublicDir != "" {
		router.Static(r.opts.PublicPrefix, r.opts.PublicDir)
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Label PDF service is running",
		})
	})

	return router
}
