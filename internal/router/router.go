package router

import (
	"net/http"

	"github.com/Basith5/blog-page-api/internal/handler"
	"github.com/Basith5/blog-page-api/internal/metrics"
	"github.com/Basith5/blog-page-api/internal/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options carries the optional collaborators of the router.
type Options struct {
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	MetricsPath string
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(logger), middleware.Recovery(logger))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))

		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(opts.Metrics.Handler()))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	// 探针
	r.GET("/ping", api.Ping)
	r.GET("/healthz", api.Healthz)

	// 页面 CRUD
	r.POST("/addPage", api.AddPage)
	r.GET("/readPage", api.ReadPages)
	r.GET("/readPage/:id", api.ReadPage)
	r.PUT("/updatePage/:id", api.UpdatePage)
	r.DELETE("/deletePage/:id", api.DeletePage)

	return r
}
