package router

import (
	"time"

	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/config"
	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/handler"
	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/middleware"
	"github.com/navarromaxi/gym-manager-pro2-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← PDF engine
func New(cfg *config.Config) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Services ─────────────────────────────────────────────────────────────
	renderSvc := service.NewRenderService(cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	renderH := handler.NewRenderHandler(renderSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health())

	v1 := r.Group("/v1")
	{
		v1.POST("/facturas/pdf", renderH.GenerarPDF)
		v1.POST("/facturas/pdf/archivo", renderH.GenerarPDFArchivo)
	}

	return r
}
