package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"qr-coupon-server/internal/handler/api"
	"qr-coupon-server/internal/handler/middleware"
	"qr-coupon-server/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	fx.In

	Redemption *api.RedemptionHandler
	OTP        *api.OTPHandler
	Campaign   *api.CampaignHandler
	Analytics  *api.AnalyticsHandler
	QRBatch    *api.QRBatchHandler
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	h Handlers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware, rateLimiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodPost, Path: "/redeem", Handler: h.Redemption.Redeem},
			{Method: http.MethodPost, Path: "/bottles/check", Handler: h.Redemption.CheckBottle},
			{Method: http.MethodPost, Path: "/coupons/mark-redeemed", Handler: h.Redemption.MarkRedeemed},
			{Method: http.MethodPost, Path: "/otp/send", Handler: h.OTP.Send, Mw: []gin.HandlerFunc{rateLimiter.LimitOTPSend()}},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole())
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/campaigns", Handler: h.Campaign.List},
				{Method: http.MethodPost, Path: "/campaigns", Handler: h.Campaign.Create},
				{Method: http.MethodGet, Path: "/campaigns/:id", Handler: h.Campaign.Get},
				{Method: http.MethodPut, Path: "/campaigns/:id", Handler: h.Campaign.Update},
				{Method: http.MethodDelete, Path: "/campaigns/:id", Handler: h.Campaign.Delete},
				{Method: http.MethodPost, Path: "/campaigns/:id/status", Handler: h.Campaign.ChangeStatus},
				{Method: http.MethodGet, Path: "/campaigns/:id/coupons", Handler: h.Campaign.ListCoupons},
				{Method: http.MethodGet, Path: "/campaigns/:id/stats", Handler: h.Analytics.CampaignStats},
				{Method: http.MethodGet, Path: "/campaigns/:id/daily", Handler: h.Analytics.DailyClaims},
				{Method: http.MethodPost, Path: "/campaigns/:id/qr-batches", Handler: h.QRBatch.Enqueue},
				{Method: http.MethodGet, Path: "/qr-batches/:jobId", Handler: h.QRBatch.Status},
				{Method: http.MethodGet, Path: "/overview", Handler: h.Analytics.Overview},
			})
		}

		client := apiGroup.Group("/client")
		client.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRole())
		{
			addRoutes(client, []route{
				{Method: http.MethodGet, Path: "/campaigns", Handler: h.Campaign.List},
				{Method: http.MethodGet, Path: "/campaigns/:id/stats", Handler: h.Analytics.CampaignStats},
				{Method: http.MethodGet, Path: "/campaigns/:id/daily", Handler: h.Analytics.DailyClaims},
				{Method: http.MethodGet, Path: "/overview", Handler: h.Analytics.Overview},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
