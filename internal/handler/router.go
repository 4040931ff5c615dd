package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"rental-booking/internal/domain/user"
	"rental-booking/internal/handler/api"
	reqdto "rental-booking/internal/handler/dto/request"
	"rental-booking/internal/handler/middleware"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/metrics"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type RouterParams struct {
	fx.In

	Engine          *gin.Engine
	Config          config.Config
	Logger          *middleware.Logger
	Metrics         *metrics.Metrics
	Gatherer        prometheus.Gatherer
	AuthMiddleware  *middleware.AuthMiddleware
	BookingHandler  *api.BookingHandler
	OTPHandler      *api.OTPHandler
	PaymentHandler  *api.PaymentHandler
	PropertyHandler *api.PropertyHandler
}

func NewRouter(p RouterParams) error {
	if err := reqdto.RegisterValidators(); err != nil {
		return err
	}
	setupMiddleware(p)
	setupRoutes(p)
	return nil
}

func setupMiddleware(p RouterParams) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	p.Engine.Use(middleware.CustomRecovery())
	p.Engine.Use(middleware.NewCORSMiddleware(p.Config.CORS))
	p.Engine.Use(p.Logger.LoggingMiddleware())
	p.Engine.Use(middleware.MetricsMiddleware(p.Metrics))
	p.Engine.Use(middleware.ErrorHandler())
}

func setupRoutes(p RouterParams) {
	engine := p.Engine
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		bookings := apiGroup.Group("/bookings")
		bookings.Use(p.AuthMiddleware.RequireAuth())
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: p.BookingHandler.Create},
			{Method: http.MethodGet, Path: "", Handler: p.BookingHandler.List},
			{Method: http.MethodGet, Path: "/:id", Handler: p.BookingHandler.Get},
			{Method: http.MethodPatch, Path: "/:id", Handler: p.BookingHandler.Modify},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: p.BookingHandler.Cancel},
			{Method: http.MethodPost, Path: "/:id/otp", Handler: p.OTPHandler.Generate},
			{Method: http.MethodPost, Path: "/:id/otp/resend", Handler: p.OTPHandler.Resend},
			{Method: http.MethodPost, Path: "/:id/otp/verify", Handler: p.OTPHandler.Verify},
		})

		properties := apiGroup.Group("/properties")
		properties.Use(p.AuthMiddleware.RequireAuth())
		addRoutes(properties, []route{
			{Method: http.MethodGet, Path: "/:id/quote", Handler: p.PropertyHandler.Quote},
			{Method: http.MethodGet, Path: "/:id/availability", Handler: p.PropertyHandler.Availability},
		})

		payments := apiGroup.Group("/payments")
		addRoutes(payments, []route{
			{
				Method:  http.MethodPost,
				Path:    "/:id/callback",
				Handler: p.PaymentHandler.Callback,
				Mw:      []gin.HandlerFunc{middleware.RequireWebhookSecret(p.Config.Payment.WebhookSecret)},
			},
			{
				Method:  http.MethodGet,
				Path:    "/:id",
				Handler: p.PaymentHandler.Get,
				Mw:      []gin.HandlerFunc{p.AuthMiddleware.RequireAuth()},
			},
			{
				Method:  http.MethodPost,
				Path:    "/:id/refunds",
				Handler: p.PaymentHandler.Refund,
				Mw: []gin.HandlerFunc{
					p.AuthMiddleware.RequireAuth(),
					p.AuthMiddleware.RequireRole(user.RoleAdmin),
				},
			},
		})
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
