package api

import (
	"log"
	stdhttp "net/http"

	intconfig "marketplace/internal/config"
	"marketplace/internal/domain"
	h "marketplace/internal/http/handlers"
	"marketplace/internal/http/middleware"
	"marketplace/internal/notify"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.JWTSecret = []byte(env.JWTSecret)
	if env.NotifyURL != "" {
		h.Notifier = notify.NewWebhookNotifier(env.NotifyURL)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	authed := middleware.Auth(h.JWTSecret)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Public catalog
		plans := api.Group("/plans")
		plans.GET("", h.ListActivePlans)
		plans.GET("/:id", h.GetPlan)

		// Payment gateway callback
		api.POST("/payments/webhook", h.PaymentWebhook)

		// Bookings (any authenticated user; ownership enforced per handler)
		bookings := api.Group("/bookings", authed)
		bookings.POST("", h.CreateBooking)
		bookings.GET("/my", h.ListMyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.GET("/:id/refund-quote", h.QuoteRefund)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.GET("/:id/invoice", h.BookingInvoice)

		// Host applications
		api.POST("/host-applications", authed, h.ApplyHost)

		// Host surface
		host := api.Group("/host", authed, middleware.RequireRole(domain.RoleHost, domain.RoleAdmin))
		host.GET("/plans", h.ListMyPlans)
		host.POST("/plans", h.CreatePlan)
		host.PUT("/plans/:id", h.UpdatePlan)
		host.POST("/plans/:id/toggle", h.TogglePlan)
		host.GET("/bookings", h.ListHostBookings)
		host.GET("/reports/summary", h.HostSummary)

		// Admin surface; SUPPORT shares the read-only routes
		admin := api.Group("/admin", authed)
		{
			read := admin.Group("", middleware.RequireRole(domain.RoleAdmin, domain.RoleSupport))
			read.GET("/bookings", h.ListAllBookings)
			read.GET("/plans", h.ListAllPlans)
			read.GET("/payouts", h.ListPayouts)
			read.GET("/payouts/needing", h.BookingsNeedingPayout)
			read.GET("/payouts/:id", h.GetPayout)
			read.GET("/payouts/:id/statement", h.PayoutStatement)
			read.GET("/host-applications", h.PendingHostApplications)
			read.GET("/reports/summary", h.AdminSummary)

			write := admin.Group("", middleware.RequireRole(domain.RoleAdmin))
			write.POST("/plans/:id/approve", h.ApprovePlan)
			write.POST("/bookings/:id/mark-refunded", h.MarkRefunded)
			write.POST("/payouts", h.CreatePayout)
			write.POST("/payouts/:id/mark-paid", h.MarkInstallmentPaid)
			write.POST("/host-applications/:id/approve", h.ApproveHostApplication)
			write.POST("/host-applications/:id/reject", h.RejectHostApplication)
			write.POST("/payments/sweep-overdue", h.SweepOverdue)
		}
	}

	return r
}
