package handler

import (
	"github.com/coursekart/settlement/internal/config"
	"github.com/coursekart/settlement/internal/domain"
	"github.com/coursekart/settlement/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the HTTP surface. Route layout mirrors the marketplace
// client's expectations.
func NewRouter(h *Handler, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recover(),
		middleware.Logging(),
		middleware.CallerIdentity(),
	)
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-User-Id", "X-User-Role"},
		AllowCredentials: true,
	}))

	student := r.Group("/student/order")
	student.POST("/create", h.CreateOrder)
	student.POST("/capture", h.CaptureOrder)
	student.GET("/invoice/:orderId", middleware.RequireAuth(), h.GetInvoice)

	admin := r.Group("/admin", middleware.RequireAuth(), middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/orders", h.ListOrders)

	return r
}
