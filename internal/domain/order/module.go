package order

import (
	catalogService "laundry_lms/internal/domain/catalog/service"
	"laundry_lms/internal/domain/order/handler"
	"laundry_lms/internal/domain/order/repository"
	"laundry_lms/internal/domain/order/service"
	userRepo "laundry_lms/internal/domain/user/repository"
	userService "laundry_lms/internal/domain/user/service"
	"laundry_lms/internal/pkg/middleware"
	"laundry_lms/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// OrderModule 订单模块
type OrderModule struct{}

func init() {
	registry.Register(&OrderModule{})
}

func (m *OrderModule) Name() string {
	return "order"
}

func (m *OrderModule) Priority() int {
	// 依赖用户模块
	return 10
}

func (m *OrderModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	oRepo := repository.NewOrderRepository(ctx.DB)

	uRepo := userRepo.NewUserRepository(ctx.DB)
	uService := userService.NewUserService(uRepo)

	catalog := catalogService.NewCachedCatalogService(catalogService.NewCatalogService(), ctx.Redis)

	oService := service.NewOrderService(oRepo, catalog, uService)
	oHandler := handler.NewOrderHandler(oService)

	// 2. 路由注册
	setupRoutes(ctx.Router, oHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.OrderHandler) {
	g := r.Group("/orders")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("", h.GetOrders)
		g.GET("/:id", h.GetOrder)
		g.POST("", h.CreateOrder)
		g.PATCH("/:id/status", h.UpdateStatus)
		g.DELETE("/:id", h.DeleteOrder)
	}
}
