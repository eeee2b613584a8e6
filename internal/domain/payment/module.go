package payment

import (
	"laundry_lms/internal/domain/payment/events"
	"laundry_lms/internal/domain/payment/handler"
	"laundry_lms/internal/domain/payment/observer"
	"laundry_lms/internal/domain/payment/repository"
	"laundry_lms/internal/domain/payment/service"
	"laundry_lms/internal/domain/payment/strategy"
	"laundry_lms/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// PaymentModule 支付模块
type PaymentModule struct{}

func init() {
	registry.Register(&PaymentModule{})
}

func (m *PaymentModule) Name() string {
	return "payment"
}

func (m *PaymentModule) Priority() int {
	// 依赖订单模块
	return 20
}

func (m *PaymentModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	txManager := repository.NewTxManager(ctx.DB)
	pService := service.NewPaymentService(txManager, ctx.Bus)

	// 2. 注册支付策略（本地模拟，没有真实网关）
	pService.RegisterStrategy(strategy.NewCODStrategy())
	pService.RegisterStrategy(strategy.NewDemoCardStrategy())

	// 3. 注册事件观察者
	// 邮件回执走异步通道，面板和财务同步处理；各观察者互相隔离
	dashboard := observer.NewDashboardObserver(ctx.Redis)
	ctx.Bus.Subscribe(events.PaymentCompletedName, "dashboard", dashboard.OnPaymentCompleted)
	ctx.Bus.Subscribe(events.PaymentFailedName, "dashboard", dashboard.OnPaymentFailed)

	email := observer.NewEmailReceiptObserver()
	ctx.Bus.SubscribeAsync(events.PaymentCompletedName, "email-receipt", email.OnPaymentCompleted)

	finance := observer.NewFinanceObserver()
	ctx.Bus.Subscribe(events.PaymentCompletedName, "finance", finance.OnPaymentCompleted)

	pHandler := handler.NewPaymentHandler(pService)

	// 4. 路由注册
	setupRoutes(ctx.Router, pHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PaymentHandler) {
	g := r.Group("/payments")

	// webhook 来自演示收银台页面，无需鉴权
	g.POST("/demo/webhook", h.DemoWebhook)

	g.POST("/cod/confirm", h.ConfirmCOD)
	g.POST("/checkout", h.Checkout)
}
