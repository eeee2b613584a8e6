package catalog

import (
	"laundry_lms/internal/domain/catalog/service"
	"laundry_lms/internal/pkg/registry"
	"laundry_lms/pkg/response"

	"github.com/gin-gonic/gin"
)

// CatalogModule 服务目录模块
type CatalogModule struct{}

func init() {
	registry.Register(&CatalogModule{})
}

func (m *CatalogModule) Name() string {
	return "catalog"
}

func (m *CatalogModule) Priority() int {
	return 5
}

func (m *CatalogModule) Init(ctx *registry.ModuleContext) error {
	svc := service.NewCachedCatalogService(service.NewCatalogService(), ctx.Redis)

	ctx.Router.GET("/catalog/services", func(c *gin.Context) {
		response.Success(c, svc.Services())
	})

	return nil
}
