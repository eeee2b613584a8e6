package service

import (
	"context"
	"encoding/json"
	"time"

	"laundry_lms/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// 缓存键常量
const (
	catalogCacheKey = "catalog:services"
	catalogCacheTTL = time.Minute * 30
)

// CachedCatalogService 带 Redis 缓存的服务目录
// 校验逻辑走内存，列表查询走缓存
type CachedCatalogService struct {
	inner CatalogService
	rdb   *redis.Client
}

// NewCachedCatalogService 创建带缓存的服务目录
func NewCachedCatalogService(inner CatalogService, rdb *redis.Client) CatalogService {
	return &CachedCatalogService{inner: inner, rdb: rdb}
}

func (s *CachedCatalogService) IsValidService(serviceType string) bool {
	return s.inner.IsValidService(serviceType)
}

func (s *CachedCatalogService) IsValidUnit(unit string) bool {
	return s.inner.IsValidUnit(unit)
}

// Services 列表查询，缓存失效或 Redis 不可用时回退到内存数据
func (s *CachedCatalogService) Services() []ServiceItem {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if raw, err := s.rdb.Get(ctx, catalogCacheKey).Bytes(); err == nil {
		var items []ServiceItem
		if err := json.Unmarshal(raw, &items); err == nil {
			return items
		}
	}

	items := s.inner.Services()

	if raw, err := json.Marshal(items); err == nil {
		if err := s.rdb.Set(ctx, catalogCacheKey, raw, catalogCacheTTL).Err(); err != nil {
			logger.Log.Warn("Failed to cache catalog", zap.Error(err))
		}
	}

	return items
}
