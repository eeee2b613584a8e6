package service

// ServiceItem 洗衣服务项目
type ServiceItem struct {
	Code      string  `json:"code"`
	Label     string  `json:"label"`
	Unit      string  `json:"unit"`
	BasePrice float64 `json:"basePrice"`
}

// CatalogService 服务目录：下单时校验服务类型和计量单位
type CatalogService interface {
	IsValidService(serviceType string) bool
	IsValidUnit(unit string) bool
	Services() []ServiceItem
}

type catalogService struct {
	items []ServiceItem
	units map[string]struct{}
}

// NewCatalogService 创建服务目录
func NewCatalogService() CatalogService {
	items := []ServiceItem{
		{Code: "WASH", Label: "Wash", Unit: "KG", BasePrice: 250},
		{Code: "IRON", Label: "Iron", Unit: "PIECE", BasePrice: 100},
		{Code: "DRY_CLEAN", Label: "Dry Clean", Unit: "PIECE", BasePrice: 600},
		{Code: "WASH_AND_IRON", Label: "Wash & Iron", Unit: "KG", BasePrice: 350},
	}
	return &catalogService{
		items: items,
		units: map[string]struct{}{"KG": {}, "PIECE": {}},
	}
}

func (s *catalogService) IsValidService(serviceType string) bool {
	for _, item := range s.items {
		if item.Code == serviceType {
			return true
		}
	}
	return false
}

func (s *catalogService) IsValidUnit(unit string) bool {
	_, ok := s.units[unit]
	return ok
}

func (s *catalogService) Services() []ServiceItem {
	out := make([]ServiceItem, len(s.items))
	copy(out, s.items)
	return out
}
