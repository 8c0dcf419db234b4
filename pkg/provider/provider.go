package provider

import (
	"context"

	"gitee.com/taoJie_1/cellphone-agent/model/dto"
)

// ProductProvider 商品数据来源. 返回空列表时由调用方回退到商城接口
type ProductProvider interface {
	Search(ctx context.Context, args dto.SearchProductsArgs, limit int) ([]dto.ProductSuggestion, error)
}

// OrderProvider 订单数据来源. 未找到时返回 (nil, nil)
type OrderProvider interface {
	Lookup(ctx context.Context, args dto.CheckOrderArgs) (*dto.OrderStatus, error)
}

// Providers nil 字段表示未配置
type Providers struct {
	Products ProductProvider
	Orders   OrderProvider
}
