package dto

import "encoding/json"

// ToolCall 解析后的工具调用, ID 一定非空
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// SearchProductsArgs searchProducts 工具参数, 数值字段为空表示未提供
type SearchProductsArgs struct {
	Keyword   string   `json:"keyword"`
	Brand     string   `json:"brand"`
	PriceMin  *float64 `json:"price_min"`
	PriceMax  *float64 `json:"price_max"`
	RamGb     *float64 `json:"ram_gb"`
	StorageGb *float64 `json:"storage_gb"`
	Color     string   `json:"color"`
	Capacity  string   `json:"capacity"`
	Limit     *float64 `json:"limit"`
}

// CheckOrderArgs checkOrder 工具参数
type CheckOrderArgs struct {
	OrderID     string `json:"order_id"`
	PhoneNumber string `json:"phone_number"`
}

// ProductSuggestion 提供给模型的商品投影
type ProductSuggestion struct {
	Sku             string `json:"sku"`
	Name            string `json:"name"`
	Brand           string `json:"brand"`
	FinalPrice      int64  `json:"final_price"`
	OriginalPrice   int64  `json:"original_price"`
	BasePrice       int64  `json:"base_price"`
	DiscountPercent int64  `json:"discount_percent"`
	Ram             string `json:"ram,omitempty"`
	Storage         string `json:"storage,omitempty"`
	Color           string `json:"color,omitempty"`
	Capacity        string `json:"capacity,omitempty"`
	Url             string `json:"url"`
	Image           string `json:"image,omitempty"`
}

type SearchProductsResult struct {
	Success  bool                `json:"success"`
	Count    int                 `json:"count"`
	Products []ProductSuggestion `json:"products"`
}

type OrderItem struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	Price    int64  `json:"price"`
}

// OrderStatus checkOrder 的结果, 未找到时只有 status 与 message
type OrderStatus struct {
	OrderID       string      `json:"order_id,omitempty"`
	Status        string      `json:"status"`
	Message       string      `json:"message,omitempty"`
	Total         int64       `json:"total,omitempty"`
	PaymentMethod string      `json:"payment_method,omitempty"`
	CreatedAt     string      `json:"created_at,omitempty"`
	Items         []OrderItem `json:"items,omitempty"`
}

type ToolError struct {
	Error string `json:"error"`
}
