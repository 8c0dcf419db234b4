package db

type Products struct {
	BaseField
	Sku             string  `db:"sku" json:"sku" info:"SKU"`
	Name            string  `db:"name" json:"name" info:"商品名"`
	Brand           string  `db:"brand" json:"brand" info:"品牌"`
	Slug            string  `db:"slug" json:"slug" info:"详情页路径"`
	Image           string  `db:"image" json:"image" info:"主图(URL或OSS对象键)"`
	Price           int64   `db:"price" json:"price" info:"基础价"`
	OriginalPrice   int64   `db:"original_price" json:"original_price" info:"原价"`
	DiscountPercent float64 `db:"discount_percent" json:"discount_percent" info:"折扣百分比"`
	RamGb           int64   `db:"ram_gb" json:"ram_gb" info:"内存GB"`
	StorageGb       int64   `db:"storage_gb" json:"storage_gb" info:"存储GB"`
	Variants        string  `db:"variants" json:"variants" info:"规格JSON数组"`
}

func (Products) TableName() string {
	return `products`
}
