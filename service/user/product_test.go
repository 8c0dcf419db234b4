package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func normalizeJSON(n *productNormalizer, record, color, capacity string) normalized {
	return n.normalize(gjson.Parse(record), color, capacity)
}

func TestNormalize_VariantSelection(t *testing.T) {
	n := &productNormalizer{webBaseURL: "http://localhost:5173"}
	record := `{
		"_id":"65f0","slug":"galaxy-s24","name":"Samsung Galaxy S24","brand":{"name":"Samsung"},
		"variants":[
			{"sku":"S24-BLK-256","color":"Đen","capacity":"256GB","price":22990000},
			{"sku":"S24-VIO-512","color":"Tím","capacity":"512 GB","price":26990000,"discountPercent":10}
		]
	}`

	p := normalizeJSON(n, record, "tím", "512gb")
	assert.Equal(t, "S24-VIO-512", p.Sku)
	assert.Equal(t, "Samsung", p.Brand)
	assert.Equal(t, int64(26990000), p.BasePrice)
	assert.Equal(t, int64(24291000), p.FinalPrice)
	assert.Equal(t, int64(26990000), p.OriginalPrice)
	assert.Equal(t, int64(10), p.DiscountPercent)
	assert.Equal(t, "http://localhost:5173/product/galaxy-s24?color=T%C3%ADm&capacity=512+GB", p.Url)
	assert.Equal(t, float64(512), p.storageGb)

	// 没有匹配的变体时取第一个
	p = normalizeJSON(n, record, "Vàng", "")
	assert.Equal(t, "S24-BLK-256", p.Sku)
	assert.Equal(t, "Đen", p.Color)
	assert.Equal(t, int64(22990000), p.FinalPrice)
	assert.Equal(t, int64(0), p.DiscountPercent)
}

func TestNormalize_PriceChain(t *testing.T) {
	n := &productNormalizer{webBaseURL: "http://shop"}

	// 显式售价与原价, 推导折扣
	p := normalizeJSON(n, `{"id":1,"name":"A","price":"20000000","originalPrice":25000000,"salePrice":20000000}`, "", "")
	assert.Equal(t, int64(20000000), p.FinalPrice)
	assert.Equal(t, int64(25000000), p.OriginalPrice)
	assert.Equal(t, int64(20), p.DiscountPercent)
	assert.Equal(t, "http://shop/product/1", p.Url)

	// 原价低于售价时提升到售价
	p = normalizeJSON(n, `{"sku":"X","name":"B","originalPrice":100,"finalPrice":150}`, "", "")
	assert.Equal(t, int64(150), p.FinalPrice)
	assert.Equal(t, int64(150), p.OriginalPrice)
	assert.Equal(t, int64(0), p.DiscountPercent)

	// 折扣超过100按100处理
	p = normalizeJSON(n, `{"sku":"Y","name":"C","basePrice":1000,"discount":150}`, "", "")
	assert.Equal(t, int64(0), p.FinalPrice)
	assert.Equal(t, int64(1000), p.OriginalPrice)
	assert.Equal(t, int64(100), p.DiscountPercent)

	// 无价格
	p = normalizeJSON(n, `{"name":"D"}`, "", "")
	assert.Equal(t, int64(0), p.FinalPrice)
	assert.Equal(t, "http://shop", p.Url)
}

func TestNormalize_Image(t *testing.T) {
	n := &productNormalizer{
		webBaseURL:   "http://shop",
		resolveImage: func(key string) string { return "https://cdn/" + key },
	}

	p := normalizeJSON(n, `{"name":"A","images":[{"url":"a.png"}]}`, "", "")
	assert.Equal(t, "https://cdn/a.png", p.Image)

	p = normalizeJSON(n, `{"name":"A","images":["b.png"],"variants":[{"image":"v.png"}]}`, "", "")
	assert.Equal(t, "https://cdn/v.png", p.Image)

	p = normalizeJSON(n, `{"name":"A"}`, "", "")
	assert.Empty(t, p.Image)
}

func TestParseGb(t *testing.T) {
	assert.Equal(t, float64(8), parseGb("8GB"))
	assert.Equal(t, float64(1024), parseGb("1 TB"))
	assert.Equal(t, float64(256), parseGb("256"))
	assert.Equal(t, 1.5, parseGb("1,5 gb"))
	assert.Equal(t, float64(0), parseGb("n/a"))
}

func TestFirstPositive(t *testing.T) {
	r := gjson.Parse(`{"a":0,"b":"-5","c":"1,200","d":7}`)
	assert.Equal(t, float64(1200), firstPositive(r.Get("a"), r.Get("b"), r.Get("c"), r.Get("d")))
	assert.Equal(t, float64(7), firstPositive(r.Get("missing"), r.Get("d")))
	assert.Equal(t, float64(0), firstPositive())
}
