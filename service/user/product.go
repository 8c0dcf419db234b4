package user

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"gitee.com/taoJie_1/cellphone-agent/internal/oss"
	"gitee.com/taoJie_1/cellphone-agent/model/dto"
	"gitee.com/taoJie_1/cellphone-agent/utils"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

var gbPattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(tb|gb)?`)

// productNormalizer 将商城的商品记录投影为 ProductSuggestion
type productNormalizer struct {
	webBaseURL   string
	resolveImage func(string) string
}

// normalized 附带用于本地过滤的规格数值, 未知为0
type normalized struct {
	dto.ProductSuggestion
	ramGb     float64
	storageGb float64
}

// newProductNormalizer ossService 为 nil 时图片地址原样返回
func newProductNormalizer(log logrus.FieldLogger, webBaseURL string, ossService oss.Service) *productNormalizer {
	n := &productNormalizer{webBaseURL: webBaseURL}
	if ossService != nil {
		n.resolveImage = func(key string) string {
			u, err := ossService.ResolveURL(key)
			if err != nil {
				log.Warnf("解析商品图片地址失败 %s: %v", key, err)
				return key
			}
			return u
		}
	}
	return n
}

func (n *productNormalizer) normalize(product gjson.Result, color, capacity string) normalized {
	variant := selectVariant(product.Get("variants"), color, capacity)

	var out normalized
	out.Name = firstString(product.Get("name"), product.Get("title"))
	out.Brand = firstString(product.Get("brand.name"), product.Get("brand"))
	out.Sku = firstString(variant.Get("sku"), product.Get("sku"), product.Get("_id"), product.Get("id"))
	out.Color = firstString(variant.Get("color"), variant.Get("colorName"))
	out.Capacity = firstString(variant.Get("capacity"), variant.Get("storage"), variant.Get("version"))
	out.Ram = firstString(variant.Get("ram"), product.Get("ram"), product.Get("specs.ram"), product.Get("ram_gb"))
	out.Storage = firstString(variant.Get("storage"), variant.Get("capacity"), product.Get("storage"), product.Get("specs.storage"), product.Get("storage_gb"))
	out.ramGb = parseGb(out.Ram)
	out.storageGb = parseGb(out.Storage)

	n.applyPrices(&out.ProductSuggestion, product, variant)
	out.Url = n.productURL(product, out.Color, out.Capacity)

	image := firstString(variant.Get("image"), product.Get("image"), product.Get("images.0.url"), product.Get("images.0"), product.Get("thumbnail"))
	if image != "" && n.resolveImage != nil {
		image = n.resolveImage(image)
	}
	out.Image = image
	return out
}

// applyPrices 价格链: 变体优先, 其次商品, 全部取整并不小于0
func (n *productNormalizer) applyPrices(s *dto.ProductSuggestion, product, variant gjson.Result) {
	base := firstPositive(variant.Get("price"), variant.Get("basePrice"), variant.Get("base_price"),
		product.Get("basePrice"), product.Get("base_price"), product.Get("price"))
	original := firstPositive(variant.Get("originalPrice"), variant.Get("original_price"),
		product.Get("originalPrice"), product.Get("original_price"))
	if original == 0 {
		original = base
	}

	discount := utils.Clamp(firstPositive(variant.Get("discountPercent"), variant.Get("discount_percent"), variant.Get("discount"),
		product.Get("discountPercent"), product.Get("discount_percent"), product.Get("discount")), 0, 100)

	final := firstPositive(variant.Get("finalPrice"), variant.Get("final_price"), variant.Get("salePrice"), variant.Get("sale_price"),
		product.Get("finalPrice"), product.Get("final_price"), product.Get("salePrice"), product.Get("sale_price"))
	if final == 0 {
		if discount > 0 {
			final = base * (100 - discount) / 100
		} else {
			final = base
		}
	}

	final = math.Max(0, math.Round(final))
	original = math.Max(math.Max(0, math.Round(original)), final)

	if discount == 0 && original > 0 {
		discount = math.Round((original - final) / original * 100)
	}

	s.BasePrice = int64(math.Max(0, math.Round(base)))
	s.FinalPrice = int64(final)
	s.OriginalPrice = int64(original)
	s.DiscountPercent = int64(math.Round(discount))
}

func (n *productNormalizer) productURL(product gjson.Result, color, capacity string) string {
	id := firstString(product.Get("slug"), product.Get("_id"), product.Get("id"), product.Get("sku"))
	if id == "" {
		return n.webBaseURL
	}
	u := n.webBaseURL + "/product/" + url.PathEscape(id)

	var params []string
	if color != "" {
		params = append(params, "color="+url.QueryEscape(color))
	}
	if capacity != "" {
		params = append(params, "capacity="+url.QueryEscape(capacity))
	}
	if len(params) > 0 {
		u += "?" + strings.Join(params, "&")
	}
	return u
}

// selectVariant 选择同时匹配颜色与容量的变体, 否则取第一个
func selectVariant(variants gjson.Result, color, capacity string) gjson.Result {
	if !variants.IsArray() {
		return gjson.Result{}
	}
	list := variants.Array()
	if len(list) == 0 {
		return gjson.Result{}
	}

	color = normalizeOption(color)
	capacity = normalizeOption(capacity)
	if color != "" || capacity != "" {
		for _, v := range list {
			if color != "" && !strings.Contains(normalizeOption(firstString(v.Get("color"), v.Get("colorName"))), color) {
				continue
			}
			if capacity != "" && normalizeOption(firstString(v.Get("capacity"), v.Get("storage"), v.Get("version"))) != capacity {
				continue
			}
			return v
		}
	}
	return list[0]
}

func normalizeOption(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

func firstString(results ...gjson.Result) string {
	for _, r := range results {
		if !r.Exists() || r.IsObject() || r.IsArray() {
			continue
		}
		if s := strings.TrimSpace(r.String()); s != "" {
			return s
		}
	}
	return ""
}

// firstPositive 数字或数字字符串中第一个大于0的值
func firstPositive(results ...gjson.Result) float64 {
	for _, r := range results {
		var v float64
		switch r.Type {
		case gjson.Number:
			v = r.Float()
		case gjson.String:
			f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(r.Str), ",", ""), 64)
			if err != nil {
				continue
			}
			v = f
		default:
			continue
		}
		if v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) {
			return v
		}
	}
	return 0
}

// parseGb 从 "8GB" "1 TB" "256" 这类文本中解析GB数
func parseGb(s string) float64 {
	m := gbPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return 0
	}
	if strings.EqualFold(m[2], "tb") {
		v *= 1024
	}
	return v
}
