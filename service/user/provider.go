package user

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/dao"
	"gitee.com/taoJie_1/cellphone-agent/internal/mcp"
	"gitee.com/taoJie_1/cellphone-agent/internal/oss"
	"gitee.com/taoJie_1/cellphone-agent/model/db"
	"gitee.com/taoJie_1/cellphone-agent/model/dto"
	"gitee.com/taoJie_1/cellphone-agent/utils"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// dbProductProvider 从本地商品表查询
type dbProductProvider struct {
	normalizer *productNormalizer
}

func NewDbProductProvider(log logrus.FieldLogger, webBaseURL string, ossService oss.Service) *dbProductProvider {
	return &dbProductProvider{normalizer: newProductNormalizer(log, webBaseURL, ossService)}
}

func (p *dbProductProvider) Search(ctx context.Context, args dto.SearchProductsArgs, limit int) ([]dto.ProductSuggestion, error) {
	var list []db.Products
	err := dao.App.ProductDb.Search(&list, dao.ProductFilter{
		Keyword:   args.Keyword,
		Brand:     args.Brand,
		PriceMin:  args.PriceMin,
		PriceMax:  args.PriceMax,
		RamGb:     args.RamGb,
		StorageGb: args.StorageGb,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("查询商品失败[s5pe0v]: %w", err)
	}

	out := make([]dto.ProductSuggestion, 0, len(list))
	for _, row := range list {
		record, err := productRecord(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p.normalizer.normalize(record, args.Color, args.Capacity).ProductSuggestion)
	}
	return out, nil
}

// productRecord 转为与商城接口一致的记录结构
func productRecord(row db.Products) (gjson.Result, error) {
	record := map[string]any{
		"sku":             row.Sku,
		"name":            row.Name,
		"brand":           row.Brand,
		"slug":            row.Slug,
		"image":           row.Image,
		"price":           row.Price,
		"originalPrice":   row.OriginalPrice,
		"discountPercent": row.DiscountPercent,
	}
	if row.RamGb > 0 {
		record["ram"] = fmt.Sprintf("%dGB", row.RamGb)
	}
	if row.StorageGb > 0 {
		record["storage"] = fmt.Sprintf("%dGB", row.StorageGb)
	}
	if v := strings.TrimSpace(row.Variants); v != "" && json.Valid([]byte(v)) {
		record["variants"] = json.RawMessage(v)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("序列化商品失败[p0ue3r]: %w", err)
	}
	return gjson.ParseBytes(data), nil
}

// dbOrderProvider 从本地订单表查询
type dbOrderProvider struct {
	log logrus.FieldLogger
	tz  *time.Location
}

func NewDbOrderProvider(log logrus.FieldLogger, tz *time.Location) *dbOrderProvider {
	return &dbOrderProvider{log: log, tz: tz}
}

func (p *dbOrderProvider) Lookup(ctx context.Context, args dto.CheckOrderArgs) (*dto.OrderStatus, error) {
	order, err := dao.App.OrderDb.GetByCode(args.OrderID, args.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}

	status := &dto.OrderStatus{
		OrderID:       order.OrderCode,
		Status:        order.Status,
		Total:         order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		CreatedAt:     order.CreatedAtFormat(p.tz),
	}
	if items := strings.TrimSpace(order.Items); items != "" && items != "[]" {
		if err := json.Unmarshal([]byte(items), &status.Items); err != nil {
			p.log.Warnf("订单 %s 的商品明细解析失败: %v", order.OrderCode, err)
		}
	}
	return status, nil
}

// mcpOrderProvider 通过订单系统的MCP工具查询
type mcpOrderProvider struct {
	service  mcp.Service
	toolName string
}

func NewMcpOrderProvider(service mcp.Service, toolName string) *mcpOrderProvider {
	return &mcpOrderProvider{service: service, toolName: toolName}
}

func (p *mcpOrderProvider) Lookup(ctx context.Context, args dto.CheckOrderArgs) (*dto.OrderStatus, error) {
	payload, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	text, err := p.service.ExecuteTool(ctx, p.toolName, payload)
	if err != nil {
		return nil, err
	}
	return parseOrderText(text, args.OrderID), nil
}

// parseOrderText 兼容订单系统返回的几种结构; 空结果或 found=false 视为未找到
func parseOrderText(text, orderID string) *dto.OrderStatus {
	text = strings.TrimSpace(text)
	if text == "" || text == "null" || text == "{}" {
		return nil
	}
	if !gjson.Valid(text) {
		return &dto.OrderStatus{OrderID: orderID, Status: utils.TruncateRunes(text, 500)}
	}

	root := gjson.Parse(text)
	if o := root.Get("order"); o.IsObject() {
		root = o
	} else if o := root.Get("data"); o.IsObject() {
		root = o
	}
	if f := root.Get("found"); f.Exists() && !f.Bool() {
		return nil
	}

	status := &dto.OrderStatus{
		OrderID:       firstString(root.Get("order_id"), root.Get("orderId"), root.Get("code"), root.Get("id")),
		Status:        firstString(root.Get("status"), root.Get("state")),
		Message:       firstString(root.Get("message")),
		Total:         int64(firstPositive(root.Get("total"), root.Get("totalAmount"), root.Get("total_amount"))),
		PaymentMethod: firstString(root.Get("payment_method"), root.Get("paymentMethod")),
		CreatedAt:     firstString(root.Get("created_at"), root.Get("createdAt")),
	}
	if status.OrderID == "" {
		status.OrderID = orderID
	}
	for _, item := range root.Get("items").Array() {
		status.Items = append(status.Items, dto.OrderItem{
			Name:     firstString(item.Get("name"), item.Get("productName")),
			Quantity: int64(firstPositive(item.Get("quantity"), item.Get("qty"))),
			Price:    int64(firstPositive(item.Get("price"))),
		})
	}
	if status.Status == "" && status.Message == "" {
		return nil
	}
	return status
}
