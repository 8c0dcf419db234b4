package user

import (
	"context"
	"fmt"
	"math"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/internal/metrics"
	"gitee.com/taoJie_1/cellphone-agent/internal/oss"
	"gitee.com/taoJie_1/cellphone-agent/internal/store"
	"gitee.com/taoJie_1/cellphone-agent/model/config"
	"gitee.com/taoJie_1/cellphone-agent/model/dto"
	"gitee.com/taoJie_1/cellphone-agent/model/enum"
	"gitee.com/taoJie_1/cellphone-agent/pkg/provider"
	"gitee.com/taoJie_1/cellphone-agent/utils"
	"github.com/sirupsen/logrus"
)

const (
	defaultSearchLimit = 3
	maxSearchLimit     = 10
)

type ToolExecutor interface {
	// Execute 执行一次工具调用, 返回可JSON序列化的结果; 任何失败都以 dto.ToolError 返回
	Execute(ctx context.Context, call dto.ToolCall) any
}

type toolExecutor struct {
	log          logrus.FieldLogger
	providers    provider.Providers
	store        store.Service
	normalizer   *productNormalizer
	defaultLimit int
	maxLimit     int
}

// NewToolExecutor ossService 为 nil 时图片地址原样返回
func NewToolExecutor(log logrus.FieldLogger, providers provider.Providers, storeService store.Service, ossService oss.Service, chat config.Chat, webBaseURL string) *toolExecutor {
	e := &toolExecutor{
		log:          log,
		providers:    providers,
		store:        storeService,
		defaultLimit: chat.DefaultSearchLimit,
		maxLimit:     chat.MaxSearchLimit,
		normalizer:   newProductNormalizer(log, webBaseURL, ossService),
	}
	if e.maxLimit <= 0 {
		e.maxLimit = maxSearchLimit
	}
	if e.defaultLimit <= 0 {
		e.defaultLimit = defaultSearchLimit
	}
	e.defaultLimit = utils.Clamp(e.defaultLimit, 1, e.maxLimit)
	return e
}

func (e *toolExecutor) Execute(ctx context.Context, call dto.ToolCall) (result any) {
	start := time.Now()
	entry := e.log.WithFields(logrus.Fields{
		"request_id": utils.RequestID(ctx),
		"tool":       call.Name,
		"call_id":    call.ID,
	})

	defer func() {
		if p := recover(); p != nil {
			entry.Errorf("工具执行panic: %v", p)
			result = dto.ToolError{Error: fmt.Sprint(p)}
		}
		_, failed := result.(dto.ToolError)
		metrics.ObserveTool(call.Name, !failed)
		if failed {
			entry.WithField("cost", time.Since(start).String()).Warnf("工具执行失败: %s", result.(dto.ToolError).Error)
			return
		}
		entry.WithField("cost", time.Since(start).String()).Info("工具执行完成")
	}()

	switch enum.ToolName(call.Name) {
	case enum.ToolSearchProducts:
		args, err := decodeArguments[dto.SearchProductsArgs](enum.ToolSearchProducts, call.Arguments)
		if err != nil {
			return dto.ToolError{Error: err.Error()}
		}
		return e.searchProducts(ctx, args)
	case enum.ToolCheckOrder:
		args, err := decodeArguments[dto.CheckOrderArgs](enum.ToolCheckOrder, call.Arguments)
		if err != nil {
			return dto.ToolError{Error: err.Error()}
		}
		return e.checkOrder(ctx, args)
	default:
		return dto.ToolError{Error: string(enum.MsgToolUnsupported)}
	}
}

// limit 缺省或非数值时取默认值, 否则截断到 [1, maxLimit]
func (e *toolExecutor) limit(v *float64) int {
	if v == nil || math.IsNaN(*v) {
		return e.defaultLimit
	}
	f := utils.Clamp(math.Trunc(*v), 1, float64(e.maxLimit))
	return int(f)
}

func (e *toolExecutor) searchProducts(ctx context.Context, args dto.SearchProductsArgs) any {
	limit := e.limit(args.Limit)

	var products []dto.ProductSuggestion
	if e.providers.Products != nil {
		found, err := e.providers.Products.Search(ctx, args, limit)
		if err != nil {
			e.log.Warnf("商品数据源查询失败, 回退到商城接口: %v", err)
		} else {
			products = found
		}
	}

	if len(products) == 0 {
		if e.store == nil {
			return dto.ToolError{Error: "商城接口未配置"}
		}
		records, err := e.store.ListProducts(ctx, store.Query{
			Search: args.Keyword,
			Brand:  args.Brand,
			Min:    args.PriceMin,
			Max:    args.PriceMax,
			Limit:  limit,
		})
		if err != nil {
			return dto.ToolError{Error: err.Error()}
		}

		products = make([]dto.ProductSuggestion, 0, len(records))
		for _, record := range records {
			if len(products) >= limit {
				break
			}
			p := e.normalizer.normalize(record, args.Color, args.Capacity)
			// 规格未知的商品保留
			if args.RamGb != nil && p.ramGb > 0 && p.ramGb < *args.RamGb {
				continue
			}
			if args.StorageGb != nil && p.storageGb > 0 && p.storageGb < *args.StorageGb {
				continue
			}
			products = append(products, p.ProductSuggestion)
		}
	}

	if len(products) > limit {
		products = products[:limit]
	}
	return dto.SearchProductsResult{
		Success:  true,
		Count:    len(products),
		Products: products,
	}
}

func (e *toolExecutor) checkOrder(ctx context.Context, args dto.CheckOrderArgs) any {
	notFound := dto.OrderStatus{
		Status:  string(enum.OrderStatusNotFound),
		Message: string(enum.MsgOrderNotFound),
	}
	if e.providers.Orders == nil {
		return notFound
	}

	status, err := e.providers.Orders.Lookup(ctx, args)
	if err != nil {
		return dto.ToolError{Error: err.Error()}
	}
	if status == nil {
		return notFound
	}
	return *status
}
