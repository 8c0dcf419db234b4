package user

import (
	"context"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/dao"
	"gitee.com/taoJie_1/cellphone-agent/global"
	"gitee.com/taoJie_1/cellphone-agent/internal/mcp"
	"gitee.com/taoJie_1/cellphone-agent/internal/store"
	"gitee.com/taoJie_1/cellphone-agent/model/enum"
	"gitee.com/taoJie_1/cellphone-agent/pkg/provider"
	"github.com/sirupsen/logrus"
)

const mcpRefreshTimeout = 5 * time.Second

type ServiceGroup struct {
	ChatService  ChatService
	ToolExecutor ToolExecutor
}

// NewServiceGroup 依赖全局对象, 需在 initialize 完成后调用
func NewServiceGroup() ServiceGroup {
	tools := NewToolExecutor(
		global.Log,
		NewProviders(),
		store.NewClient(global.Log, global.Config().Store, global.RedisClient),
		global.OssService,
		global.Config().Chat,
		global.Config().Store.WebBaseUrl,
	)

	return ServiceGroup{
		ChatService:  NewChatService(global.Log, global.LlmService(), tools, global.Config().Chat),
		ToolExecutor: tools,
	}
}

// NewProviders 按配置选择数据来源, 依赖未就绪时不注入
func NewProviders() provider.Providers {
	var p provider.Providers

	switch enum.ProviderType(global.Config().Providers.Product) {
	case enum.ProviderDb:
		if dao.DB != nil {
			p.Products = NewDbProductProvider(global.Log, global.Config().Store.WebBaseUrl, global.OssService)
		} else {
			global.Log.Warn("providers.product=db, 但数据库未连接, 将直接使用商城接口")
		}
	}

	switch enum.ProviderType(global.Config().Providers.Order) {
	case enum.ProviderDb:
		if dao.DB != nil {
			p.Orders = NewDbOrderProvider(global.Log, global.Tz)
		} else {
			global.Log.Warn("providers.order=db, 但数据库未连接")
		}
	case enum.ProviderMcp:
		p.Orders = resolveMcpOrderProvider(global.Log, global.McpService, global.Config().Mcp.OrderTool)
	}
	return p
}

// resolveMcpOrderProvider 服务未提供订单工具时先刷新一次工具列表, 仍没有则不注入
func resolveMcpOrderProvider(log logrus.FieldLogger, service mcp.Service, toolName string) provider.OrderProvider {
	if service == nil {
		log.Warn("providers.order=mcp, 但MCP服务未初始化")
		return nil
	}
	if !service.HasTool(toolName) {
		ctx, cancel := context.WithTimeout(context.Background(), mcpRefreshTimeout)
		defer cancel()
		if err := service.Refresh(ctx); err != nil {
			log.Warnf("刷新MCP工具列表失败: %v", err)
		}
	}
	if !service.HasTool(toolName) {
		log.Warnf("MCP服务未提供订单工具 %s, 订单查询不可用", toolName)
		return nil
	}
	return NewMcpOrderProvider(service, toolName)
}
