package initialize

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/global"
	"gitee.com/taoJie_1/cellphone-agent/internal/llm"
	"gitee.com/taoJie_1/cellphone-agent/internal/mcp"
	"gitee.com/taoJie_1/cellphone-agent/internal/metrics"
	"gitee.com/taoJie_1/cellphone-agent/internal/ollama"
	"gitee.com/taoJie_1/cellphone-agent/internal/oss"
	"gitee.com/taoJie_1/cellphone-agent/internal/redis"
	"gitee.com/taoJie_1/cellphone-agent/model/config"
	"gitee.com/taoJie_1/cellphone-agent/model/enum"
	pkgllm "gitee.com/taoJie_1/cellphone-agent/pkg/llm"
)

func (i *Initializer) InitTz() error {
	Location, err := time.LoadLocation(global.Config().Tz)
	if err != nil {
		return fmt.Errorf("时区配置失败[siortuj]: %w", err)
	}
	global.Tz = Location
	return nil
}

// initRedis 初始化Redis客户端, 未配置地址时不启用缓存
func (i *Initializer) initRedis() error {
	if global.Config().Redis.Addr == "" {
		global.RedisClient = nil
		global.Log.Info("未配置Redis, 商城接口缓存已关闭")
		return nil
	}
	client, err := redis.NewClient(
		global.Config().Redis.Addr,
		global.Config().Redis.Password,
		int(global.Config().Redis.DB),
	)
	if err != nil {
		return fmt.Errorf("初始化Redis客户端失败: %w", err)
	}
	global.RedisClient = client
	global.Log.Info("初始化Redis服务成功")
	return nil
}

// redisClose 关闭Redis客户端连接
func (i *Initializer) redisClose() error {
	if global.RedisClient != nil {
		return global.RedisClient.Close()
	}
	return nil
}

// newLlmService 按 backend 选择模型客户端
func newLlmService(cfg config.Ollama) pkgllm.Service {
	if enum.LlmBackend(cfg.Backend) == enum.BackendOpenAI {
		return llm.NewClient(global.Log, cfg)
	}
	return ollama.NewClient(global.Log, cfg)
}

// initLlm 模型服务不可达时只记录警告, 请求时再返回连接错误
func (i *Initializer) initLlm() error {
	client := newLlmService(global.Config().Ollama)
	global.SetLlmService(client)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		metrics.SetModelUp(false)
		global.Log.Warnf("无法连接到模型服务 (backend: %s, url: %s): %v", client.Backend(), client.BaseURL(), err)
		return err
	}
	metrics.SetModelUp(true)
	global.Log.Infof("初始化模型服务成功 (backend: %s, model: %s)", client.Backend(), client.Model())
	return nil
}

func (i *Initializer) initMcp() error {
	if global.Config().Mcp.Url == "" {
		global.McpService = nil
		return nil
	}
	client := mcp.NewClient(global.Log, global.Config().Mcp, global.Version, global.Config().ProjectName)
	global.McpService = client

	names := make([]string, 0)
	for _, tool := range client.Tools() {
		names = append(names, tool.Name)
	}
	global.Log.Infof("初始化MCP服务结束, 可用工具: [%s]", strings.Join(names, ", "))
	return nil
}

func (i *Initializer) mcpClose() error {
	if global.McpService != nil {
		return global.McpService.Close()
	}
	return nil
}

func (i *Initializer) initOss() error {
	cfg := global.Config().Oss
	if cfg.Endpoint == "" || cfg.Bucket == "" || cfg.AccessKeyId == "" || cfg.AccessKeySecret == "" {
		global.OssService = nil
		global.Log.Info("OSS配置不完整，跳过初始化")
		return nil
	}

	client, err := oss.NewClient(cfg)
	if err != nil {
		global.Log.Warnf("初始化OSS服务失败: %v", err)
		return err
	}
	global.OssService = client
	global.Log.Info("初始化OSS服务成功")
	return nil
}

func (i *Initializer) ossClose() error {
	if global.OssService != nil {
		return global.OssService.Close()
	}
	return nil
}
