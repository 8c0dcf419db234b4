package global

import (
	"sync/atomic"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/internal/mcp"
	"gitee.com/taoJie_1/cellphone-agent/internal/oss"
	"gitee.com/taoJie_1/cellphone-agent/internal/redis"
	"gitee.com/taoJie_1/cellphone-agent/model/config"
	"gitee.com/taoJie_1/cellphone-agent/pkg/llm"
	"github.com/sirupsen/logrus"
)

const Version = "1.0.0"

// 全局变量
// 业务逻辑禁止修改
var (
	Log         *logrus.Logger
	Tz          *time.Location = time.Local
	RedisClient redis.Service
	OssService  oss.Service
	McpService  mcp.Service
)

// 热更新时整体替换, 读取方拿到的是不可变快照
var (
	currentConfig atomic.Pointer[config.Config]
	llmService    atomic.Pointer[llm.Service]
)

func init() {
	currentConfig.Store(new(config.Config))
}

// Config 当前配置, 调用方不得修改返回值
func Config() *config.Config {
	return currentConfig.Load()
}

func SetConfig(c *config.Config) {
	currentConfig.Store(c)
}

// LlmService 当前模型客户端, 未初始化时为 nil
func LlmService() llm.Service {
	if s := llmService.Load(); s != nil {
		return *s
	}
	return nil
}

func SetLlmService(s llm.Service) {
	llmService.Store(&s)
}
