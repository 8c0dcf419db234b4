package initialize

import (
	"context"
	"reflect"
	"strings"

	"gitee.com/taoJie_1/cellphone-agent/global"
	"gitee.com/taoJie_1/cellphone-agent/model/config"
	"gitee.com/taoJie_1/cellphone-agent/service"
	"gitee.com/taoJie_1/cellphone-agent/service/user"
	"golang.org/x/sync/errgroup"
)

// restartKeys 返回只有重启才能生效的配置变更
func restartKeys(oldConfig, newConfig *config.Config) []string {
	var keys []string
	if !reflect.DeepEqual(oldConfig.Database, newConfig.Database) {
		keys = append(keys, "database")
	}
	if oldConfig.GinAddr != newConfig.GinAddr {
		keys = append(keys, "gin_addr")
	}
	if oldConfig.GinLogPath != newConfig.GinLogPath || oldConfig.RunLogPath != newConfig.RunLogPath {
		keys = append(keys, "log_path")
	}
	if !reflect.DeepEqual(oldConfig.Cors, newConfig.Cors) {
		keys = append(keys, "cors")
	}
	return keys
}

// needRebuildServices 工具与对话服务持有这些配置的副本, 变化后需要重建
func needRebuildServices(oldConfig, newConfig *config.Config) bool {
	return !reflect.DeepEqual(oldConfig.Ollama, newConfig.Ollama) ||
		!reflect.DeepEqual(oldConfig.Redis, newConfig.Redis) ||
		!reflect.DeepEqual(oldConfig.Mcp, newConfig.Mcp) ||
		!reflect.DeepEqual(oldConfig.Oss, newConfig.Oss) ||
		!reflect.DeepEqual(oldConfig.Store, newConfig.Store) ||
		!reflect.DeepEqual(oldConfig.Chat, newConfig.Chat) ||
		!reflect.DeepEqual(oldConfig.Providers, newConfig.Providers) ||
		oldConfig.Tz != newConfig.Tz
}

// HandleConfigChange 检测配置变化并并发地重载相关服务
func (i *Initializer) HandleConfigChange(oldConfig, newConfig *config.Config) {
	i.reloadLock.Lock()
	defer i.reloadLock.Unlock()

	eg, _ := errgroup.WithContext(context.Background())

	if oldConfig.Tz != newConfig.Tz {
		eg.Go(func() error {
			if err := i.InitTz(); err != nil {
				global.Log.Errorf("热重载时区失败: %v", err)
				return err
			}
			return nil
		})
	}

	if !reflect.DeepEqual(oldConfig.Redis, newConfig.Redis) {
		eg.Go(func() error {
			if err := i.redisClose(); err != nil {
				global.Log.Warnf("关闭旧Redis客户端失败: %v", err)
			}
			if err := i.initRedis(); err != nil {
				global.RedisClient = nil
				global.Log.Errorf("热重载Redis客户端失败: %v", err)
			}
			return nil
		})
	}

	if !reflect.DeepEqual(oldConfig.Ollama, newConfig.Ollama) {
		eg.Go(func() error {
			// 不可达也保留新客户端, 由探测任务继续观察
			_ = i.initLlm()
			return nil
		})
	}

	if !reflect.DeepEqual(oldConfig.Mcp, newConfig.Mcp) {
		eg.Go(func() error {
			if err := i.mcpClose(); err != nil {
				global.Log.Warnf("关闭旧MCP客户端失败: %v", err)
			}
			return i.initMcp()
		})
	}

	if !reflect.DeepEqual(oldConfig.Oss, newConfig.Oss) {
		eg.Go(func() error {
			if err := i.ossClose(); err != nil {
				global.Log.Warnf("关闭旧OSS客户端失败: %v", err)
			}
			if err := i.initOss(); err != nil {
				global.OssService = nil
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		global.Log.Errorf("并发热重载过程中发生错误: %v", err)
	}

	if needRebuildServices(oldConfig, newConfig) {
		service.Service.SetUserServiceGroup(user.NewServiceGroup())
		global.Log.Info("对话服务已按新配置重建")
	}

	if keys := restartKeys(oldConfig, newConfig); len(keys) > 0 {
		global.Log.Warnf("检测到存在需要 重启服务 才能生效的配置变更: [%s]。", strings.Join(keys, ", "))
	}

	global.Log.Info("配置变更处理完成")
}
