package initialize

import (
	"context"
	"io"
	"sync"

	"gitee.com/taoJie_1/cellphone-agent/global"
	"gitee.com/taoJie_1/cellphone-agent/task"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// Initializer 统一管理项目的所有初始化工作
type Initializer struct {
	cron           *cron.Cron
	logFileClosers []io.Closer
	reloadLock     sync.Mutex
}

// Run 并发执行所有核心服务的初始化
func (i *Initializer) Run() error {
	eg, _ := errgroup.WithContext(context.Background())

	// 关键任务，失败会终止程序
	eg.Go(i.dbStart)

	// 非关键任务，失败只打印日志，不影响启动
	eg.Go(func() error {
		if err := i.initRedis(); err != nil {
			global.Log.Warnf("Redis不可用, 商城接口缓存已关闭: %v", err)
		}
		return nil
	})
	eg.Go(func() error {
		_ = i.initLlm()
		return nil
	})
	eg.Go(func() error {
		_ = i.initOss()
		return nil
	})
	eg.Go(i.initMcp)

	return eg.Wait()
}

// Close 优雅地关闭和释放所有资源
func (i *Initializer) Close() {
	i.timerStop()
	if err := i.dbClose(); err != nil {
		global.Log.Warnf("关闭数据库失败: %v", err)
	}
	if err := i.redisClose(); err != nil {
		global.Log.Warnf("关闭Redis失败: %v", err)
	}
	if err := i.mcpClose(); err != nil {
		global.Log.Warnf("关闭MCP失败: %v", err)
	}
	if err := i.ossClose(); err != nil {
		global.Log.Warnf("关闭OSS失败: %v", err)
	}
	i.logClose()
}

// StartSystem 启动系统级服务，如定时器
func (i *Initializer) StartSystem(taskManager *task.Manager) {
	if err := i.timerStart(taskManager); err != nil {
		panic(err)
	}
	// 启动时探测一次, 填充 chatbot_model_up
	go func() {
		_ = taskManager.ProbeModel()
	}()
}
