package task

import (
	"sync"

	"gitee.com/taoJie_1/cellphone-agent/pkg/llm"
)

type Manager struct {
	// 返回当前的模型客户端, 配置热更新后会变化
	llmService func() llm.Service

	mu      sync.Mutex
	modelUp *bool
}

// NewManager 创建一个新的任务管理器
func NewManager(llmService func() llm.Service) *Manager {
	return &Manager{
		llmService: llmService,
	}
}
