package task

import (
	"context"
	"errors"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/global"
	"gitee.com/taoJie_1/cellphone-agent/internal/metrics"
)

const probeTimeout = 10 * time.Second

// ProbeModel 探测模型服务, 只在状态变化时记录日志
func (m *Manager) ProbeModel() error {
	svc := m.llmService()
	if svc == nil {
		return errors.New("模型客户端未初始化[n6rj2y]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	err := svc.Ping(ctx)
	up := err == nil
	metrics.SetModelUp(up)

	m.mu.Lock()
	changed := m.modelUp == nil || *m.modelUp != up
	m.modelUp = &up
	m.mu.Unlock()

	if changed {
		if up {
			global.Log.Infof("模型服务可用: %s (%s)", svc.BaseURL(), svc.Model())
		} else {
			global.Log.Warnf("模型服务不可用: %s (%s): %v", svc.BaseURL(), svc.Model(), err)
		}
	}
	return err
}
