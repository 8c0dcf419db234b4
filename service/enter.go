package service

import (
	"sync/atomic"

	"gitee.com/taoJie_1/cellphone-agent/service/user"
)

// ServiceGroup 配置热更新时整组替换, 进行中的请求继续使用旧实例
type ServiceGroup struct {
	userServiceGroup atomic.Pointer[user.ServiceGroup]
}

var Service = new(ServiceGroup)

func (s *ServiceGroup) UserServiceGroup() *user.ServiceGroup {
	return s.userServiceGroup.Load()
}

func (s *ServiceGroup) SetUserServiceGroup(g user.ServiceGroup) {
	s.userServiceGroup.Store(&g)
}
