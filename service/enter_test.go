package service

import (
	"sync"
	"testing"

	"gitee.com/taoJie_1/cellphone-agent/service/user"
	"github.com/stretchr/testify/assert"
)

func TestSetUserServiceGroup(t *testing.T) {
	s := new(ServiceGroup)
	assert.Nil(t, s.UserServiceGroup())

	s.SetUserServiceGroup(user.ServiceGroup{})
	old := s.UserServiceGroup()

	// 并发替换与读取, 配合 -race 运行
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetUserServiceGroup(user.ServiceGroup{})
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, s.UserServiceGroup())
		}()
	}
	wg.Wait()

	assert.NotSame(t, old, s.UserServiceGroup())
}
