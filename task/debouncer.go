package task

import (
	"sync"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/global"
)

var (
	debounceTimers = make(map[string]*time.Timer)
	debounceMutex  sync.Mutex
)

// Debounce 同一 key 在 delay 内的多次调用只执行最后一次
func Debounce(key string, delay time.Duration, fn func()) {
	debounceMutex.Lock()
	defer debounceMutex.Unlock()

	if t, ok := debounceTimers[key]; ok {
		t.Stop()
	}

	debounceTimers[key] = time.AfterFunc(delay, func() {
		debounceMutex.Lock()
		delete(debounceTimers, key)
		debounceMutex.Unlock()

		defer func() {
			if p := recover(); p != nil {
				global.Log.Errorf("防抖任务 %s panic: %v", key, p)
			}
		}()
		fn()
	})
}
