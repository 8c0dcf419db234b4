package global

import (
	"testing"

	"gitee.com/taoJie_1/cellphone-agent/model/config"
	"github.com/stretchr/testify/assert"
)

func TestSetConfig(t *testing.T) {
	old := Config()
	assert.NotNil(t, old)
	defer SetConfig(old)

	c := &config.Config{GinAddr: ":8080"}
	SetConfig(c)
	assert.Same(t, c, Config())
	// 旧快照不受替换影响
	assert.NotEqual(t, ":8080", old.GinAddr)
}

func TestSetLlmService(t *testing.T) {
	assert.Nil(t, LlmService())
	SetLlmService(nil)
	assert.Nil(t, LlmService())
}
