package user

import (
	"fmt"
	"strings"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/model/common"
	"gitee.com/taoJie_1/cellphone-agent/model/dto"
)

// ParseToolCalls 从模型消息中取出工具调用.
// 没有函数名的条目被丢弃, 缺少 id 的补为 call_<unixnano>_<下标>
func ParseToolCalls(msg common.LlmMessage, now time.Time) []dto.ToolCall {
	if len(msg.ToolCalls) == 0 {
		return nil
	}

	calls := make([]dto.ToolCall, 0, len(msg.ToolCalls))
	for i, tc := range msg.ToolCalls {
		name := strings.TrimSpace(tc.Function.Name)
		if name == "" {
			continue
		}
		id := tc.ID
		if id == "" {
			id = fmt.Sprintf("call_%d_%d", now.UnixNano(), i)
		}
		calls = append(calls, dto.ToolCall{
			ID:        id,
			Name:      name,
			Arguments: tc.Function.Arguments,
		})
	}
	return calls
}
