package common

import (
	"encoding/json"
	"strings"
)

// ChatRequest 对应前端聊天窗口发送的消息体
// message 保持原始JSON, 以便区分"缺失"与"非字符串"
type ChatRequest struct {
	Message json.RawMessage `json:"message"`
}

// Text 返回去除首尾空白的消息文本, 非字符串或空字符串时 ok 为 false
func (r *ChatRequest) Text() (string, bool) {
	if len(r.Message) == 0 {
		return "", false
	}
	var text string
	if err := json.Unmarshal(r.Message, &text); err != nil {
		return "", false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return text, true
}
