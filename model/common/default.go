package common

import "encoding/json"

// LlmMessage 结构体定义了发送给LLM的聊天消息格式
type LlmMessage struct {
	Role       string        `json:"role"`                   // 消息角色: system, user, assistant, tool
	Content    string        `json:"content"`                // 消息内容
	ToolCalls  []LlmToolCall `json:"tool_calls,omitempty"`   // assistant 请求调用的工具
	ToolCallID string        `json:"tool_call_id,omitempty"` // tool 消息对应的调用ID
}

// LlmToolCall 模型返回的原始工具调用, id 可能缺失
type LlmToolCall struct {
	ID       string          `json:"id,omitempty"`
	Type     string          `json:"type,omitempty"`
	Function LlmFunctionCall `json:"function"`
}

// LlmFunctionCall 中的 Arguments 可能是JSON字符串, 也可能是JSON对象, 保持原样交给执行器解析
type LlmFunctionCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// LlmReply 一次对话补全的结果
type LlmReply struct {
	Model   string     `json:"model"`
	Message LlmMessage `json:"message"`
	Done    bool       `json:"done"`
}
