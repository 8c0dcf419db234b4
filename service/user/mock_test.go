package user

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"gitee.com/taoJie_1/cellphone-agent/model/common"
	"gitee.com/taoJie_1/cellphone-agent/model/dto"
	"gitee.com/taoJie_1/cellphone-agent/model/enum"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// ---- mockLlm ----

type mockResponse struct {
	reply *common.LlmReply
	err   error
}

type mockRequest struct {
	messages []common.LlmMessage
	tools    []openai.Tool
}

// mockLlm 按顺序返回预置的响应, 用尽后返回错误
type mockLlm struct {
	responses []mockResponse
	requests  []mockRequest
	pingErr   error
}

func (m *mockLlm) ChatCompletion(_ context.Context, messages []common.LlmMessage, tools []openai.Tool) (*common.LlmReply, error) {
	m.requests = append(m.requests, mockRequest{
		messages: append([]common.LlmMessage(nil), messages...),
		tools:    tools,
	})
	if len(m.requests) > len(m.responses) {
		return nil, errors.New("mockLlm: no more responses queued")
	}
	r := m.responses[len(m.requests)-1]
	return r.reply, r.err
}

func (m *mockLlm) Ping(context.Context) error { return m.pingErr }
func (m *mockLlm) Model() string              { return "qwen2.5:3b" }
func (m *mockLlm) BaseURL() string            { return "http://localhost:11434" }
func (m *mockLlm) Backend() enum.LlmBackend   { return enum.BackendOllama }

func textResp(content string) mockResponse {
	return mockResponse{reply: &common.LlmReply{
		Model:   "qwen2.5:3b",
		Message: common.LlmMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
		Done:    true,
	}}
}

func toolCallResp(id, name, args string) mockResponse {
	return mockResponse{reply: &common.LlmReply{
		Model: "qwen2.5:3b",
		Message: common.LlmMessage{
			Role: openai.ChatMessageRoleAssistant,
			ToolCalls: []common.LlmToolCall{{
				ID:       id,
				Function: common.LlmFunctionCall{Name: name, Arguments: json.RawMessage(args)},
			}},
		},
		Done: true,
	}}
}

func errResp(err error) mockResponse {
	return mockResponse{err: err}
}

// ---- providers ----

type mockProductProvider struct {
	products []dto.ProductSuggestion
	err      error
	calls    int
	limit    int
}

func (m *mockProductProvider) Search(_ context.Context, _ dto.SearchProductsArgs, limit int) ([]dto.ProductSuggestion, error) {
	m.calls++
	m.limit = limit
	return m.products, m.err
}

type mockOrderProvider struct {
	status *dto.OrderStatus
	err    error
	got    dto.CheckOrderArgs
}

func (m *mockOrderProvider) Lookup(_ context.Context, args dto.CheckOrderArgs) (*dto.OrderStatus, error) {
	m.got = args
	return m.status, m.err
}
