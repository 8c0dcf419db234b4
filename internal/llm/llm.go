package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/model/common"
	"gitee.com/taoJie_1/cellphone-agent/model/config"
	"gitee.com/taoJie_1/cellphone-agent/model/enum"
	pkgllm "gitee.com/taoJie_1/cellphone-agent/pkg/llm"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// client 通过 OpenAI 兼容接口(/v1)与模型交互, Ollama 与 vLLM 等均支持
type client struct {
	log     logrus.FieldLogger
	api     *openai.Client
	llmConf config.Ollama
}

// NewClient 创建一个新的LLM客户端实例，并通过依赖注入初始化
func NewClient(log logrus.FieldLogger, cfg config.Ollama) pkgllm.Service {
	conf := openai.DefaultConfig(cfg.Auth)
	conf.BaseURL = cfg.Url + "/v1"
	conf.HTTPClient = &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second}
	return &client{
		log:     log,
		api:     openai.NewClientWithConfig(conf),
		llmConf: cfg,
	}
}

func (c *client) Model() string {
	return c.llmConf.Model
}

func (c *client) BaseURL() string {
	return c.llmConf.Url
}

func (c *client) Backend() enum.LlmBackend {
	return enum.BackendOpenAI
}

func (c *client) ChatCompletion(ctx context.Context, messages []common.LlmMessage, tools []openai.Tool) (*common.LlmReply, error) {
	if len(messages) == 0 {
		return nil, errors.New("消息列表不能为空[w8dn3k]")
	}

	req := openai.ChatCompletionRequest{
		Model:       c.llmConf.Model,
		Messages:    toOpenAIMessages(messages),
		Temperature: c.llmConf.Temperature,
		TopP:        c.llmConf.TopP,
		Tools:       tools,
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, c.translateError(ctx, err)
	}

	if len(resp.Choices) == 0 {
		return nil, pkgllm.NewDecodeError(errors.New("LLM服务返回了空结果"))
	}

	return &common.LlmReply{
		Model:   resp.Model,
		Message: fromOpenAIMessage(resp.Choices[0].Message),
		Done:    true,
	}, nil
}

func (c *client) Ping(ctx context.Context) error {
	if _, err := c.api.ListModels(ctx); err != nil {
		return c.translateError(ctx, err)
	}
	return nil
}

// translateError 将 go-openai 的错误映射为 CompletionError
func (c *client) translateError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return err
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		c.log.Errorf("LLM API调用失败: HTTP %d %s", apiErr.HTTPStatusCode, apiErr.Message)
		return pkgllm.NewModelError(apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		c.log.Errorf("LLM API请求失败: HTTP %d %v", reqErr.HTTPStatusCode, reqErr.Err)
		return pkgllm.NewModelError(reqErr.HTTPStatusCode, err)
	}

	c.log.Errorf("LLM API调用失败: %v", err)
	return pkgllm.NewConnectivityError(err)
}

func toOpenAIMessages(messages []common.LlmMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		m := openai.ChatCompletionMessage{
			Role:       msg.Role,
			Content:    msg.Content,
			ToolCallID: msg.ToolCallID,
		}
		for _, tc := range msg.ToolCalls {
			m.ToolCalls = append(m.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Function.Name,
					Arguments: ArgumentsString(tc.Function.Arguments),
				},
			})
		}
		out = append(out, m)
	}
	return out
}

func fromOpenAIMessage(msg openai.ChatCompletionMessage) common.LlmMessage {
	out := common.LlmMessage{
		Role:    msg.Role,
		Content: msg.Content,
	}
	for _, tc := range msg.ToolCalls {
		// OpenAI 兼容接口的参数总是字符串, 以JSON字符串形式保留
		args, _ := json.Marshal(tc.Function.Arguments)
		out.ToolCalls = append(out.ToolCalls, common.LlmToolCall{
			ID:   tc.ID,
			Type: string(tc.Type),
			Function: common.LlmFunctionCall{
				Name:      tc.Function.Name,
				Arguments: args,
			},
		})
	}
	return out
}

// ArgumentsString 将原始参数(JSON字符串或对象)还原为 OpenAI 需要的字符串形式
func ArgumentsString(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "{}"
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal([]byte(trimmed), &s); err == nil {
			return s
		}
	}
	return trimmed
}
