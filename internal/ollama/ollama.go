package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/model/common"
	"gitee.com/taoJie_1/cellphone-agent/model/config"
	"gitee.com/taoJie_1/cellphone-agent/model/enum"
	"gitee.com/taoJie_1/cellphone-agent/pkg/llm"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// 单次错误响应体最多记录的长度
const maxErrorBodyLen = 300

type Options struct {
	Temperature float32 `json:"temperature"`
	TopP        float32 `json:"top_p"`
}

// ChatRequest 对应 Ollama 原生 /api/chat 请求体
type ChatRequest struct {
	Model    string              `json:"model"`
	Messages []common.LlmMessage `json:"messages"`
	Stream   bool                `json:"stream"`
	Options  Options             `json:"options"`
	Tools    []openai.Tool       `json:"tools,omitempty"`
}

type chatResponse struct {
	common.LlmReply
	Error string `json:"error"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// client 通过 Ollama 原生接口完成对话
type client struct {
	log        logrus.FieldLogger
	httpClient *http.Client
	baseURL    string
	model      string
	options    Options
}

// NewClient 创建 Ollama 客户端, cfg 需已经过默认值处理与校验
func NewClient(log logrus.FieldLogger, cfg config.Ollama) llm.Service {
	return &client{
		log:        log,
		httpClient: &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		baseURL:    cfg.Url,
		model:      cfg.Model,
		options: Options{
			Temperature: cfg.Temperature,
			TopP:        cfg.TopP,
		},
	}
}

func (c *client) Model() string {
	return c.model
}

func (c *client) BaseURL() string {
	return c.baseURL
}

func (c *client) Backend() enum.LlmBackend {
	return enum.BackendOllama
}

func (c *client) ChatCompletion(ctx context.Context, messages []common.LlmMessage, tools []openai.Tool) (*common.LlmReply, error) {
	if len(messages) == 0 {
		return nil, errors.New("消息列表不能为空[p2kd9x]")
	}

	payload, err := json.Marshal(ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   false,
		Options:  c.options,
		Tools:    tools,
	})
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败[qm3ufe]: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/api/chat", payload)
	if err != nil {
		return nil, err
	}

	var res chatResponse
	if err := json.Unmarshal(data, &res); err != nil {
		c.log.Errorf("解析Ollama响应失败: %v", err)
		return nil, llm.NewDecodeError(err)
	}
	if res.Error != "" {
		return nil, llm.NewModelError(http.StatusOK, errors.New(res.Error))
	}
	if res.Message.Role == "" {
		res.Message.Role = openai.ChatMessageRoleAssistant
	}
	return &res.LlmReply, nil
}

func (c *client) Ping(ctx context.Context) error {
	data, err := c.do(ctx, http.MethodGet, "/api/tags", nil)
	if err != nil {
		return err
	}
	var tags tagsResponse
	if err := json.Unmarshal(data, &tags); err != nil {
		return llm.NewDecodeError(err)
	}
	for _, m := range tags.Models {
		if m.Name == c.model {
			return nil
		}
	}
	c.log.Warnf("Ollama可达, 但未找到模型 %s (共 %d 个模型)", c.model, len(tags.Models))
	return nil
}

// do 发出请求并返回2xx响应体, 其余情况转换为 CompletionError
func (c *client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败[vb71sa]: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.log.Errorf("Ollama请求失败 (%s %s): %v", method, path, err)
		return nil, llm.NewConnectivityError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, llm.NewConnectivityError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw := strings.TrimSpace(string(data))
		if len(raw) > maxErrorBodyLen {
			raw = raw[:maxErrorBodyLen] + "..."
		}
		c.log.Errorf("Ollama返回错误 (%s %s): HTTP %d %s", method, path, resp.StatusCode, raw)
		return nil, llm.NewModelError(resp.StatusCode, errors.New(raw))
	}
	return data, nil
}
