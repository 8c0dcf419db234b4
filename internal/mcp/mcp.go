package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/model/config"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"
)

// Service 与订单系统的MCP服务交互
type Service interface {
	// Tools 返回最近一次发现的工具列表
	Tools() []mcp.Tool
	// HasTool 判断服务是否提供指定工具
	HasTool(name string) bool
	// Refresh 重新连接并发现工具
	Refresh(ctx context.Context) error
	// ExecuteTool 以 连接-调用-关闭 的方式执行一次工具调用, 返回文本内容
	ExecuteTool(ctx context.Context, toolName string, arguments json.RawMessage) (string, error)
	Close() error
}

type client struct {
	log    logrus.FieldLogger
	mcp    *mcp.Client
	config config.Mcp
	tools  map[string]mcp.Tool
	mu     sync.RWMutex
}

// transportWithAuth 在每个请求中添加认证头
type transportWithAuth struct {
	http.RoundTripper
	token string
}

func (t *transportWithAuth) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	if t.token != "" {
		req2.Header.Set("Authorization", "Bearer "+t.token)
	}
	return t.RoundTripper.RoundTrip(req2)
}

// NewClient 创建MCP客户端; 工具发现失败只记录日志, 调用时再连接
func NewClient(log logrus.FieldLogger, cfg config.Mcp, appVersion, projectName string) Service {
	c := &client{
		log:    log,
		mcp:    mcp.NewClient(&mcp.Implementation{Name: projectName, Version: appVersion}, nil),
		config: cfg,
		tools:  make(map[string]mcp.Tool),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.Refresh(ctx); err != nil {
		log.Errorf("MCP服务 '%s' 工具发现失败: %v", cfg.Url, err)
	}
	return c
}

func (c *client) transport() *mcp.StreamableClientTransport {
	return &mcp.StreamableClientTransport{
		Endpoint: c.config.Url,
		HTTPClient: &http.Client{
			Transport: &transportWithAuth{
				RoundTripper: http.DefaultTransport,
				token:        c.config.Auth,
			},
		},
	}
}

func (c *client) Refresh(ctx context.Context) error {
	session, err := c.mcp.Connect(ctx, c.transport(), nil)
	if err != nil {
		return fmt.Errorf("连接MCP服务失败[t7mc0q]: %w", err)
	}
	defer session.Close()

	loaded := make(map[string]mcp.Tool)
	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			return fmt.Errorf("获取MCP工具列表失败[r3xn5h]: %w", err)
		}
		loaded[tool.Name] = *tool
	}

	c.mu.Lock()
	c.tools = loaded
	c.mu.Unlock()
	c.log.Infof("成功从MCP服务发现 %d 个工具", len(loaded))
	return nil
}

func (c *client) Tools() []mcp.Tool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list := make([]mcp.Tool, 0, len(c.tools))
	for _, tool := range c.tools {
		list = append(list, tool)
	}
	return list
}

func (c *client) HasTool(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.tools[name]
	return ok
}

func (c *client) ExecuteTool(ctx context.Context, toolName string, arguments json.RawMessage) (string, error) {
	c.mu.RLock()
	tool, toolOk := c.tools[toolName]
	c.mu.RUnlock()

	finalArguments := arguments
	if toolOk && tool.InputSchema != nil {
		if schema, err := toSchema(tool.InputSchema); err != nil {
			c.log.Warnf("无法解析工具 '%s' 的InputSchema: %v, 使用原始参数", toolName, err)
		} else if corrected, err := CoerceArguments(arguments, schema); err != nil {
			c.log.Warnf("MCP工具 '%s' 的参数类型转换失败: %v, 使用原始参数", toolName, err)
		} else {
			finalArguments = corrected
		}
	}

	session, err := c.mcp.Connect(ctx, c.transport(), nil)
	if err != nil {
		return "", fmt.Errorf("执行工具时连接MCP服务失败[b4kq7s]: %w", err)
	}
	defer session.Close()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      toolName,
		Arguments: finalArguments,
	})
	if err != nil {
		return "", fmt.Errorf("调用工具 '%s' 失败[u1jd6e]: %w", toolName, err)
	}

	text := textContent(res.Content)
	if res.IsError {
		return "", fmt.Errorf("工具 '%s' 执行返回错误: %s", toolName, text)
	}
	return text, nil
}

func (c *client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tools = make(map[string]mcp.Tool)
	return nil
}

func textContent(contents []mcp.Content) string {
	var b strings.Builder
	for _, content := range contents {
		if t, ok := content.(*mcp.TextContent); ok {
			b.WriteString(t.Text)
		}
	}
	return b.String()
}

func toSchema(v any) (*jsonschema.Schema, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

// CoerceArguments 按 schema 修正模型生成的参数类型.
// 数字字符串转为数字, 数字转为字符串; 无法转换的值会被丢弃
func CoerceArguments(arguments json.RawMessage, schema *jsonschema.Schema) (json.RawMessage, error) {
	if len(arguments) == 0 || string(arguments) == "null" {
		return json.RawMessage(`{}`), nil
	}

	var argsMap map[string]any
	if err := json.Unmarshal(arguments, &argsMap); err != nil {
		return nil, fmt.Errorf("无法将参数解码为map[e9gs2v]: %w", err)
	}
	if argsMap == nil {
		return nil, errors.New("参数必须是JSON对象[y6lw0a]")
	}
	if schema == nil || schema.Properties == nil {
		return arguments, nil
	}

	for key, value := range argsMap {
		propSchema, ok := schema.Properties[key]
		if !ok || propSchema.Type == "" {
			continue
		}
		if value == nil {
			delete(argsMap, key)
			continue
		}

		switch propSchema.Type {
		case "integer", "number":
			switch v := value.(type) {
			case float64:
			case string:
				s := strings.TrimSpace(v)
				if s == "" {
					delete(argsMap, key)
					break
				}
				if f, err := strconv.ParseFloat(s, 64); err == nil {
					argsMap[key] = f
				} else {
					delete(argsMap, key)
				}
			default:
				delete(argsMap, key)
			}
		case "string":
			switch v := value.(type) {
			case string:
			case float64:
				argsMap[key] = strconv.FormatFloat(v, 'f', -1, 64)
			case bool:
				argsMap[key] = strconv.FormatBool(v)
			default:
				delete(argsMap, key)
			}
		case "boolean":
			if s, ok := value.(string); ok {
				if b, err := strconv.ParseBool(s); err == nil {
					argsMap[key] = b
				} else {
					delete(argsMap, key)
				}
			}
		}
	}

	coerced, err := json.Marshal(argsMap)
	if err != nil {
		return nil, fmt.Errorf("无法将修正后的参数重新编码为JSON[a2hc8f]: %w", err)
	}
	return coerced, nil
}
