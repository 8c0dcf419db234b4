package user

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/internal/metrics"
	"gitee.com/taoJie_1/cellphone-agent/model/common"
	"gitee.com/taoJie_1/cellphone-agent/model/config"
	"gitee.com/taoJie_1/cellphone-agent/model/dto"
	"gitee.com/taoJie_1/cellphone-agent/model/enum"
	"gitee.com/taoJie_1/cellphone-agent/pkg/llm"
	"gitee.com/taoJie_1/cellphone-agent/utils"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const defaultMaxMessageLength = 2000

// ErrEmptyReply 两轮补全后仍没有文本内容
var ErrEmptyReply = errors.New(string(enum.MsgEmptyReply))

type ChatService interface {
	// Reply 处理一条用户消息: 首轮补全, 按需执行工具并进行第二轮补全
	Reply(ctx context.Context, message string) (string, error)
	// Ping 用固定对话测试模型, 返回回复与模型名
	Ping(ctx context.Context) (string, string, error)
	// Health 检查模型服务连通性
	Health(ctx context.Context) dto.HealthStatus
}

type chatService struct {
	log          logrus.FieldLogger
	llm          llm.Service
	tools        ToolExecutor
	systemPrompt string
	maxLength    int
	now          func() time.Time
}

func NewChatService(log logrus.FieldLogger, llmService llm.Service, tools ToolExecutor, cfg config.Chat) *chatService {
	s := &chatService{
		log:          log,
		llm:          llmService,
		tools:        tools,
		systemPrompt: strings.TrimSpace(cfg.SystemPrompt),
		maxLength:    cfg.MaxMessageLength,
		now:          time.Now,
	}
	if s.systemPrompt == "" {
		s.systemPrompt = string(enum.SystemPromptDefault)
	}
	if s.maxLength <= 0 {
		s.maxLength = defaultMaxMessageLength
	}
	return s
}

func (s *chatService) Reply(ctx context.Context, message string) (string, error) {
	entry := s.log.WithField("request_id", utils.RequestID(ctx))

	messages := []common.LlmMessage{
		{Role: openai.ChatMessageRoleSystem, Content: s.systemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: utils.TruncateRunes(message, s.maxLength)},
	}

	first, err := s.complete(ctx, entry, messages)
	if err != nil {
		return "", err
	}

	calls := ParseToolCalls(first.Message, s.now())
	if len(calls) == 0 {
		return finish(first)
	}
	entry.Infof("模型请求调用 %d 个工具", len(calls))

	// tool 消息必须紧跟在带 tool_calls 的 assistant 消息之后
	assistant := common.LlmMessage{
		Role:      openai.ChatMessageRoleAssistant,
		Content:   first.Message.Content,
		ToolCalls: make([]common.LlmToolCall, 0, len(calls)),
	}
	for _, call := range calls {
		assistant.ToolCalls = append(assistant.ToolCalls, common.LlmToolCall{
			ID:   call.ID,
			Type: string(openai.ToolTypeFunction),
			Function: common.LlmFunctionCall{
				Name:      call.Name,
				Arguments: call.Arguments,
			},
		})
	}
	messages = append(messages, assistant)

	for _, call := range calls {
		messages = append(messages, common.LlmMessage{
			Role:       openai.ChatMessageRoleTool,
			Content:    marshalToolResult(s.tools.Execute(ctx, call)),
			ToolCallID: call.ID,
		})
	}

	second, err := s.complete(ctx, entry, messages)
	if err != nil {
		return "", err
	}
	return finish(second)
}

func (s *chatService) Ping(ctx context.Context) (string, string, error) {
	start := time.Now()
	reply, err := s.llm.ChatCompletion(ctx, []common.LlmMessage{
		{Role: openai.ChatMessageRoleSystem, Content: string(enum.SystemPromptPing)},
		{Role: openai.ChatMessageRoleUser, Content: string(enum.PingMessage)},
	}, nil)
	metrics.ObserveCompletion(string(s.llm.Backend()), start, err)
	if err != nil {
		return "", "", err
	}

	model := reply.Model
	if model == "" {
		model = s.llm.Model()
	}
	return strings.TrimSpace(reply.Message.Content), model, nil
}

func (s *chatService) Health(ctx context.Context) dto.HealthStatus {
	status := dto.HealthStatus{
		Ok:        true,
		OllamaUrl: s.llm.BaseURL(),
		Model:     s.llm.Model(),
		Status:    string(enum.HealthConnected),
	}
	if err := s.llm.Ping(ctx); err != nil {
		status.Ok = false
		status.Status = string(enum.HealthDisconnected)
		status.Error = err.Error()
	}
	return status
}

// complete 每轮都附带完整的工具声明
func (s *chatService) complete(ctx context.Context, entry *logrus.Entry, messages []common.LlmMessage) (*common.LlmReply, error) {
	start := time.Now()
	reply, err := s.llm.ChatCompletion(ctx, messages, ToolCatalog())
	metrics.ObserveCompletion(string(s.llm.Backend()), start, err)

	cost := time.Since(start).String()
	if err != nil {
		entry.WithField("cost", cost).Errorf("模型补全失败: %v", err)
		return nil, err
	}
	entry.WithFields(logrus.Fields{"cost": cost, "messages": len(messages)}).Debug("模型补全完成")
	return reply, nil
}

func finish(reply *common.LlmReply) (string, error) {
	content := strings.TrimSpace(reply.Message.Content)
	if content == "" {
		return "", ErrEmptyReply
	}
	return content, nil
}

func marshalToolResult(result any) string {
	data, err := json.Marshal(result)
	if err != nil {
		data, _ = json.Marshal(dto.ToolError{Error: err.Error()})
	}
	return string(data)
}
