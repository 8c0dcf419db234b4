package llm

import (
	"context"
	"errors"
	"fmt"

	"gitee.com/taoJie_1/cellphone-agent/model/common"
	"gitee.com/taoJie_1/cellphone-agent/model/enum"
	"github.com/sashabaranov/go-openai"
)

// Service 模型服务客户端, 每次调用只发出一次请求, 不做重试
type Service interface {
	// ChatCompletion 发送一次对话补全请求; tools 为空时不向模型提供工具
	ChatCompletion(ctx context.Context, messages []common.LlmMessage, tools []openai.Tool) (*common.LlmReply, error)
	// Ping 检查模型服务是否可达
	Ping(ctx context.Context) error
	Model() string
	BaseURL() string
	Backend() enum.LlmBackend
}

type ErrorKind int

const (
	// 无法连接(拒绝连接/超时/DNS等)
	KindConnectivity ErrorKind = iota + 1
	// 服务端返回非2xx
	KindModel
	// 响应体无法解析
	KindDecode
)

// CompletionError 对外暴露的错误文案已本地化, 原始错误通过 Unwrap 获取
type CompletionError struct {
	Kind       ErrorKind
	StatusCode int
	Msg        string
	Err        error
}

func (e *CompletionError) Error() string {
	return e.Msg
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

func NewConnectivityError(err error) *CompletionError {
	return &CompletionError{Kind: KindConnectivity, Msg: string(enum.MsgConnectFailed), Err: err}
}

func NewModelError(statusCode int, err error) *CompletionError {
	return &CompletionError{
		Kind:       KindModel,
		StatusCode: statusCode,
		Msg:        fmt.Sprintf(string(enum.MsgModelFailed), statusCode),
		Err:        err,
	}
}

func NewDecodeError(err error) *CompletionError {
	return &CompletionError{Kind: KindDecode, Msg: string(enum.MsgModelBadResponse), Err: err}
}

// IsConnectivity 判断错误链中是否存在连接类错误
func IsConnectivity(err error) bool {
	var ce *CompletionError
	return errors.As(err, &ce) && ce.Kind == KindConnectivity
}
