package user

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/global"
	"gitee.com/taoJie_1/cellphone-agent/model/common"
	"gitee.com/taoJie_1/cellphone-agent/model/enum"
	"gitee.com/taoJie_1/cellphone-agent/pkg/llm"
	"gitee.com/taoJie_1/cellphone-agent/service"
	"gitee.com/taoJie_1/cellphone-agent/service/user"
	"gitee.com/taoJie_1/cellphone-agent/utils"
	"github.com/gin-gonic/gin"
)

const healthTimeout = 5 * time.Second

type ChatApi struct{}

// HandleChat 聊天窗口发来的消息, 同步返回助手回复
func (d *ChatApi) HandleChat(ctx *gin.Context) {
	var req common.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		common.FailBadRequest(ctx, enum.MsgInvalidMessage)
		return
	}
	text, ok := req.Text()
	if !ok {
		common.FailBadRequest(ctx, enum.MsgInvalidMessage)
		return
	}

	reply, err := service.Service.UserServiceGroup().ChatService.Reply(ctx.Request.Context(), text)
	if err != nil {
		entry := global.Log.WithField("request_id", utils.RequestID(ctx.Request.Context()))
		if cause := errors.Unwrap(err); cause != nil {
			entry = entry.WithField("cause", cause.Error())
		}
		entry.Errorf("[HandleChat] %v", err)
		common.Fail(ctx, statusForError(err), messageForError(err))
		return
	}
	common.Reply(ctx, reply)
}

// Health 模型服务连通性
func (d *ChatApi) Health(ctx *gin.Context) {
	c, cancel := context.WithTimeout(ctx.Request.Context(), healthTimeout)
	defer cancel()

	status := service.Service.UserServiceGroup().ChatService.Health(c)
	code := http.StatusOK
	if !status.Ok {
		code = http.StatusServiceUnavailable
	}
	ctx.JSON(code, status)
}

// Test 固定对话测试模型是否可用
func (d *ChatApi) Test(ctx *gin.Context) {
	reply, model, err := service.Service.UserServiceGroup().ChatService.Ping(ctx.Request.Context())
	if err != nil {
		global.Log.Errorf("[Test] %v", err)
		common.Fail(ctx, statusForError(err), messageForError(err))
		return
	}
	common.ReplyWithModel(ctx, reply, model)
}

// statusForError 连接类错误返回503; 兼容只带文案的旧错误
func statusForError(err error) int {
	if llm.IsConnectivity(err) || utils.ContainsAny(err.Error(), []string{enum.ConnectivityKeyword}) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// messageForError 只向前端暴露已本地化的文案
func messageForError(err error) string {
	var ce *llm.CompletionError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	if errors.Is(err, user.ErrEmptyReply) {
		return user.ErrEmptyReply.Error()
	}
	return string(enum.MsgChatFailed)
}
