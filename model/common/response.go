package common

import (
	"net/http"

	"gitee.com/taoJie_1/cellphone-agent/model/enum"
	"github.com/gin-gonic/gin"
)

type ReplyResponse struct {
	Reply string `json:"reply"`
	Model string `json:"model,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func Reply(ctx *gin.Context, reply string) {
	ctx.JSON(http.StatusOK, ReplyResponse{Reply: reply})
}

// 带模型名称, 用于连通性测试
func ReplyWithModel(ctx *gin.Context, reply, model string) {
	ctx.JSON(http.StatusOK, ReplyResponse{Reply: reply, Model: model})
}

func Fail(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

func FailBadRequest(ctx *gin.Context, message enum.Msg) {
	Fail(ctx, http.StatusBadRequest, string(message))
}

func FailNotFound(ctx *gin.Context) {
	Fail(ctx, http.StatusNotFound, string(enum.MsgNotFound))
}
