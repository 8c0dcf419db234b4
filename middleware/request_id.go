package middleware

import (
	"gitee.com/taoJie_1/cellphone-agent/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

// RequestID 沿用上游传入的请求ID, 否则生成新的, 并写入请求上下文
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		ctx.Set("request_id", id)
		ctx.Header(RequestIDHeader, id)
		ctx.Request = ctx.Request.WithContext(utils.WithRequestID(ctx.Request.Context(), id))
		ctx.Next()
	}
}
