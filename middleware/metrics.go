package middleware

import (
	"gitee.com/taoJie_1/cellphone-agent/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics 按路由模板统计请求数, 未匹配的路由统一记为 unmatched
func Metrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveRequest(path, ctx.Writer.Status())
	}
}
