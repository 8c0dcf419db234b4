package router

import (
	"gitee.com/taoJie_1/cellphone-agent/controller"
	"gitee.com/taoJie_1/cellphone-agent/middleware"
	"gitee.com/taoJie_1/cellphone-agent/model/common"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Start(ginServer *gin.Engine) {
	ginServer.Use(middleware.RequestID(), middleware.Metrics(), middleware.CorsHandle()) //全局中间件

	ginServer.NoRoute(common.FailNotFound)
	ginServer.GET("/metrics", gin.WrapH(promhttp.Handler()))

	chat := ginServer.Group("api/chat")
	{
		chat.POST("", controller.Api.UserApiGroup.ChatApi.HandleChat)
		chat.GET("/health", controller.Api.UserApiGroup.ChatApi.Health)
		chat.POST("/test", controller.Api.UserApiGroup.ChatApi.Test)
	}
}
