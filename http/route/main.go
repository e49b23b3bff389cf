package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/imgdose/imgdose-api/http/controller"
	middlewares "github.com/imgdose/imgdose-api/http/middleware"
	"github.com/imgdose/imgdose-api/utils"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)

	r.NoRoute(func(c *gin.Context) {
		utils.JSON404(c, "Not Found")
	})

	r.GET("/healthz", ctrl.HealthCheck)
	r.GET("/healthz/storage", middles.AuthMiddleware, ctrl.StorageHealth)
	r.POST("/auth/login", ctrl.Login)

	imageRoutes := r.Group("/images")
	{
		imageRoutes.Use(middles.AuthMiddleware)

		imageRoutes.GET("", ctrl.ListImages)
		imageRoutes.POST("", ctrl.UploadImages)
		imageRoutes.DELETE("", ctrl.DeleteImages)
		imageRoutes.POST("/archive", ctrl.ArchiveImages)
	}

	return r
}
