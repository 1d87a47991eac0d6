package route

import (
	"cafedir/controller"
	"cafedir/utils"

	"github.com/gin-gonic/gin"
)

func CafeRoutes(router *gin.Engine, cafes *controller.CafeController, admin *controller.AdminController) {
	adminGroup := router.Group("/api/admin")
	{
		adminGroup.POST("/login", admin.Login)
		adminGroup.GET("/check-auth", admin.CheckAuth)
		adminGroup.POST("/cafes/import", utils.AdminMiddleware(), cafes.BulkImportCafes)
	}

	cafeGroup := router.Group("/api/cafes")
	{
		cafeGroup.GET("", cafes.GetAllCafes)
		cafeGroup.GET("/:id", cafes.GetCafeByID)
		cafeGroup.POST("/:id/comments", cafes.AddComment)
	}

	gated := router.Group("/api/cafes")
	gated.Use(utils.AdminMiddleware())
	{
		gated.POST("", cafes.CreateCafe)
		gated.PUT("/:id", cafes.UpdateCafe)
		gated.DELETE("/:id", cafes.DeleteCafe)
	}
}
