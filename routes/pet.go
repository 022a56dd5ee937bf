package routes

import (
	"anima/controllers"

	"github.com/gin-gonic/gin"
)

func GetPetRouteHandler(c *gin.Context)     { controllers.GetPet(c) }
func UpdatePetRouteHandler(c *gin.Context)  { controllers.UpdatePet(c) }
func ApplyDecayRouteHandler(c *gin.Context) { controllers.ApplyDecay(c) }

func SetupPetRoutes(router *gin.RouterGroup) {
	pet := router.Group("/pet")
	{
		pet.GET("", GetPetRouteHandler)
		pet.POST("/update", UpdatePetRouteHandler)
		pet.POST("/decay", ApplyDecayRouteHandler)
	}
}
