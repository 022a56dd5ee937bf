package routes

import (
	"anima/controllers"

	"github.com/gin-gonic/gin"
)

func GetShopItemsRouteHandler(c *gin.Context)  { controllers.GetShopItems(c) }
func PurchaseItemRouteHandler(c *gin.Context)  { controllers.PurchaseItem(c) }
func UseItemRouteHandler(c *gin.Context)       { controllers.UseItem(c) }
func SetBackgroundRouteHandler(c *gin.Context) { controllers.SetBackground(c) }
func GetInventoryRouteHandler(c *gin.Context)  { controllers.GetInventory(c) }

func SetupShopRoutes(router *gin.RouterGroup) {
	shop := router.Group("/shop")
	{
		shop.GET("/items", GetShopItemsRouteHandler)
		shop.POST("/purchase", PurchaseItemRouteHandler)
		shop.POST("/use", UseItemRouteHandler)
		shop.POST("/background", SetBackgroundRouteHandler)
		shop.GET("/inventory", GetInventoryRouteHandler)
	}
}
