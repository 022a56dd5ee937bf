package controllers

import (
	"net/http"

	"anima/services"
	"anima/structs"

	"github.com/gin-gonic/gin"
)

func GetShopItems(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	view, err := services.GetGameService().Shop(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func PurchaseItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req structs.PurchaseRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := services.GetGameService().Purchase(c.Request.Context(), userID, req.ItemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func UseItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req structs.UseItemRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := services.GetGameService().UseItem(c.Request.Context(), userID, req.ItemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func SetBackground(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req structs.SetBackgroundRequest
	if !bindJSON(c, &req) {
		return
	}

	active, err := services.GetGameService().SetBackground(c.Request.Context(), userID, req.BackgroundID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activeBackground": active})
}

func GetInventory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	view, err := services.GetGameService().Inventory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
