package controllers

import (
	"net/http"

	"anima/progression"
	"anima/services"
	"anima/structs"

	"github.com/gin-gonic/gin"
)

func GetPet(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	pet, err := services.GetGameService().GetPet(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pet)
}

// UpdatePet overwrites the given stats and XP, then recomputes the stage.
func UpdatePet(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req structs.UpdatePetRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := progression.PetPatch{TotalXP: req.TotalXP}
	if req.Stats != nil {
		patch.Stats = &progression.StatsPatch{Str: req.Stats.Str, Int: req.Stats.Int, Spi: req.Stats.Spi}
	}

	pet, err := services.GetGameService().UpdatePet(c.Request.Context(), userID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pet)
}

func ApplyDecay(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	view, err := services.GetGameService().ApplyDecay(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
