package controllers

import (
	"errors"
	"net/http"

	"anima/internal/logger"
	"anima/middlewares"
	"anima/progression"
	"anima/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var clientErrors = []error{
	progression.ErrAlreadyCompleted,
	progression.ErrNotCompletedYet,
	progression.ErrInvalidHabit,
	progression.ErrInvalidPetUpdate,
	progression.ErrInvalidQuantity,
	progression.ErrInsufficientFunds,
	progression.ErrAlreadyOwned,
	progression.ErrNotOwned,
	progression.ErrNotUsable,
	progression.ErrNoItemInInventory,
	services.ErrInvalidRegistration,
}

// respondError maps a service error onto a status code and {"error": msg}.
// Storage failures never leak their cause to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, progression.ErrHabitNotFound),
		errors.Is(err, progression.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	for _, target := range clientErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if !errors.Is(err, services.ErrPersistence) {
		logger.Log.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please try again"})
}

func currentUser(c *gin.Context) (primitive.ObjectID, bool) {
	id, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
	}
	return id, ok
}

func habitIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid habit ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return false
	}
	return true
}
