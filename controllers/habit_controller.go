package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"anima/progression"
	"anima/services"
	"anima/structs"

	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryDays = 365
	maxHistoryDays     = 3660
)

func GetHabits(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	habits, err := services.GetGameService().ListHabits(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habits)
}

func CreateHabit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req structs.CreateHabitRequest
	if !bindJSON(c, &req) {
		return
	}

	habits, err := services.GetGameService().CreateHabit(c.Request.Context(), userID, progression.HabitDraft{
		Name:         req.Name,
		StatCategory: req.StatCategory,
		Difficulty:   req.Difficulty,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, habits)
}

func CompleteHabit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	habitID, ok := habitIDParam(c)
	if !ok {
		return
	}

	// the body is optional
	var req structs.CompleteHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	view, err := services.GetGameService().CompleteHabit(c.Request.Context(), userID, habitID, req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func ResetHabit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	habitID, ok := habitIDParam(c)
	if !ok {
		return
	}

	view, err := services.GetGameService().ResetHabit(c.Request.Context(), userID, habitID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func DeleteHabit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	habitID, ok := habitIDParam(c)
	if !ok {
		return
	}

	habits, err := services.GetGameService().DeleteHabit(c.Request.Context(), userID, habitID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

func GetHabitHistory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	days := defaultHistoryDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer between 1 and " + strconv.Itoa(maxHistoryDays)})
			return
		}
		days = n
	}

	history, err := services.GetGameService().History(c.Request.Context(), userID, days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func GetRecommendations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recs, err := services.GetGameService().Recommendations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}
