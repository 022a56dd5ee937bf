package middlewares

import (
	"anima/internal/logger"
	"anima/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DailyResetMiddleware settles the day rollover before any habit handler
// runs. A failure is logged and the request continues; the rollover is
// retried on the next request.
func DailyResetMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.Next()
			return
		}

		res, err := services.GetGameService().RunDailyReset(c.Request.Context(), userID)
		if err != nil {
			logger.Log.Warn("daily reset check failed", zap.String("userID", userID.Hex()), zap.Error(err))
		} else if res.Applied {
			c.Set("dailyReset", res)
		}
		c.Next()
	}
}
