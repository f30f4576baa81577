package middleware

import (
	"net/http"

	"tenantnotes/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func EnhancedRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				zap.L().Error("panic recovered",
					zap.Any("panic", err),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", c.GetString(requestIDKey)),
					zap.Stack("stack"),
				)
				utils.TrackError("panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, utils.ErrorResponse{Error: "Internal server error"})
			}
		}()
		c.Next()
	}
}
