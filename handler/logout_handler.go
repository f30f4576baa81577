package handler

import (
	"tenantnotes/middleware"
	"tenantnotes/usecase"
	"tenantnotes/utils"

	"github.com/gin-gonic/gin"
)

func LogoutHandler(c *gin.Context, authService *usecase.AuthService) {
	if err := authService.Logout(c.Request.Context(), middleware.CurrentToken(c)); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Successfully logged out"})
}
