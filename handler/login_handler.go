package handler

import (
	"errors"
	"net/http"

	"tenantnotes/dto"
	"tenantnotes/usecase"
	"tenantnotes/utils"

	"github.com/gin-gonic/gin"
)

func LoginHandler(c *gin.Context, authService *usecase.AuthService) {
	var loginReq dto.LoginRequest
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		utils.TrackAuthAttempt("failure", "validation")
		utils.BadRequest(c, "Email and password are required")
		return
	}

	result, err := authService.Login(c.Request.Context(), loginReq.Email, loginReq.Password)
	if errors.Is(err, usecase.ErrInvalidLogin) {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: result.Token,
		User:  dto.ToUserResponse(result.User, result.Tenant),
	})
}
