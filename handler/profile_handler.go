package handler

import (
	"tenantnotes/dto"
	"tenantnotes/usecase"
	"tenantnotes/utils"

	"github.com/gin-gonic/gin"
)

// ProfileHandler returns the caller with their tenant's current plan.
func ProfileHandler(c *gin.Context, authService *usecase.AuthService) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	user, tenant, err := authService.Me(c.Request.Context(), identity)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, gin.H{"user": dto.ToUserResponse(user, tenant)})
}
