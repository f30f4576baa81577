package handler

import (
	"tenantnotes/usecase"
	"tenantnotes/utils"

	"github.com/gin-gonic/gin"
)

func UpgradeTenantHandler(c *gin.Context, tenantService *usecase.TenantService) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	tenant, err := tenantService.Upgrade(c.Request.Context(), identity, c.Param("slug"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Success(c, gin.H{
		"message": "Tenant upgraded to Pro successfully",
		"tenant": gin.H{
			"slug": tenant.Slug,
			"plan": tenant.Plan,
		},
	})
}
