package handler

import (
	"net/http"

	"tenantnotes/utils"

	"github.com/gin-gonic/gin"
)

func HealthHandler(c *gin.Context) {
	snapshot := utils.GetSystemSnapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":              "ok",
		"cpu_percent":         snapshot.CPUPercent,
		"memory_used_percent": snapshot.MemoryPercent,
	})
}
