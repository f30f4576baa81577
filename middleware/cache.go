package middleware

import "github.com/gin-gonic/gin"

// NoStoreMiddleware keeps tenant data out of shared and browser caches.
func NoStoreMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}
