package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes the uniform response envelope: {"ok": <ok>, ...payload}.
func JSON(c *gin.Context, status int, ok bool, payload gin.H) {
	body := gin.H{"ok": ok}
	for key, value := range payload {
		body[key] = value
	}
	c.JSON(status, body)
}

func JSON200(c *gin.Context, payload gin.H) {
	JSON(c, http.StatusOK, true, payload)
}

func JSON400(c *gin.Context, message string) {
	JSON(c, http.StatusBadRequest, false, gin.H{"error": message})
}

func JSON401(c *gin.Context, message string) {
	JSON(c, http.StatusUnauthorized, false, gin.H{"error": message})
}

func JSON404(c *gin.Context, message string) {
	JSON(c, http.StatusNotFound, false, gin.H{"error": message})
}

func JSON500(c *gin.Context, message string) {
	JSON(c, http.StatusInternalServerError, false, gin.H{"error": message})
}
