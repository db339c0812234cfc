package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fangguanya/BiliNote/internal/event"
)

type setCookieRequest struct {
	Cookie string `json:"cookie" binding:"required"`
}

// SetCookieHandler 保存外部登录流程拿到的平台 Cookie
func SetCookieHandler(c *gin.Context) {
	platform := strings.ToLower(c.Param("platform"))

	var req setCookieRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Cookie) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cookie is required"})
		return
	}

	if err := cookies.Set(platform, req.Cookie); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cookie"})
		return
	}

	event.GlobalBus.Publish(event.EventCookieUpdated, platform)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "platform": platform})
}

// CookieStatusHandler 只回答有没有，不回显 Cookie 内容
func CookieStatusHandler(c *gin.Context) {
	platform := strings.ToLower(c.Param("platform"))
	c.JSON(http.StatusOK, gin.H{
		"platform": platform,
		"exists":   cookies.Exists(platform),
	})
}

func DeleteCookieHandler(c *gin.Context) {
	platform := strings.ToLower(c.Param("platform"))
	if err := cookies.Delete(platform); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete cookie"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "platform": platform})
}
