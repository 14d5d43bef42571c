package settings

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleGetAudioSettings 处理 GET /api/audio-settings?userId=...
func HandleGetAudioSettings(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId parameter"})
		return
	}

	settings, err := GetAudioSettings(userID)
	if err != nil {
		fmt.Printf("读取用户 %s 的音频设置失败: %v\n", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get audio settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "settings": settings})
}

// HandleSaveAudioSettings 处理 POST /api/audio-settings
func HandleSaveAudioSettings(c *gin.Context) {
	var req struct {
		UserID   string        `json:"userId"`
		Settings AudioSettings `json:"settings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId"})
		return
	}

	if err := SaveAudioSettings(req.UserID, &req.Settings); err != nil {
		fmt.Printf("保存用户 %s 的音频设置失败: %v\n", req.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save audio settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "settings": req.Settings})
}
