package leaderboard

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type scoreUpdateRequest struct {
	UserID   string  `json:"userId"`
	Username string  `json:"username"`
	Score    float64 `json:"score"`
}

// HandleUpdateChaserScore 处理 POST /api/update-chaser-score
func HandleUpdateChaserScore(c *gin.Context) {
	handleScoreUpdate(c, func(req scoreUpdateRequest) (*UserStatsData, error) {
		return UpdateChaserScore(req.UserID, req.Username, req.Score)
	})
}

// HandleUpdatePhraserScore 处理 POST /api/update-phraser-score
func HandleUpdatePhraserScore(c *gin.Context) {
	handleScoreUpdate(c, func(req scoreUpdateRequest) (*UserStatsData, error) {
		return UpdatePhraserScore(req.UserID, req.Username, req.Score)
	})
}

// HandleUpdateSharerScore 处理 POST /api/update-sharer-score
func HandleUpdateSharerScore(c *gin.Context) {
	handleScoreUpdate(c, func(req scoreUpdateRequest) (*UserStatsData, error) {
		return UpdateSharerScore(req.UserID, req.Username)
	})
}

func handleScoreUpdate(c *gin.Context, update func(scoreUpdateRequest) (*UserStatsData, error)) {
	var req scoreUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId"})
		return
	}
	if req.Score < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Score must be non-negative"})
		return
	}

	stats, err := update(req)
	if err != nil {
		fmt.Printf("更新用户 %s 的得分失败: %v\n", req.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update score"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// HandleGetLeaderboard 处理 GET /api/leaderboard?type=...&currentUserId=...
func HandleGetLeaderboard(c *gin.Context) {
	boardType := c.DefaultQuery("type", TypeChaser)
	userID := c.Query("currentUserId")

	result, err := GetLeaderboard(boardType, userID)
	if err != nil {
		if errors.Is(err, ErrInvalidBoardType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid leaderboard type"})
			return
		}
		fmt.Printf("读取 %s 榜单失败: %v\n", boardType, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get leaderboard"})
		return
	}

	resp := gin.H{
		"success":     true,
		"type":        boardType,
		"leaderboard": result.Entries,
	}
	if result.UserRank != nil {
		resp["userRank"] = result.UserRank
	}
	c.JSON(http.StatusOK, resp)
}

// HandleGetUserStats 处理 GET /api/user-stats?userId=...
func HandleGetUserStats(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId parameter"})
		return
	}

	stats, err := GetUserStats(userID)
	if err != nil {
		fmt.Printf("读取用户 %s 的战绩失败: %v\n", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get user stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// HandleClearLeaderboards 处理 POST /api/leaderboard/clear
func HandleClearLeaderboards(c *gin.Context) {
	if err := ClearLeaderboards(); err != nil {
		fmt.Printf("清空排行榜失败: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear leaderboards"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Leaderboards cleared successfully"})
}
