package play

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/config"
)

// HandleCreateGamePost 处理 POST /api/create-game-post
func HandleCreateGamePost(c *gin.Context) {
	var req PostGameData
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := CreateGamePost(req)
	if err != nil {
		fmt.Printf("创建共享帖子失败: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"postId":  created.PostID,
		"data":    created,
	})
}

// HandleGetPostData 处理 GET /api/post-data?postId=...
func HandleGetPostData(c *gin.Context) {
	postID := c.Query("postId")
	if postID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing postId parameter"})
		return
	}

	data, err := GetPostData(postID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		fmt.Printf("读取帖子 %s 的数据失败: %v\n", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get post data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// HandleInit 处理 GET /api/init?postId=...&userId=...
// 客户端启动时调用，返回该帖子承载的玩法类型和当前用户的游玩状态。
// 不带postId时视为主帖（Chaser玩法）。
func HandleInit(c *gin.Context) {
	postID := c.Query("postId")
	userID := c.Query("userId")

	if postID == "" {
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"gameType": "chaser",
			"canPlay":  true,
		})
		return
	}

	data, err := GetPostData(postID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			// 未登记的帖子按主帖处理
			c.JSON(http.StatusOK, gin.H{
				"success":  true,
				"gameType": "chaser",
				"canPlay":  true,
			})
			return
		}
		fmt.Printf("初始化读取帖子 %s 失败: %v\n", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to initialize"})
		return
	}

	resp := gin.H{
		"success":  true,
		"gameType": data.GameType,
		"postData": data,
	}

	if userID != "" {
		canPlay, record, err := CheckPlayStatus(postID, userID)
		if err != nil {
			fmt.Printf("初始化查询游玩状态 (%s, %s) 失败: %v\n", postID, userID, err)
			// 状态查询失败不阻断初始化，按配置决定是否放行
			canPlay = config.Cfg.Gameplay.FailOpenPlayStatus
			record = nil
		}
		resp["canPlay"] = canPlay
		if record != nil {
			resp["playRecord"] = record
		}
	}

	c.JSON(http.StatusOK, resp)
}

// HandleCheckPlayStatus 处理 POST /api/check-play-status
// 请求体: {"postId": "...", "userId": "...", "skip": "true"|""}
// skip为"true"时忽略postId，直接查找下一个未玩的帖子。
func HandleCheckPlayStatus(c *gin.Context) {
	var req struct {
		PostID string `json:"postId"`
		UserID string `json:"userId"`
		Skip   string `json:"skip"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId"})
		return
	}

	if req.Skip == "true" {
		nextPostID, err := FindNextUnplayedPost(req.UserID)
		if err != nil {
			if errors.Is(err, ErrNoUnplayedPosts) {
				c.JSON(http.StatusNotFound, gin.H{"error": "No unplayed posts available"})
				return
			}
			fmt.Printf("查找未玩帖子失败: %v\n", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find next post"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "nextPostId": nextPostID})
		return
	}

	if req.PostID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing postId"})
		return
	}

	if _, err := GetPostData(req.PostID); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"canPlay": false,
				"message": "Post not found",
			})
			return
		}
		fmt.Printf("查询帖子 %s 失败: %v\n", req.PostID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check play status"})
		return
	}

	canPlay, record, err := CheckPlayStatus(req.PostID, req.UserID)
	if err != nil {
		fmt.Printf("查询游玩状态 (%s, %s) 失败: %v\n", req.PostID, req.UserID, err)
		if config.Cfg.Gameplay.FailOpenPlayStatus {
			// 查询失败时放行，宁可多玩一次也不挡住正常玩家
			c.JSON(http.StatusOK, gin.H{"success": true, "canPlay": true})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check play status"})
		return
	}

	resp := gin.H{"success": true, "canPlay": canPlay}
	if record != nil {
		resp["playRecord"] = record
	}
	c.JSON(http.StatusOK, resp)
}

// HandleRecordPlay 处理 POST /api/record-play
func HandleRecordPlay(c *gin.Context) {
	var req PlayRecordData
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.PostID == "" || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing postId or userId"})
		return
	}

	saved, err := RecordPlay(req)
	if err != nil {
		fmt.Printf("写入游玩记录 (%s, %s) 失败: %v\n", req.PostID, req.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record play"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "playRecord": saved})
}

// HandleGetPostLeaderboard 处理 GET /api/post-leaderboard?postId=...
func HandleGetPostLeaderboard(c *gin.Context) {
	postID := c.Query("postId")
	if postID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing postId parameter"})
		return
	}

	records, err := GetPostLeaderboard(postID)
	if err != nil {
		fmt.Printf("读取帖子 %s 的排行榜失败: %v\n", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get post leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "records": records})
}
