package api

import (
	"github.com/gin-gonic/gin"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/dictionary"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/leaderboard"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/play"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/settings"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/wordcheck"
)

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// 客户端初始化与单词校验
		api.GET("/init", play.HandleInit)
		api.POST("/validate-word", wordcheck.HandleValidateWord)

		// 共享帖子与游玩记录
		api.POST("/create-game-post", play.HandleCreateGamePost)
		api.GET("/post-data", play.HandleGetPostData)
		api.GET("/post-leaderboard", play.HandleGetPostLeaderboard)
		api.POST("/check-play-status", play.HandleCheckPlayStatus)
		api.POST("/record-play", play.HandleRecordPlay)

		// 全局排行榜与用户战绩
		api.GET("/leaderboard", leaderboard.HandleGetLeaderboard)
		api.GET("/user-stats", leaderboard.HandleGetUserStats)
		api.POST("/update-chaser-score", leaderboard.HandleUpdateChaserScore)
		api.POST("/update-phraser-score", leaderboard.HandleUpdatePhraserScore)
		api.POST("/update-sharer-score", leaderboard.HandleUpdateSharerScore)
		api.POST("/leaderboard/clear", leaderboard.HandleClearLeaderboards)

		// 用户偏好
		api.GET("/audio-settings", settings.HandleGetAudioSettings)
		api.POST("/audio-settings", settings.HandleSaveAudioSettings)

		// 自定义词典管理（版主操作）
		dict := api.Group("/dictionary")
		{
			dict.POST("/add-word", dictionary.HandleAddWord)
			dict.POST("/add-words", dictionary.HandleAddWords)
			dict.POST("/remove-word", dictionary.HandleRemoveWord)
			dict.GET("/words", dictionary.HandleListWords)
			dict.GET("/count", dictionary.HandleWordCount)
			dict.POST("/clear", dictionary.HandleClearDictionary)
		}
	}
}
