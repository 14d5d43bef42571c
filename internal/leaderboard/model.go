package leaderboard

import "time"

// UserStats 定义了用户累计战绩在SQLite中的持久化模型。
// 它由快照调度器定期从Redis回写，是排行榜数据的事实来源。
type UserStats struct {
	// UserID 是用户的唯一标识
	UserID string `gorm:"primarykey;type:varchar(64)"`

	// Username 是展示用的用户名，随每次得分更新刷新
	Username string

	// ChaserScore 是Chaser玩法的累计得分
	ChaserScore float64

	// ChaserGames 是Chaser玩法的累计局数
	ChaserGames int

	// PhraserScore 是Phraser玩法的累计得分
	PhraserScore float64

	// PhraserGames 是Phraser玩法的累计局数
	PhraserGames int

	// PostsShared 是该用户分享的帖子总数
	PostsShared int

	UpdatedAt time.Time
}

// UserStatsData 是用户战绩在Redis哈希表和API中流转的JSON结构。
type UserStatsData struct {
	UserID       string  `json:"userId"`
	Username     string  `json:"username"`
	ChaserScore  float64 `json:"chaserScore"`
	ChaserGames  int     `json:"chaserGames"`
	PhraserScore float64 `json:"phraserScore"`
	PhraserGames int     `json:"phraserGames"`
	PostsShared  int     `json:"postsShared"`
}

// LeaderboardEntry 是排行榜API返回的单行数据。
type LeaderboardEntry struct {
	Rank     int     `json:"rank"`
	UserID   string  `json:"userId"`
	Username string  `json:"username"`
	Score    float64 `json:"score"`
}
