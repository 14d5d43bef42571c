package play

import "time"

// GamePost 定义了共享帖子在SQLite中的持久化模型。
// 它是帖子数据的事实来源，Redis中的副本由它重建。
type GamePost struct {
	// PostID 是帖子的唯一标识，来自平台或本地生成的UUID。
	PostID string `gorm:"primarykey;type:varchar(36)"`

	// Letters 是创建者在Chaser玩法中收集到的字母集，JSON编码。
	Letters string

	// ChaserScore 是创建者分享时的Chaser得分。
	ChaserScore int

	// ChaserDuration 是创建者那局Chaser的持续时间（毫秒）。
	ChaserDuration int

	// CreatedBy 是创建者的用户ID。
	CreatedBy string `gorm:"index"`

	// GameType 是该帖子承载的玩法类型，共享帖子固定为 "phraser"。
	GameType string

	CreatedAt time.Time
}

// PlayRecord 定义了游玩记录在SQLite中的持久化模型。
// 每个(PostID, UserID)对至多一条记录；记录存在即代表该用户的
// 唯一一次游玩机会已被消耗。
type PlayRecord struct {
	PostID string `gorm:"primaryKey;type:varchar(36)"`
	UserID string `gorm:"primaryKey;type:varchar(64)"`

	// PlayedAt 是游玩发生的Unix毫秒时间戳。
	PlayedAt int64

	// PhraserScore 是最终得分；开局时写入的初始记录为0。
	PhraserScore int

	// Words 是本局拼出的单词列表，JSON编码，保持拼出顺序。
	Words string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// --- Redis / API 数据结构 ---

// PostGameData 是共享帖子在Redis和API中流转的JSON结构。
// 创建后不可变，被该帖子的每个玩家读取。
type PostGameData struct {
	Letters        []string `json:"letters"`
	ChaserScore    int      `json:"chaserScore"`
	ChaserDuration int      `json:"chaserDuration"`
	CreatedBy      string   `json:"createdBy"`
	CreatedAt      int64    `json:"createdAt"`
	PostID         string   `json:"postId,omitempty"`
	GameType       string   `json:"gameType,omitempty"`
}

// PlayRecordData 是游玩记录在Redis和API中流转的JSON结构。
type PlayRecordData struct {
	UserID       string   `json:"userId"`
	PostID       string   `json:"postId"`
	PlayedAt     int64    `json:"playedAt"`
	PhraserScore int      `json:"phraserScore"`
	WordsFormed  []string `json:"wordsFormed"`
}
