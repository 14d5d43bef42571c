package dictionary

import "time"

// CustomWord 定义了自定义词典单词在SQLite中的持久化模型。
// SQLite中的行是词典的事实来源，Redis中的前缀树快照由它重建。
type CustomWord struct {
	// Word 是规范化（小写、去空白）后的单词，作为主键。
	Word string `gorm:"primarykey;type:varchar(64)"`

	CreatedAt time.Time
}
