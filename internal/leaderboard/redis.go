package leaderboard

import "fmt"

// 定义与排行榜相关的Redis键名

const (
	// StatsKey 是一个Hash，存储每个用户的完整累计战绩。
	// Key: user:stats
	// Field: UserID; Value: UserStatsData的JSON
	StatsKey = "user:stats"

	// DirtySetKey 是一个Set，记录自上次快照以来战绩有变动的用户。
	// 快照调度器据此做增量回写。
	DirtySetKey = "user:dirty"

	// ProcessingDirtySetKey 是快照进行中的脏集合暂存键。
	// 通过RENAME从DirtySetKey原子切换而来；快照失败时合并回去。
	ProcessingDirtySetKey = "user:dirty:processing"
)

// 三个排行榜各自对应一个Sorted Set。
// Score: 累计得分；Member: UserID。
const (
	TypeChaser  = "chaser"
	TypePhraser = "phraser"
	TypeSharer  = "sharer"
)

// rankingKey 返回指定榜单类型的Sorted Set键。
func rankingKey(boardType string) string {
	return fmt.Sprintf("leaderboard:%s:scores", boardType)
}

// IsValidBoardType 报告给定的榜单类型是否受支持。
func IsValidBoardType(boardType string) bool {
	switch boardType {
	case TypeChaser, TypePhraser, TypeSharer:
		return true
	}
	return false
}
