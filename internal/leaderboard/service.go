package leaderboard

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/config"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/database"
)

// ErrInvalidBoardType 表示请求了未知的榜单类型。
var ErrInvalidBoardType = errors.New("invalid leaderboard type")

// LeaderboardResult 是排行榜查询的完整返回。
// 当查询用户不在前N名之内时，UserRank单独给出其名次和得分。
type LeaderboardResult struct {
	Entries  []LeaderboardEntry `json:"entries"`
	UserRank *LeaderboardEntry  `json:"userRank,omitempty"`
}

// UpdateChaserScore 把一局Chaser的得分累加到用户的总分上。
// 得分只增不减；每次调用计为一局。
func UpdateChaserScore(userID, username string, score float64) (*UserStatsData, error) {
	return updateScore(userID, username, func(stats *UserStatsData) float64 {
		stats.ChaserScore += score
		stats.ChaserGames++
		return stats.ChaserScore
	}, TypeChaser)
}

// UpdatePhraserScore 把一局Phraser的得分累加到用户的总分上。
func UpdatePhraserScore(userID, username string, score float64) (*UserStatsData, error) {
	return updateScore(userID, username, func(stats *UserStatsData) float64 {
		stats.PhraserScore += score
		stats.PhraserGames++
		return stats.PhraserScore
	}, TypePhraser)
}

// UpdateSharerScore 把用户的分享计数加一。
func UpdateSharerScore(userID, username string) (*UserStatsData, error) {
	return updateScore(userID, username, func(stats *UserStatsData) float64 {
		stats.PostsShared++
		return float64(stats.PostsShared)
	}, TypeSharer)
}

// updateScore 执行一次完整的读改写：
// 读出当前战绩，应用apply得到新的榜单分数，写回哈希表和对应榜单。
// 用户名以最近一次上报为准。
func updateScore(userID, username string, apply func(*UserStatsData) float64, boardType string) (*UserStatsData, error) {
	if userID == "" {
		return nil, errors.New("missing userId")
	}

	LockRepository()
	defer UnlockRepository()

	stats, err := getUserStats(userID)
	if err != nil {
		return nil, err
	}
	if username != "" {
		stats.Username = username
	}

	boardScore := apply(stats)

	if err := saveUserStats(stats, boardType, boardScore); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetLeaderboard 返回指定榜单的前N名。
// userID非空且该用户不在前N名时，额外返回其名次。
func GetLeaderboard(boardType, userID string) (*LeaderboardResult, error) {
	if !IsValidBoardType(boardType) {
		return nil, ErrInvalidBoardType
	}

	RLockRepository()
	defer RUnlockRepository()

	size := int64(config.Cfg.Gameplay.LeaderboardSize)
	top, err := database.RDB.ZRevRangeWithScores(database.Ctx, rankingKey(boardType), 0, size-1).Result()
	if err != nil {
		return nil, fmt.Errorf("无法从Redis读取 %s 榜单: %w", boardType, err)
	}

	userIDs := make([]string, len(top))
	for i, z := range top {
		userIDs[i], _ = z.Member.(string)
	}

	statsList, err := getStatsForUsers(userIDs)
	if err != nil {
		return nil, err
	}

	result := &LeaderboardResult{Entries: make([]LeaderboardEntry, 0, len(top))}
	userInTop := false
	for i, z := range top {
		entry := LeaderboardEntry{
			Rank:   i + 1,
			UserID: userIDs[i],
			Score:  z.Score,
		}
		if statsList[i] != nil {
			entry.Username = statsList[i].Username
		}
		if userID != "" && entry.UserID == userID {
			userInTop = true
		}
		result.Entries = append(result.Entries, entry)
	}

	if userID != "" && !userInTop {
		rank, err := database.RDB.ZRevRank(database.Ctx, rankingKey(boardType), userID).Result()
		if err == nil {
			score, scoreErr := database.RDB.ZScore(database.Ctx, rankingKey(boardType), userID).Result()
			if scoreErr != nil {
				return nil, fmt.Errorf("无法读取用户 %s 在 %s 榜单上的得分: %w", userID, boardType, scoreErr)
			}
			stats, statsErr := getUserStats(userID)
			if statsErr != nil {
				return nil, statsErr
			}
			result.UserRank = &LeaderboardEntry{
				Rank:     int(rank) + 1,
				UserID:   userID,
				Username: stats.Username,
				Score:    score,
			}
		} else if err != redis.Nil {
			return nil, fmt.Errorf("无法读取用户 %s 在 %s 榜单上的名次: %w", userID, boardType, err)
		}
		// redis.Nil: 用户从未上过该榜单，不返回名次
	}

	return result, nil
}

// GetUserStats 返回单个用户的完整累计战绩。
func GetUserStats(userID string) (*UserStatsData, error) {
	if userID == "" {
		return nil, errors.New("missing userId")
	}

	RLockRepository()
	defer RUnlockRepository()

	return getUserStats(userID)
}

// ClearLeaderboards 清空全部榜单和战绩，Redis和SQLite同时清理。
// 管理操作，仅供维护使用。
func ClearLeaderboards() error {
	LockRepository()
	defer UnlockRepository()

	tx := database.DB.Begin()
	if tx.Error != nil {
		return fmt.Errorf("无法开始数据库事务: %w", tx.Error)
	}

	if err := tx.Where("1 = 1").Delete(&UserStats{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("无法清空SQLite中的战绩表: %w", err)
	}

	keys := []string{
		StatsKey,
		DirtySetKey,
		ProcessingDirtySetKey,
		rankingKey(TypeChaser),
		rankingKey(TypePhraser),
		rankingKey(TypeSharer),
	}
	if err := database.RDB.Del(database.Ctx, keys...).Err(); err != nil {
		tx.Rollback()
		return fmt.Errorf("无法清空Redis中的榜单数据: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("提交榜单清空失败: %w", err)
	}

	fmt.Println("排行榜与用户战绩已全部清空。")
	return nil
}
