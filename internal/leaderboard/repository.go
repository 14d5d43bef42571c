package leaderboard

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/database"
)

// repoMutex 串行化对Redis中战绩哈希表和排行榜的读改写。
// 一次得分更新跨越“读哈希、改数值、写回并更新榜单”多个步骤，
// 写锁保证这些步骤不会交错。
var repoMutex sync.RWMutex

// LockRepository 获取写锁。
func LockRepository() {
	repoMutex.Lock()
}

// UnlockRepository 释放写锁。
func UnlockRepository() {
	repoMutex.Unlock()
}

// RLockRepository 获取读锁。
func RLockRepository() {
	repoMutex.RLock()
}

// RUnlockRepository 释放读锁。
func RUnlockRepository() {
	repoMutex.RUnlock()
}

// getUserStats 从Redis哈希表读取单个用户的战绩，不存在时返回零值结构。
// 调用者需持有锁。
func getUserStats(userID string) (*UserStatsData, error) {
	raw, err := database.RDB.HGet(database.Ctx, StatsKey, userID).Result()
	if err == redis.Nil {
		return &UserStatsData{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法从Redis读取用户 %s 的战绩: %w", userID, err)
	}

	var stats UserStatsData
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil, fmt.Errorf("无法解析用户 %s 的战绩: %w", userID, err)
	}
	return &stats, nil
}

// getStatsForUsers 批量读取多个用户的战绩。
// 哈希表中缺失或解析失败的用户对应nil。调用者需持有锁。
func getStatsForUsers(userIDs []string) ([]*UserStatsData, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	fields := make([]string, len(userIDs))
	copy(fields, userIDs)

	raws, err := database.RDB.HMGet(database.Ctx, StatsKey, fields...).Result()
	if err != nil {
		return nil, fmt.Errorf("无法从Redis批量读取用户战绩: %w", err)
	}

	result := make([]*UserStatsData, len(userIDs))
	for i, raw := range raws {
		str, ok := raw.(string)
		if !ok {
			continue
		}
		var stats UserStatsData
		if err := json.Unmarshal([]byte(str), &stats); err != nil {
			fmt.Printf("警告: 解析用户 %s 的战绩失败: %v\n", userIDs[i], err)
			continue
		}
		result[i] = &stats
	}
	return result, nil
}

// saveUserStats 把更新后的战绩写回哈希表、刷新榜单得分并标记脏用户。
// 三个写操作在一个TxPipeline中原子执行。调用者需持有写锁。
func saveUserStats(stats *UserStatsData, boardType string, boardScore float64) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("无法序列化用户 %s 的战绩: %w", stats.UserID, err)
	}

	pipe := database.RDB.TxPipeline()
	pipe.HSet(database.Ctx, StatsKey, stats.UserID, payload)
	pipe.ZAdd(database.Ctx, rankingKey(boardType), redis.Z{
		Score:  boardScore,
		Member: stats.UserID,
	})
	pipe.SAdd(database.Ctx, DirtySetKey, stats.UserID)
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("无法将用户 %s 的战绩写入Redis: %w", stats.UserID, err)
	}
	return nil
}
