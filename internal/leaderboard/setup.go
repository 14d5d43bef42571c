package leaderboard

import (
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/database"
)

// migrateDB 确保用户战绩表结构存在。
func migrateDB() error {
	if err := database.DB.AutoMigrate(&UserStats{}); err != nil {
		return fmt.Errorf("无法迁移用户战绩表: %w", err)
	}
	return nil
}

// WarmupCache 从SQLite重建Redis中的战绩哈希表和三个榜单。
// 旧缓存先被整体清除，保证重建结果与SQLite完全一致。
// 调用者需持有写锁。
func WarmupCache() error {
	var rows []UserStats
	if err := database.DB.Find(&rows).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取用户战绩: %w", err)
	}

	pipe := database.RDB.Pipeline()
	pipe.Del(database.Ctx, StatsKey, DirtySetKey, ProcessingDirtySetKey,
		rankingKey(TypeChaser), rankingKey(TypePhraser), rankingKey(TypeSharer))

	for i := range rows {
		row := &rows[i]
		stats := UserStatsData{
			UserID:       row.UserID,
			Username:     row.Username,
			ChaserScore:  row.ChaserScore,
			ChaserGames:  row.ChaserGames,
			PhraserScore: row.PhraserScore,
			PhraserGames: row.PhraserGames,
			PostsShared:  row.PostsShared,
		}
		payload, err := json.Marshal(&stats)
		if err != nil {
			return fmt.Errorf("无法序列化用户 %s 的战绩: %w", row.UserID, err)
		}
		pipe.HSet(database.Ctx, StatsKey, row.UserID, payload)
		pipe.ZAdd(database.Ctx, rankingKey(TypeChaser), redis.Z{Score: row.ChaserScore, Member: row.UserID})
		pipe.ZAdd(database.Ctx, rankingKey(TypePhraser), redis.Z{Score: row.PhraserScore, Member: row.UserID})
		pipe.ZAdd(database.Ctx, rankingKey(TypeSharer), redis.Z{Score: float64(row.PostsShared), Member: row.UserID})
	}

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热排行榜缓存失败: %w", err)
	}

	fmt.Printf("排行榜缓存预热完成，恢复了 %d 个用户的战绩。\n", len(rows))
	return nil
}

// PrimeCachedDB 迁移表结构并预热Redis缓存。
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}

	LockRepository()
	defer UnlockRepository()
	if err := WarmupCache(); err != nil {
		return fmt.Errorf("无法预热排行榜缓存: %w", err)
	}
	return nil
}
