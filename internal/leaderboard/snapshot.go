package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/config"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/database"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/metadata"
	"github.com/shiva-profnl/chase-n-phrase-game/pkg/lifecycle"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StartSnapshotScheduler 启动一个后台Goroutine，定期把Redis中的
// 战绩增量回写到SQLite。它接收一个lifecycle.Handle来管理生命周期。
func StartSnapshotScheduler(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("排行榜快照调度器已启动。")

	for {
		// 可中断的休眠，停机信号能立刻唤醒并退出循环
		if err := handle.Sleep(config.Cfg.Gameplay.SnapshotInterval()); err != nil {
			fmt.Printf("快照调度器: 休眠被中断，正在关闭... (%v)\n", err)
			return
		}

		if !database.IsRedisHealthy() {
			fmt.Println("快照调度器: 检测到Redis不可用，跳过本次快照。")
			continue
		}

		if err := snapshotDirtyUsers(handle.Ctx()); err != nil {
			if err != context.Canceled && err != context.DeadlineExceeded {
				fmt.Printf("快照调度器错误: 增量快照失败: %v\n", err)
			}
		}
	}
}

// snapshotDirtyUsers 把脏集合中的用户战绩回写到SQLite。
// 脏集合先被RENAME到暂存键，成功后删除暂存键；
// 失败则把暂存键合并回脏集合，等待下一轮重试。
func snapshotDirtyUsers(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	err := database.RDB.Rename(database.Ctx, DirtySetKey, ProcessingDirtySetKey).Err()
	if err != nil {
		if err == redis.Nil || strings.Contains(err.Error(), "no such key") {
			// 没有脏用户，无事可做
			return nil
		}
		return fmt.Errorf("无法切换脏用户集合: %w", err)
	}

	userIDs, err := database.RDB.SMembers(database.Ctx, ProcessingDirtySetKey).Result()
	if err != nil {
		requeueDirtyUsers()
		return fmt.Errorf("无法读取待快照的用户集合: %w", err)
	}
	if len(userIDs) == 0 {
		database.RDB.Del(database.Ctx, ProcessingDirtySetKey)
		return nil
	}

	if err := persistUserStats(ctx, userIDs); err != nil {
		requeueDirtyUsers()
		return err
	}

	if err := database.RDB.Del(database.Ctx, ProcessingDirtySetKey).Err(); err != nil {
		return fmt.Errorf("无法清理已处理的脏用户集合: %w", err)
	}

	fmt.Printf("快照调度器: 已回写 %d 个用户的战绩。\n", len(userIDs))
	return nil
}

// requeueDirtyUsers 在快照失败后把暂存的用户合并回脏集合。
func requeueDirtyUsers() {
	err := database.RDB.SUnionStore(database.Ctx, DirtySetKey, DirtySetKey, ProcessingDirtySetKey).Err()
	if err != nil {
		fmt.Printf("快照调度器警告: 无法把用户合并回脏集合: %v\n", err)
		return
	}
	database.RDB.Del(database.Ctx, ProcessingDirtySetKey)
}

// persistUserStats 把指定用户的战绩从Redis读出并UPSERT到SQLite。
func persistUserStats(ctx context.Context, userIDs []string) error {
	RLockRepository()
	statsList, err := getStatsForUsers(userIDs)
	RUnlockRepository()
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	rows := make([]UserStats, 0, len(statsList))
	for i, stats := range statsList {
		if stats == nil {
			fmt.Printf("快照警告: 在战绩哈希表中找不到用户 %s，跳过。\n", userIDs[i])
			continue
		}
		rows = append(rows, UserStats{
			UserID:       stats.UserID,
			Username:     stats.Username,
			ChaserScore:  stats.ChaserScore,
			ChaserGames:  stats.ChaserGames,
			PhraserScore: stats.PhraserScore,
			PhraserGames: stats.PhraserGames,
			PostsShared:  stats.PostsShared,
		})
	}
	if len(rows) == 0 {
		return nil
	}

	writeRows := func() error {
		return database.DB.Transaction(func(tx *gorm.DB) error {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"username", "chaser_score", "chaser_games", "phraser_score", "phraser_games", "posts_shared", "updated_at"}),
			}).Create(&rows).Error
			if err != nil {
				return fmt.Errorf("无法把用户战绩写入SQLite: %w", err)
			}
			if err := metadata.SetLastSnapshotAt(tx, time.Now()); err != nil {
				return fmt.Errorf("更新快照时间戳失败: %w", err)
			}
			return nil
		})
	}

	err = writeRows()
	if err != nil && database.IsRetryableError(err) {
		// SQLite busy/locked，短暂等待后重试一次
		time.Sleep(100 * time.Millisecond)
		err = writeRows()
	}
	return err
}

// CreateConsistentSnapshotInDB 执行一次全量快照，回写哈希表中的全部用户。
// 供停机流程在退出前调用，保证SQLite不落后于Redis。
func CreateConsistentSnapshotInDB(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	RLockRepository()
	statsMap, err := database.RDB.HGetAll(database.Ctx, StatsKey).Result()
	RUnlockRepository()
	if err != nil {
		return fmt.Errorf("无法从Redis读取全量战绩: %w", err)
	}
	if len(statsMap) == 0 {
		return nil
	}

	rows := make([]UserStats, 0, len(statsMap))
	for userID, raw := range statsMap {
		var stats UserStatsData
		if err := json.Unmarshal([]byte(raw), &stats); err != nil {
			fmt.Printf("快照警告: 解析用户 %s 的战绩失败，跳过: %v\n", userID, err)
			continue
		}
		rows = append(rows, UserStats{
			UserID:       stats.UserID,
			Username:     stats.Username,
			ChaserScore:  stats.ChaserScore,
			ChaserGames:  stats.ChaserGames,
			PhraserScore: stats.PhraserScore,
			PhraserGames: stats.PhraserGames,
			PostsShared:  stats.PostsShared,
		})
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "chaser_score", "chaser_games", "phraser_score", "phraser_games", "posts_shared", "updated_at"}),
		}).Create(&rows).Error
		if err != nil {
			return fmt.Errorf("无法把全量战绩写入SQLite: %w", err)
		}
		return metadata.SetLastSnapshotAt(tx, time.Now())
	})
	if err != nil {
		return err
	}

	// 全量快照覆盖了所有用户，脏集合可以一并清空
	database.RDB.Del(database.Ctx, DirtySetKey, ProcessingDirtySetKey)
	return nil
}
