package startup

import (
	"context"
	"fmt"
	"time"

	"github.com/shiva-profnl/chase-n-phrase-game/internal/dictionary"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/leaderboard"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/database"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/metadata"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/play"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/wordcheck"
)

// InitializeApplication 是应用首次启动时执行的总入口
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	wordcheck.InitOracle()

	if err := metadata.PrimeDB(); err != nil {
		return err
	}
	if lastSnapshotAt, err := metadata.GetLastSnapshotAt(database.DB); err == nil && !lastSnapshotAt.IsZero() {
		fmt.Printf("上一次排行榜快照完成于 %s。\n", lastSnapshotAt.Format(time.RFC3339))
	}
	if err := dictionary.PrimeCachedDB(); err != nil {
		return err
	}
	if err := play.PrimeCachedDB(); err != nil {
		return err
	}
	if err := leaderboard.PrimeCachedDB(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 是一个专门用于在运行时热重建Redis缓存的函数
func RebuildCache() error {
	fmt.Println("开始缓存热重建...")

	err := func() error {
		dictionary.LockRepository()
		defer dictionary.UnlockRepository()
		if err := dictionary.WarmupCache(); err != nil {
			return err
		}

		if err := play.WarmupCache(); err != nil {
			return err
		}

		leaderboard.LockRepository()
		defer leaderboard.UnlockRepository()
		return leaderboard.WarmupCache()
	}()
	if err != nil {
		return err
	}

	// 重建后触发一次新的快照，让SQLite的检查点与缓存对齐
	fmt.Println("缓存热重建完成，正在触发一次新的数据快照...")
	if err := leaderboard.CreateConsistentSnapshotInDB(context.Background()); err != nil {
		fmt.Printf("警告: 缓存热重建后的快照创建失败: %v\n", err)
	} else {
		fmt.Println("快照创建成功！")
	}

	return nil
}
