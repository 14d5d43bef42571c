package dictionary

import (
	"fmt"

	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/database"
	"github.com/shiva-profnl/chase-n-phrase-game/pkg/trie"
)

// migrateDB 负责自动迁移数据库表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&CustomWord{}); err != nil {
		return fmt.Errorf("无法迁移custom_word表: %w", err)
	}
	fmt.Println("CustomWord数据库表迁移成功。")
	return nil
}

// WarmupCache 从SQLite加载全部自定义单词，重建前缀树快照并写入Redis。
// 调用方需要持有模块写锁。
func WarmupCache() error {
	var words []CustomWord
	if err := database.DB.Order("word asc").Find(&words).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取自定义单词: %w", err)
	}

	t := trie.New()
	for _, w := range words {
		t.Insert(w.Word)
	}

	if err := saveTrie(t); err != nil {
		return fmt.Errorf("预热自定义词典到Redis失败: %w", err)
	}

	fmt.Printf("成功预热 %d 个自定义单词到Redis。\n", t.Len())
	return nil
}

// PrimeCachedDB 是dictionary模块的初始化总入口
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}

	LockRepository()
	defer UnlockRepository()
	return WarmupCache()
}
