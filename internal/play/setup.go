package play

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/database"
)

// migrateDB 确保帖子和游玩记录的表结构存在。
func migrateDB() error {
	if err := database.DB.AutoMigrate(&GamePost{}, &PlayRecord{}); err != nil {
		return fmt.Errorf("无法迁移游玩数据表: %w", err)
	}
	return nil
}

// WarmupCache 从SQLite重建Redis中的帖子数据和游玩记录。
// 已经超出保留期的记录不再写回，按剩余寿命设置TTL。
func WarmupCache() error {
	now := time.Now()
	ttl := recordTTL()

	var posts []GamePost
	if err := database.DB.Find(&posts).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取帖子记录: %w", err)
	}

	restoredPosts := 0
	for i := range posts {
		post := &posts[i]
		remaining := ttl - now.Sub(post.CreatedAt)
		if remaining <= 0 {
			continue
		}

		var letters []string
		if err := json.Unmarshal([]byte(post.Letters), &letters); err != nil {
			fmt.Printf("警告：帖子 %s 的字母集无法解析，已跳过: %v\n", post.PostID, err)
			continue
		}

		data := PostGameData{
			Letters:        letters,
			ChaserScore:    post.ChaserScore,
			ChaserDuration: post.ChaserDuration,
			CreatedBy:      post.CreatedBy,
			CreatedAt:      post.CreatedAt.Unix(),
			PostID:         post.PostID,
			GameType:       post.GameType,
		}
		if err := storePostDataInRedis(&data, remaining); err != nil {
			return err
		}
		restoredPosts++
	}

	var records []PlayRecord
	if err := database.DB.Find(&records).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取游玩记录: %w", err)
	}

	restoredRecords := 0
	for i := range records {
		rec := &records[i]
		remaining := ttl - now.Sub(rec.UpdatedAt)
		if remaining <= 0 {
			continue
		}

		var words []string
		if err := json.Unmarshal([]byte(rec.Words), &words); err != nil {
			words = []string{}
		}

		data := PlayRecordData{
			UserID:       rec.UserID,
			PostID:       rec.PostID,
			PlayedAt:     rec.PlayedAt,
			PhraserScore: rec.PhraserScore,
			WordsFormed:  words,
		}
		if err := storePlayRecordInRedis(&data, remaining); err != nil {
			return err
		}
		restoredRecords++
	}

	fmt.Printf("游玩缓存预热完成：恢复了 %d 个帖子、%d 条游玩记录。\n", restoredPosts, restoredRecords)
	return nil
}

// PrimeCachedDB 迁移表结构并预热Redis缓存。
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := WarmupCache(); err != nil {
		return fmt.Errorf("无法预热游玩缓存: %w", err)
	}
	return nil
}
