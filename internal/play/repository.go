package play

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/config"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/database"
)

// 本仓库管理Redis中的帖子数据、游玩记录和玩家集合。
// 帖子与游玩记录的键都带有30天TTL（可配置）；帖子索引不过期。

// storePostDataInRedis 将帖子数据写入Redis并登记到帖子索引。
func storePostDataInRedis(data *PostGameData, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("无法序列化帖子数据: %w", err)
	}

	pipe := database.RDB.TxPipeline()
	pipe.Set(database.Ctx, postDataKey(data.PostID), payload, ttl)
	pipe.ZAdd(database.Ctx, PostsIndexKey, redis.Z{
		Score:  float64(data.CreatedAt),
		Member: data.PostID,
	})
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("无法将帖子数据写入Redis: %w", err)
	}
	return nil
}

// getPostDataFromRedis 读取帖子数据，键不存在时返回nil。
func getPostDataFromRedis(postID string) (*PostGameData, error) {
	raw, err := database.RDB.Get(database.Ctx, postDataKey(postID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法从Redis读取帖子 %s 的数据: %w", postID, err)
	}

	var data PostGameData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("无法解析帖子 %s 的数据: %w", postID, err)
	}
	return &data, nil
}

// getPlayRecordFromRedis 读取单个用户的游玩记录，不存在时返回nil。
func getPlayRecordFromRedis(postID, userID string) (*PlayRecordData, error) {
	raw, err := database.RDB.Get(database.Ctx, playRecordKey(postID, userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法从Redis读取游玩记录 (%s, %s): %w", postID, userID, err)
	}

	var record PlayRecordData
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, fmt.Errorf("无法解析游玩记录 (%s, %s): %w", postID, userID, err)
	}
	return &record, nil
}

// storePlayRecordInRedis 写入游玩记录并把用户登记到该帖子的玩家集合。
// 同键重复写入直接覆盖旧值（last-write-wins），这是约定的幂等语义。
func storePlayRecordInRedis(record *PlayRecordData, ttl time.Duration) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("无法序列化游玩记录: %w", err)
	}

	pipe := database.RDB.TxPipeline()
	pipe.Set(database.Ctx, playRecordKey(record.PostID, record.UserID), payload, ttl)
	pipe.SAdd(database.Ctx, postPlayersKey(record.PostID), record.UserID)
	pipe.Expire(database.Ctx, postPlayersKey(record.PostID), ttl)
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("无法将游玩记录写入Redis: %w", err)
	}
	return nil
}

// getPostPlayersFromRedis 返回某帖子的全部玩家ID。
func getPostPlayersFromRedis(postID string) ([]string, error) {
	players, err := database.RDB.SMembers(database.Ctx, postPlayersKey(postID)).Result()
	if err != nil {
		return nil, fmt.Errorf("无法从Redis读取帖子 %s 的玩家集合: %w", postID, err)
	}
	return players, nil
}

// getAllPostIDs 按创建时间从旧到新返回全部帖子ID。
// 这是一个O(帖子数)的全量扫描，只在小规模数据下可接受。
func getAllPostIDs() ([]string, error) {
	ids, err := database.RDB.ZRange(database.Ctx, PostsIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("无法从Redis读取帖子索引: %w", err)
	}
	return ids, nil
}

// recordTTL 返回配置的记录保留时长。
func recordTTL() time.Duration {
	return config.Cfg.Gameplay.RecordTTL()
}
