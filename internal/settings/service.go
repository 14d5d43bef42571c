package settings

import (
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/config"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/database"
)

// AudioSettings 是用户音频偏好的存储结构。
// 纯偏好数据，只存Redis，过期后回落到默认值即可。
type AudioSettings struct {
	SoundEffectsEnabled bool `json:"soundEffectsEnabled"`
}

// audioSettingsKey 返回存储用户音频偏好的键。
func audioSettingsKey(userID string) string {
	return "chase-phrase:audio-settings:" + userID
}

// GetAudioSettings 读取用户的音频偏好，不存在时返回默认值（音效开启）。
func GetAudioSettings(userID string) (*AudioSettings, error) {
	raw, err := database.RDB.Get(database.Ctx, audioSettingsKey(userID)).Result()
	if err == redis.Nil {
		return &AudioSettings{SoundEffectsEnabled: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法从Redis读取用户 %s 的音频设置: %w", userID, err)
	}

	var settings AudioSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return nil, fmt.Errorf("无法解析用户 %s 的音频设置: %w", userID, err)
	}
	return &settings, nil
}

// SaveAudioSettings 写入用户的音频偏好，随记录保留期一同过期。
func SaveAudioSettings(userID string, settings *AudioSettings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("无法序列化音频设置: %w", err)
	}

	ttl := config.Cfg.Gameplay.RecordTTL()
	if err := database.RDB.Set(database.Ctx, audioSettingsKey(userID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("无法将用户 %s 的音频设置写入Redis: %w", userID, err)
	}
	return nil
}
