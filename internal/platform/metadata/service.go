package metadata

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// --- Generic Accessors ---

// GetValue retrieves a value for a given key from the metadata table.
func GetValue(db *gorm.DB, key string) (string, error) {
	var meta Metadata
	err := db.Where("key = ?", key).First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// If the key doesn't exist, return an empty string, which is a valid default.
			return "", nil
		}
		return "", err
	}
	return meta.Value, nil
}

// SetValue creates or updates a value for a given key within a transaction.
func SetValue(db *gorm.DB, key, value string) error {
	// Use GORM's OnConflict clause for an efficient and atomic "upsert" operation.
	meta := Metadata{
		Key:   key,
		Value: value,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&meta).Error
}

// --- Specific Helpers for Type Conversion ---

// GetLastSnapshotAt 读取并解析最近一次快照时间。
func GetLastSnapshotAt(db *gorm.DB) (time.Time, error) {
	valueStr, err := GetValue(db, LastSnapshotAtKey)
	if err != nil {
		return time.Time{}, err
	}
	if valueStr == "" {
		return time.Time{}, nil
	}
	sec, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("无法解析元数据 '%s' 的值: %w", LastSnapshotAtKey, err)
	}
	return time.Unix(sec, 0), nil
}

// SetLastSnapshotAt 格式化并写入最近一次快照时间。
func SetLastSnapshotAt(db *gorm.DB, t time.Time) error {
	return SetValue(db, LastSnapshotAtKey, strconv.FormatInt(t.Unix(), 10))
}
