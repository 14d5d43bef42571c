package play

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/database"
	"gorm.io/gorm/clause"
)

// ErrNoUnplayedPosts 表示该用户已经玩过全部已知的共享帖子。
var ErrNoUnplayedPosts = errors.New("no unplayed posts available")

// ErrPostNotFound 表示请求的帖子不存在或已过期。
var ErrPostNotFound = errors.New("post not found")

// CreateGamePost 根据创建者的Chaser战果生成一个新的共享Phraser帖子。
// 帖子数据一经创建不可变。写入顺序：先SQLite事务，后Redis；
// Redis失败时回滚SQLite，保证事实来源一致。
func CreateGamePost(data PostGameData) (*PostGameData, error) {
	if len(data.Letters) == 0 {
		return nil, errors.New("invalid letters data")
	}
	if data.ChaserScore < 0 {
		return nil, errors.New("invalid chaser score")
	}
	if data.ChaserDuration < 0 {
		return nil, errors.New("invalid chaser duration")
	}
	if data.CreatedBy == "" {
		return nil, errors.New("missing creator id")
	}

	postUUID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成帖子ID: %w", err)
	}

	data.PostID = postUUID.String()
	data.GameType = "phraser"
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}

	lettersJSON, err := json.Marshal(data.Letters)
	if err != nil {
		return nil, fmt.Errorf("无法序列化字母集: %w", err)
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("无法开始数据库事务: %w", tx.Error)
	}

	post := GamePost{
		PostID:         data.PostID,
		Letters:        string(lettersJSON),
		ChaserScore:    data.ChaserScore,
		ChaserDuration: data.ChaserDuration,
		CreatedBy:      data.CreatedBy,
		GameType:       data.GameType,
		CreatedAt:      time.Unix(data.CreatedAt, 0),
	}
	if err := tx.Create(&post).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("无法在SQLite中创建帖子记录: %w", err)
	}

	if err := storePostDataInRedis(&data, recordTTL()); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("提交帖子记录失败: %w", err)
	}

	return &data, nil
}

// GetPostData 读取共享帖子的数据；帖子不存在时返回ErrPostNotFound。
func GetPostData(postID string) (*PostGameData, error) {
	data, err := getPostDataFromRedis(postID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrPostNotFound
	}
	return data, nil
}

// CheckPlayStatus 查询一个用户对某个帖子的游玩状态。
// 只要存在游玩记录（无论是开局写入的0分记录还是终局记录），
// canPlay即为false：开局即消耗唯一一次机会，中途断线不会获得第二次。
func CheckPlayStatus(postID, userID string) (bool, *PlayRecordData, error) {
	record, err := getPlayRecordFromRedis(postID, userID)
	if err != nil {
		return false, nil, err
	}
	return record == nil, record, nil
}

// RecordPlay 以(PostID, UserID)为键幂等地写入游玩记录。
// 重复调用直接覆盖旧值，永远不会返回冲突错误：
// 开局时客户端写入0分记录，终局时用最终得分和单词列表覆盖它。
func RecordPlay(record PlayRecordData) (*PlayRecordData, error) {
	if record.PlayedAt == 0 {
		record.PlayedAt = time.Now().UnixMilli()
	}
	if record.WordsFormed == nil {
		record.WordsFormed = []string{}
	}

	wordsJSON, err := json.Marshal(record.WordsFormed)
	if err != nil {
		return nil, fmt.Errorf("无法序列化单词列表: %w", err)
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("无法开始数据库事务: %w", tx.Error)
	}

	row := PlayRecord{
		PostID:       record.PostID,
		UserID:       record.UserID,
		PlayedAt:     record.PlayedAt,
		PhraserScore: record.PhraserScore,
		Words:        string(wordsJSON),
	}
	// UPSERT：同一(PostID, UserID)的旧记录被新值整体覆盖
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"played_at", "phraser_score", "words", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("无法在SQLite中写入游玩记录: %w", err)
	}

	if err := storePlayRecordInRedis(&record, recordTTL()); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("提交游玩记录失败: %w", err)
	}

	return &record, nil
}

// FindNextUnplayedPost 按创建时间从旧到新扫描全部帖子，
// 返回第一个该用户尚未玩过的帖子ID。
func FindNextUnplayedPost(userID string) (string, error) {
	postIDs, err := getAllPostIDs()
	if err != nil {
		return "", err
	}

	for _, postID := range postIDs {
		record, err := getPlayRecordFromRedis(postID, userID)
		if err != nil {
			return "", err
		}
		if record == nil {
			return postID, nil
		}
	}
	return "", ErrNoUnplayedPosts
}

// GetPostLeaderboard 返回某个帖子全部玩家的游玩记录，按得分从高到低排列。
func GetPostLeaderboard(postID string) ([]PlayRecordData, error) {
	players, err := getPostPlayersFromRedis(postID)
	if err != nil {
		return nil, err
	}

	records := make([]PlayRecordData, 0, len(players))
	for _, userID := range players {
		record, err := getPlayRecordFromRedis(postID, userID)
		if err != nil {
			return nil, err
		}
		if record != nil {
			records = append(records, *record)
		}
	}

	// 按得分降序；得分相同的按游玩时间从早到晚
	for i := 1; i < len(records); i++ {
		for j := i; j > 0; j-- {
			a, b := records[j-1], records[j]
			if b.PhraserScore > a.PhraserScore ||
				(b.PhraserScore == a.PhraserScore && b.PlayedAt < a.PlayedAt) {
				records[j-1], records[j] = b, a
			} else {
				break
			}
		}
	}
	return records, nil
}
