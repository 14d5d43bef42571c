package play

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/config"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestEnv(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	database.RDB = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	database.DB = db
	require.NoError(t, migrateDB())

	config.Cfg = &config.Config{
		Gameplay: config.GameplayConfig{
			FailOpenPlayStatus: true,
			RecordTTLDays:      30,
			LeaderboardSize:    10,
		},
	}
	return mr
}

func newTestPost(createdBy string, createdAt int64) PostGameData {
	return PostGameData{
		Letters:        []string{"c", "a", "t", "s"},
		ChaserScore:    42,
		ChaserDuration: 60000,
		CreatedBy:      createdBy,
		CreatedAt:      createdAt,
	}
}

func TestCreateGamePost(t *testing.T) {
	setupTestEnv(t)

	created, err := CreateGamePost(newTestPost("user-1", 0))
	require.NoError(t, err)
	assert.NotEmpty(t, created.PostID)
	assert.Equal(t, "phraser", created.GameType)
	assert.NotZero(t, created.CreatedAt)

	t.Run("readable through GetPostData", func(t *testing.T) {
		data, err := GetPostData(created.PostID)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "t", "s"}, data.Letters)
		assert.Equal(t, 42, data.ChaserScore)
		assert.Equal(t, "user-1", data.CreatedBy)
	})

	t.Run("persisted in SQLite", func(t *testing.T) {
		var row GamePost
		require.NoError(t, database.DB.Where("post_id = ?", created.PostID).First(&row).Error)
		assert.Equal(t, "user-1", row.CreatedBy)
	})

	t.Run("rejects empty letters", func(t *testing.T) {
		bad := newTestPost("user-1", 0)
		bad.Letters = nil
		_, err := CreateGamePost(bad)
		assert.Error(t, err)
	})

	t.Run("rejects missing creator", func(t *testing.T) {
		bad := newTestPost("", 0)
		_, err := CreateGamePost(bad)
		assert.Error(t, err)
	})
}

func TestGetPostDataNotFound(t *testing.T) {
	setupTestEnv(t)

	_, err := GetPostData("missing-post")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPlayOnce(t *testing.T) {
	setupTestEnv(t)

	created, err := CreateGamePost(newTestPost("creator", 0))
	require.NoError(t, err)

	t.Run("unplayed post can be played", func(t *testing.T) {
		canPlay, record, err := CheckPlayStatus(created.PostID, "player-1")
		require.NoError(t, err)
		assert.True(t, canPlay)
		assert.Nil(t, record)
	})

	t.Run("a zero-score record already consumes the attempt", func(t *testing.T) {
		_, err := RecordPlay(PlayRecordData{
			PostID: created.PostID,
			UserID: "player-1",
		})
		require.NoError(t, err)

		canPlay, record, err := CheckPlayStatus(created.PostID, "player-1")
		require.NoError(t, err)
		assert.False(t, canPlay)
		require.NotNil(t, record)
		assert.Equal(t, 0, record.PhraserScore)
	})

	t.Run("final score overwrites the initial record", func(t *testing.T) {
		_, err := RecordPlay(PlayRecordData{
			PostID:       created.PostID,
			UserID:       "player-1",
			PhraserScore: 17,
			WordsFormed:  []string{"cat", "cats"},
		})
		require.NoError(t, err)

		_, record, err := CheckPlayStatus(created.PostID, "player-1")
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, 17, record.PhraserScore)
		assert.Equal(t, []string{"cat", "cats"}, record.WordsFormed)

		var rows []PlayRecord
		require.NoError(t, database.DB.Where("post_id = ?", created.PostID).Find(&rows).Error)
		assert.Len(t, rows, 1)
	})

	t.Run("other players are unaffected", func(t *testing.T) {
		canPlay, _, err := CheckPlayStatus(created.PostID, "player-2")
		require.NoError(t, err)
		assert.True(t, canPlay)
	})
}

func TestFindNextUnplayedPost(t *testing.T) {
	setupTestEnv(t)

	base := time.Now().Unix()
	first, err := CreateGamePost(newTestPost("creator", base-300))
	require.NoError(t, err)
	second, err := CreateGamePost(newTestPost("creator", base-200))
	require.NoError(t, err)
	third, err := CreateGamePost(newTestPost("creator", base-100))
	require.NoError(t, err)

	t.Run("oldest post comes first", func(t *testing.T) {
		next, err := FindNextUnplayedPost("player-1")
		require.NoError(t, err)
		assert.Equal(t, first.PostID, next)
	})

	t.Run("played posts are skipped in creation order", func(t *testing.T) {
		_, err := RecordPlay(PlayRecordData{PostID: first.PostID, UserID: "player-1"})
		require.NoError(t, err)

		next, err := FindNextUnplayedPost("player-1")
		require.NoError(t, err)
		assert.Equal(t, second.PostID, next)
	})

	t.Run("exhausted scan reports no posts", func(t *testing.T) {
		for _, id := range []string{second.PostID, third.PostID} {
			_, err := RecordPlay(PlayRecordData{PostID: id, UserID: "player-1"})
			require.NoError(t, err)
		}

		_, err := FindNextUnplayedPost("player-1")
		assert.ErrorIs(t, err, ErrNoUnplayedPosts)
	})

	t.Run("another player still sees the oldest post", func(t *testing.T) {
		next, err := FindNextUnplayedPost("player-2")
		require.NoError(t, err)
		assert.Equal(t, first.PostID, next)
	})
}

func TestGetPostLeaderboard(t *testing.T) {
	setupTestEnv(t)

	created, err := CreateGamePost(newTestPost("creator", 0))
	require.NoError(t, err)

	scores := map[string]int{"alice": 8, "bob": 21, "carol": 13}
	for user, score := range scores {
		_, err := RecordPlay(PlayRecordData{
			PostID:       created.PostID,
			UserID:       user,
			PhraserScore: score,
		})
		require.NoError(t, err)
	}

	records, err := GetPostLeaderboard(created.PostID)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "bob", records[0].UserID)
	assert.Equal(t, "carol", records[1].UserID)
	assert.Equal(t, "alice", records[2].UserID)
}

func TestWarmupCacheRestoresRedis(t *testing.T) {
	mr := setupTestEnv(t)

	created, err := CreateGamePost(newTestPost("creator", 0))
	require.NoError(t, err)
	_, err = RecordPlay(PlayRecordData{
		PostID:       created.PostID,
		UserID:       "player-1",
		PhraserScore: 9,
		WordsFormed:  []string{"cat"},
	})
	require.NoError(t, err)

	// 模拟Redis数据丢失
	mr.FlushAll()

	require.NoError(t, WarmupCache())

	data, err := GetPostData(created.PostID)
	require.NoError(t, err)
	assert.Equal(t, created.PostID, data.PostID)

	canPlay, record, err := CheckPlayStatus(created.PostID, "player-1")
	require.NoError(t, err)
	assert.False(t, canPlay)
	require.NotNil(t, record)
	assert.Equal(t, 9, record.PhraserScore)
}
