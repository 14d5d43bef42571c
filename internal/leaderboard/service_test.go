package leaderboard

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/config"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/database"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/metadata"
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
	require.NoError(t, metadata.PrimeDB())

	config.Cfg = &config.Config{
		Gameplay: config.GameplayConfig{
			LeaderboardSize:         10,
			SnapshotIntervalMinutes: 10,
		},
	}
	return mr
}

func TestScoreAccumulation(t *testing.T) {
	setupTestEnv(t)

	t.Run("chaser scores accumulate across games", func(t *testing.T) {
		_, err := UpdateChaserScore("user-1", "Alice", 5)
		require.NoError(t, err)

		stats, err := UpdateChaserScore("user-1", "Alice", 3)
		require.NoError(t, err)
		assert.Equal(t, float64(8), stats.ChaserScore)
		assert.Equal(t, 2, stats.ChaserGames)
	})

	t.Run("phraser scores are tracked independently", func(t *testing.T) {
		stats, err := UpdatePhraserScore("user-1", "Alice", 11)
		require.NoError(t, err)
		assert.Equal(t, float64(11), stats.PhraserScore)
		assert.Equal(t, 1, stats.PhraserGames)
		assert.Equal(t, float64(8), stats.ChaserScore)
	})

	t.Run("sharer updates count posts", func(t *testing.T) {
		_, err := UpdateSharerScore("user-1", "Alice")
		require.NoError(t, err)
		stats, err := UpdateSharerScore("user-1", "Alice")
		require.NoError(t, err)
		assert.Equal(t, 2, stats.PostsShared)
	})

	t.Run("username follows the latest report", func(t *testing.T) {
		stats, err := UpdateChaserScore("user-1", "Alice2", 1)
		require.NoError(t, err)
		assert.Equal(t, "Alice2", stats.Username)
	})

	t.Run("missing userId is rejected", func(t *testing.T) {
		_, err := UpdateChaserScore("", "Nobody", 1)
		assert.Error(t, err)
	})
}

func TestGetLeaderboard(t *testing.T) {
	setupTestEnv(t)

	users := []struct {
		id    string
		name  string
		score float64
	}{
		{"u1", "Alice", 50},
		{"u2", "Bob", 80},
		{"u3", "Carol", 20},
		{"u4", "Dave", 65},
	}
	for _, u := range users {
		_, err := UpdateChaserScore(u.id, u.name, u.score)
		require.NoError(t, err)
	}

	t.Run("entries are ranked by score descending", func(t *testing.T) {
		result, err := GetLeaderboard(TypeChaser, "")
		require.NoError(t, err)
		require.Len(t, result.Entries, 4)

		assert.Equal(t, "u2", result.Entries[0].UserID)
		assert.Equal(t, 1, result.Entries[0].Rank)
		assert.Equal(t, "Bob", result.Entries[0].Username)
		assert.Equal(t, "u4", result.Entries[1].UserID)
		assert.Equal(t, "u1", result.Entries[2].UserID)
		assert.Equal(t, "u3", result.Entries[3].UserID)
		assert.Nil(t, result.UserRank)
	})

	t.Run("user outside the top N gets an explicit rank", func(t *testing.T) {
		config.Cfg.Gameplay.LeaderboardSize = 2

		result, err := GetLeaderboard(TypeChaser, "u3")
		require.NoError(t, err)
		require.Len(t, result.Entries, 2)
		require.NotNil(t, result.UserRank)
		assert.Equal(t, 4, result.UserRank.Rank)
		assert.Equal(t, "u3", result.UserRank.UserID)
		assert.Equal(t, float64(20), result.UserRank.Score)
	})

	t.Run("user inside the top N gets no extra rank entry", func(t *testing.T) {
		config.Cfg.Gameplay.LeaderboardSize = 2

		result, err := GetLeaderboard(TypeChaser, "u2")
		require.NoError(t, err)
		assert.Nil(t, result.UserRank)
	})

	t.Run("unknown user gets no rank entry", func(t *testing.T) {
		result, err := GetLeaderboard(TypeChaser, "ghost")
		require.NoError(t, err)
		assert.Nil(t, result.UserRank)
	})

	t.Run("invalid board type is rejected", func(t *testing.T) {
		_, err := GetLeaderboard("elo", "")
		assert.ErrorIs(t, err, ErrInvalidBoardType)
	})

	t.Run("boards are independent", func(t *testing.T) {
		config.Cfg.Gameplay.LeaderboardSize = 10
		result, err := GetLeaderboard(TypePhraser, "")
		require.NoError(t, err)
		assert.Empty(t, result.Entries)
	})
}

func TestSnapshotDirtyUsers(t *testing.T) {
	setupTestEnv(t)

	_, err := UpdateChaserScore("u1", "Alice", 5)
	require.NoError(t, err)
	_, err = UpdatePhraserScore("u2", "Bob", 7)
	require.NoError(t, err)

	require.NoError(t, snapshotDirtyUsers(context.Background()))

	t.Run("stats land in SQLite", func(t *testing.T) {
		var rows []UserStats
		require.NoError(t, database.DB.Order("user_id asc").Find(&rows).Error)
		require.Len(t, rows, 2)
		assert.Equal(t, float64(5), rows[0].ChaserScore)
		assert.Equal(t, "Bob", rows[1].Username)
		assert.Equal(t, float64(7), rows[1].PhraserScore)
	})

	t.Run("dirty sets are drained", func(t *testing.T) {
		n, err := database.RDB.SCard(database.Ctx, DirtySetKey).Result()
		require.NoError(t, err)
		assert.Zero(t, n)
		n, err = database.RDB.SCard(database.Ctx, ProcessingDirtySetKey).Result()
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("empty dirty set is a no-op", func(t *testing.T) {
		require.NoError(t, snapshotDirtyUsers(context.Background()))
	})

	t.Run("later updates upsert the same row", func(t *testing.T) {
		_, err := UpdateChaserScore("u1", "Alice", 3)
		require.NoError(t, err)
		require.NoError(t, snapshotDirtyUsers(context.Background()))

		var row UserStats
		require.NoError(t, database.DB.Where("user_id = ?", "u1").First(&row).Error)
		assert.Equal(t, float64(8), row.ChaserScore)
		assert.Equal(t, 2, row.ChaserGames)
	})
}

func TestWarmupCacheRestoresBoards(t *testing.T) {
	mr := setupTestEnv(t)

	_, err := UpdateChaserScore("u1", "Alice", 5)
	require.NoError(t, err)
	_, err = UpdateSharerScore("u1", "Alice")
	require.NoError(t, err)
	require.NoError(t, CreateConsistentSnapshotInDB(context.Background()))

	// 模拟Redis数据丢失后的重建
	mr.FlushAll()
	LockRepository()
	err = WarmupCache()
	UnlockRepository()
	require.NoError(t, err)

	result, err := GetLeaderboard(TypeChaser, "")
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, float64(5), result.Entries[0].Score)

	stats, err := GetUserStats("u1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PostsShared)
	assert.Equal(t, "Alice", stats.Username)
}

func TestClearLeaderboards(t *testing.T) {
	setupTestEnv(t)

	_, err := UpdateChaserScore("u1", "Alice", 5)
	require.NoError(t, err)
	require.NoError(t, snapshotDirtyUsers(context.Background()))

	require.NoError(t, ClearLeaderboards())

	result, err := GetLeaderboard(TypeChaser, "")
	require.NoError(t, err)
	assert.Empty(t, result.Entries)

	var rows []UserStats
	require.NoError(t, database.DB.Find(&rows).Error)
	assert.Empty(t, rows)
}
