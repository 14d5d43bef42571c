package dictionary

import (
	"fmt"
	"testing"

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

// setupTestEnv 为词典测试搭建内存版的Redis和SQLite环境。
func setupTestEnv(t *testing.T) {
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
			MaxCustomWords: 1000,
			MinWordLength:  2,
		},
	}
}

func TestAddWord(t *testing.T) {
	setupTestEnv(t)

	t.Run("adds a new word", func(t *testing.T) {
		res := AddWord("Apple")
		assert.True(t, res.Success)
		assert.Equal(t, `Word "apple" added to custom trie`, res.Message)

		found, err := SearchWord("apple")
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		res := AddWord("  TrEE  ")
		assert.True(t, res.Success)

		found, err := SearchWord("tree")
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("rejects a duplicate", func(t *testing.T) {
		res := AddWord("apple")
		assert.False(t, res.Success)
		assert.Equal(t, "Word already exists in custom trie", res.Message)
	})

	t.Run("rejects a word below the minimum length", func(t *testing.T) {
		res := AddWord("a")
		assert.False(t, res.Success)
		assert.Equal(t, "Word too short", res.Message)
	})

	t.Run("persists the word in SQLite", func(t *testing.T) {
		var row CustomWord
		require.NoError(t, database.DB.Where("word = ?", "apple").First(&row).Error)
	})
}

func TestAddWordLimit(t *testing.T) {
	setupTestEnv(t)
	config.Cfg.Gameplay.MaxCustomWords = 3

	for i := 0; i < 3; i++ {
		res := AddWord(fmt.Sprintf("word%d", i))
		require.True(t, res.Success)
	}

	res := AddWord("overflow")
	assert.False(t, res.Success)
	assert.Equal(t, "Maximum word limit (3) reached", res.Message)

	count, err := GetWordCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRemoveWord(t *testing.T) {
	setupTestEnv(t)

	t.Run("empty dictionary", func(t *testing.T) {
		res := RemoveWord("cat")
		assert.False(t, res.Success)
		assert.Equal(t, "Custom trie is empty", res.Message)
	})

	require.True(t, AddWord("cat").Success)
	require.True(t, AddWord("cats").Success)

	t.Run("missing word", func(t *testing.T) {
		res := RemoveWord("dog")
		assert.False(t, res.Success)
		assert.Equal(t, "Word not found in custom trie", res.Message)
	})

	t.Run("removing an inner word keeps the longer word", func(t *testing.T) {
		res := RemoveWord("cat")
		assert.True(t, res.Success)

		found, err := SearchWord("cat")
		require.NoError(t, err)
		assert.False(t, found)

		found, err = SearchWord("cats")
		require.NoError(t, err)
		assert.True(t, found)

		count, err := GetWordCount()
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("removes the SQLite row as well", func(t *testing.T) {
		var row CustomWord
		err := database.DB.Where("word = ?", "cat").First(&row).Error
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestClearDictionary(t *testing.T) {
	setupTestEnv(t)

	require.True(t, AddWord("cat").Success)
	require.True(t, AddWord("dog").Success)

	res := ClearDictionary()
	assert.True(t, res.Success)
	assert.Equal(t, "Custom dictionary cleared successfully", res.Message)

	count, err := GetWordCount()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	words, err := GetAllWords()
	require.NoError(t, err)
	assert.Empty(t, words)

	var rows []CustomWord
	require.NoError(t, database.DB.Find(&rows).Error)
	assert.Empty(t, rows)
}

func TestSearchWordPrefix(t *testing.T) {
	setupTestEnv(t)

	require.True(t, AddWord("cats").Success)

	found, err := SearchWord("cat")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetAllWordsSorted(t *testing.T) {
	setupTestEnv(t)

	for _, w := range []string{"dog", "apple", "cat"} {
		require.True(t, AddWord(w).Success)
	}

	words, err := GetAllWords()
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "cat", "dog"}, words)
}

func TestWarmupCacheRebuildsTrie(t *testing.T) {
	setupTestEnv(t)

	require.True(t, AddWord("cat").Success)
	require.True(t, AddWord("dog").Success)

	// 模拟Redis快照丢失后的重建
	require.NoError(t, database.RDB.Del(database.Ctx, TrieKey, CountKey).Err())

	LockRepository()
	err := WarmupCache()
	UnlockRepository()
	require.NoError(t, err)

	found, err := SearchWord("cat")
	require.NoError(t, err)
	assert.True(t, found)

	count, err := GetWordCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
