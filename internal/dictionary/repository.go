package dictionary

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/database"
	"github.com/shiva-profnl/chase-n-phrase-game/pkg/trie"
)

// --- Redis 键名常量 ---

const (
	// TrieKey 是一个 Redis String，存储整棵自定义词典前缀树的JSON序列化快照。
	// 每次变更都对整个快照做读取-修改-写回，不做增量更新。
	TrieKey = "custom-valid-words-trie"

	// CountKey 是一个 Redis String，存储当前词典中的单词数量。
	// 不变量：它始终等于前缀树中终端节点的数量。
	CountKey = "custom-words-count"
)

// --- 并发控制 ---

// repoMutex 是一个模块内部的、不导出的全局读写锁，
// 用于在单进程内串行化对前缀树快照的读取-修改-写回。
var repoMutex sync.RWMutex

// LockRepository 封装了对模块全局锁的写锁定操作。
func LockRepository() {
	repoMutex.Lock()
}

// UnlockRepository 封装了对模块全局锁的写解锁操作。
func UnlockRepository() {
	repoMutex.Unlock()
}

// RLockRepository 封装了对模块全局锁的读锁定操作。
func RLockRepository() {
	repoMutex.RLock()
}

// RUnlockRepository 封装了对模块全局锁的读解锁操作。
func RUnlockRepository() {
	repoMutex.RUnlock()
}

// --- 快照读写 ---

// loadTrie 从Redis读取并反序列化整棵前缀树。
// 键不存在时返回一棵空树，这是词典尚未建立时的合法状态。
func loadTrie() (*trie.Trie, error) {
	data, err := database.RDB.Get(database.Ctx, TrieKey).Result()
	if err == redis.Nil {
		return trie.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("无法从Redis读取前缀树快照: %w", err)
	}

	t := trie.New()
	if err := t.UnmarshalJSON([]byte(data)); err != nil {
		return nil, err
	}
	return t, nil
}

// saveTrie 将整棵前缀树和单词计数原子地写回Redis。
func saveTrie(t *trie.Trie) error {
	blob, err := t.MarshalJSON()
	if err != nil {
		return fmt.Errorf("无法序列化前缀树: %w", err)
	}

	pipe := database.RDB.TxPipeline()
	pipe.Set(database.Ctx, TrieKey, blob, 0)
	pipe.Set(database.Ctx, CountKey, strconv.Itoa(t.Len()), 0)
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("无法将前缀树快照写回Redis: %w", err)
	}
	return nil
}

// readCount 从Redis读取当前单词数量，键不存在时返回0。
func readCount() (int, error) {
	data, err := database.RDB.Get(database.Ctx, CountKey).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("无法从Redis读取单词计数: %w", err)
	}
	count, err := strconv.Atoi(data)
	if err != nil {
		return 0, fmt.Errorf("无法解析单词计数 '%s': %w", data, err)
	}
	return count, nil
}
