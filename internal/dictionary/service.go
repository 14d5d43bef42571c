package dictionary

import (
	"fmt"
	"strings"

	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/config"
	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/database"
)

// Result 是所有词典变更操作的返回结构。
// 持久化失败不会以error形式向上抛出，而是转换为Success=false的结构化结果，
// 调用方必须检查Success标志。
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Normalize 将输入单词规范化为小写并去除首尾空白。
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// AddWord 向自定义词典添加一个单词。
// 失败场景：过短、容量已满、已存在、持久化失败；均以Result形式返回。
func AddWord(word string) Result {
	lowerWord := Normalize(word)

	if len(lowerWord) < config.Cfg.Gameplay.MinWordLength {
		return Result{Success: false, Message: "Word too short"}
	}

	LockRepository()
	defer UnlockRepository()

	t, err := loadTrie()
	if err != nil {
		fmt.Printf("添加单词失败: %v\n", err)
		return Result{Success: false, Message: "Failed to add word to custom trie"}
	}

	maxWords := config.Cfg.Gameplay.MaxCustomWords
	if t.Len() >= maxWords {
		return Result{Success: false, Message: fmt.Sprintf("Maximum word limit (%d) reached", maxWords)}
	}

	if t.Search(lowerWord) {
		return Result{Success: false, Message: "Word already exists in custom trie"}
	}
	t.Insert(lowerWord)

	// 先写SQLite事务，再写Redis快照；Redis失败时回滚SQLite，保证事实来源一致。
	tx := database.DB.Begin()
	if tx.Error != nil {
		fmt.Printf("无法开始数据库事务: %v\n", tx.Error)
		return Result{Success: false, Message: "Failed to add word to custom trie"}
	}

	if err := tx.Create(&CustomWord{Word: lowerWord}).Error; err != nil {
		tx.Rollback()
		if database.IsDuplicateKeyError(err) {
			// SQLite里已有此词但快照里没有，说明快照落后；直接修复快照。
			if err := saveTrie(t); err != nil {
				fmt.Printf("修复前缀树快照失败: %v\n", err)
				return Result{Success: false, Message: "Failed to add word to custom trie"}
			}
			return Result{Success: true, Message: fmt.Sprintf("Word %q added to custom trie", lowerWord)}
		}
		fmt.Printf("无法在SQLite中创建单词记录: %v\n", err)
		return Result{Success: false, Message: "Failed to add word to custom trie"}
	}

	if err := saveTrie(t); err != nil {
		tx.Rollback()
		fmt.Printf("添加单词失败: %v\n", err)
		return Result{Success: false, Message: "Failed to add word to custom trie"}
	}

	if err := tx.Commit().Error; err != nil {
		fmt.Printf("提交单词记录失败: %v\n", err)
		return Result{Success: false, Message: "Failed to add word to custom trie"}
	}

	return Result{Success: true, Message: fmt.Sprintf("Word %q added to custom trie", lowerWord)}
}

// RemoveWord 从自定义词典中删除一个单词。
// 删除后前缀树中不再被使用的节点链会被修剪，计数随之递减（下限为0）。
func RemoveWord(word string) Result {
	lowerWord := Normalize(word)

	LockRepository()
	defer UnlockRepository()

	t, err := loadTrie()
	if err != nil {
		fmt.Printf("删除单词失败: %v\n", err)
		return Result{Success: false, Message: "Failed to remove word from custom trie"}
	}

	if t.Empty() {
		return Result{Success: false, Message: "Custom trie is empty"}
	}
	if !t.Remove(lowerWord) {
		return Result{Success: false, Message: "Word not found in custom trie"}
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		fmt.Printf("无法开始数据库事务: %v\n", tx.Error)
		return Result{Success: false, Message: "Failed to remove word from custom trie"}
	}

	if err := tx.Delete(&CustomWord{Word: lowerWord}).Error; err != nil {
		tx.Rollback()
		fmt.Printf("无法在SQLite中删除单词记录: %v\n", err)
		return Result{Success: false, Message: "Failed to remove word from custom trie"}
	}

	if err := saveTrie(t); err != nil {
		tx.Rollback()
		fmt.Printf("删除单词失败: %v\n", err)
		return Result{Success: false, Message: "Failed to remove word from custom trie"}
	}

	if err := tx.Commit().Error; err != nil {
		fmt.Printf("提交单词删除失败: %v\n", err)
		return Result{Success: false, Message: "Failed to remove word from custom trie"}
	}

	return Result{Success: true, Message: fmt.Sprintf("Word %q removed from custom trie", lowerWord)}
}

// ClearDictionary 无条件清空整个自定义词典并将计数归零。
func ClearDictionary() Result {
	LockRepository()
	defer UnlockRepository()

	tx := database.DB.Begin()
	if tx.Error != nil {
		fmt.Printf("无法开始数据库事务: %v\n", tx.Error)
		return Result{Success: false, Message: "Failed to clear custom dictionary"}
	}

	if err := tx.Where("1 = 1").Delete(&CustomWord{}).Error; err != nil {
		tx.Rollback()
		fmt.Printf("无法清空SQLite单词表: %v\n", err)
		return Result{Success: false, Message: "Failed to clear custom dictionary"}
	}

	pipe := database.RDB.TxPipeline()
	pipe.Del(database.Ctx, TrieKey)
	pipe.Del(database.Ctx, CountKey)
	if _, err := pipe.Exec(database.Ctx); err != nil {
		tx.Rollback()
		fmt.Printf("无法清空Redis词典快照: %v\n", err)
		return Result{Success: false, Message: "Failed to clear custom dictionary"}
	}

	if err := tx.Commit().Error; err != nil {
		fmt.Printf("提交词典清空失败: %v\n", err)
		return Result{Success: false, Message: "Failed to clear custom dictionary"}
	}

	return Result{Success: true, Message: "Custom dictionary cleared successfully"}
}

// SearchWord 查询一个单词是否作为完整单词存在于自定义词典中。
// 仅是其他单词前缀的路径返回false。
func SearchWord(word string) (bool, error) {
	lowerWord := Normalize(word)

	RLockRepository()
	defer RUnlockRepository()

	t, err := loadTrie()
	if err != nil {
		return false, err
	}
	return t.Search(lowerWord), nil
}

// GetAllWords 枚举词典中的全部单词，每个单词恰好出现一次。
func GetAllWords() ([]string, error) {
	RLockRepository()
	defer RUnlockRepository()

	t, err := loadTrie()
	if err != nil {
		return nil, err
	}
	return t.Words(), nil
}

// GetWordCount 返回词典当前的单词数量。
func GetWordCount() (int, error) {
	RLockRepository()
	defer RUnlockRepository()
	return readCount()
}
