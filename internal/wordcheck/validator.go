package wordcheck

import (
	"fmt"
	"strings"

	"github.com/shiva-profnl/chase-n-phrase-game/internal/dictionary"
)

// ValidationResult 定义了单词校验结论的枚举类型
type ValidationResult string

const (
	// ResultValid 表示单词有效，可以计分
	ResultValid ValidationResult = "valid"
	// ResultInvalid 表示单词命中脏词过滤器，拒绝且留痕
	ResultInvalid ValidationResult = "invalid"
	// ResultNotValid 表示单词不被任何词典认可
	ResultNotValid ValidationResult = "not-valid"
)

// ValidationResponse 是单词校验的完整结论
type ValidationResponse struct {
	Result  ValidationResult `json:"result"`
	Message string           `json:"message,omitempty"`
}

// ValidateWord 按固定顺序校验一个候选单词。
// 脏词检查永远最先执行：即使版主把一个脏词加进了自定义词典，
// 它也不可能被“洗白”，因为检查顺序不可配置。
func ValidateWord(word string) ValidationResponse {
	lowerWord := strings.ToLower(strings.TrimSpace(word))

	if len(lowerWord) < 1 {
		return ValidationResponse{Result: ResultNotValid, Message: "Word too short"}
	}

	if IsBadWord(lowerWord) {
		return ValidationResponse{Result: ResultInvalid, Message: "Word is a bad word"}
	}

	inCustomTrie, err := dictionary.SearchWord(lowerWord)
	if err != nil {
		// 自定义词典暂时不可用时退回标准词典，不阻塞校验
		fmt.Printf("查询自定义词典失败: %v\n", err)
	}
	if inCustomTrie {
		return ValidationResponse{Result: ResultValid, Message: "Valid word (custom trie)"}
	}

	if IsValidWord(lowerWord) {
		return ValidationResponse{Result: ResultValid, Message: "Valid word (English dictionary)"}
	}

	return ValidationResponse{Result: ResultNotValid, Message: "Not a valid word"}
}
