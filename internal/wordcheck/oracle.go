package wordcheck

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	goaway "github.com/TwiN/go-away"
)

// 词典神谕：回答“这是不是一个真实单词”和“这是不是一个脏词”。
// 两个判断都是纯函数式的：大小写不敏感、确定性、无副作用。

//go:embed default_words.txt
var defaultWordList string

var (
	oracleOnce sync.Once
	validWords map[string]struct{}
)

// InitOracle 加载英文词典。
// 如果设置了WORDS_FILE环境变量则从该文件加载完整词典，
// 否则退回到内嵌的精简默认词表。只会执行一次。
func InitOracle() {
	oracleOnce.Do(func() {
		if path := os.Getenv("WORDS_FILE"); path != "" {
			words, err := loadWordsFromFile(path)
			if err == nil {
				validWords = words
				fmt.Printf("词典神谕：从 %s 加载了 %d 个单词。\n", path, len(words))
				return
			}
			fmt.Printf("词典神谕警告：加载 %s 失败 (%v)，退回内嵌词表。\n", path, err)
		}

		validWords = parseWordList(strings.NewReader(defaultWordList))
		fmt.Printf("词典神谕：使用内嵌词表，共 %d 个单词。\n", len(validWords))
	})
}

func loadWordsFromFile(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseWordList(f), nil
}

func parseWordList(r io.Reader) map[string]struct{} {
	words := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word != "" {
			words[word] = struct{}{}
		}
	}
	return words
}

// IsValidWord 报告一个单词是否存在于英文词典中。
func IsValidWord(word string) bool {
	InitOracle()
	_, ok := validWords[strings.ToLower(strings.TrimSpace(word))]
	return ok
}

// IsBadWord 报告一个单词是否命中脏词过滤器。
func IsBadWord(word string) bool {
	return goaway.IsProfane(strings.ToLower(strings.TrimSpace(word)))
}
