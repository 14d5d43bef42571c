package trie

import (
	"encoding/json"
	"fmt"
	"sort"
)

// terminalKey 是序列化格式中标记“单词在此结束”的特殊键。
// 它不可能与任何单字符子节点键冲突，因为单词在插入前已被规范化为小写字母。
const terminalKey = "*"

// node 是前缀树的内部节点。
// 每个子节点键是一个单字符字符串，terminal标记区分“完整单词”和“仅是前缀”。
type node struct {
	children map[string]*node
	terminal bool
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// Trie 是一个以单字符为边的前缀树。
// 它维护一个与终端节点数量严格一致的计数器，
// 并能序列化为与历史数据兼容的JSON形态: {"c":{"a":{"t":{"*":true}}}}。
type Trie struct {
	root *node
	size int
}

// New 创建一棵空的前缀树。
func New() *Trie {
	return &Trie{root: newNode()}
}

// Len 返回树中完整单词的数量。
func (t *Trie) Len() int {
	return t.size
}

// Empty 报告树中是否没有任何单词。
func (t *Trie) Empty() bool {
	return t.size == 0
}

// Insert 将一个单词插入树中，按需创建中间节点。
// 如果该单词已经作为完整单词存在，返回false且不做任何修改。
func (t *Trie) Insert(word string) bool {
	cur := t.root
	for _, r := range word {
		key := string(r)
		next, ok := cur.children[key]
		if !ok {
			next = newNode()
			cur.children[key] = next
		}
		cur = next
	}
	if cur.terminal {
		return false
	}
	cur.terminal = true
	t.size++
	return true
}

// Search 报告一个单词是否作为完整单词存在。
// 仅是其他单词前缀的路径返回false。
func (t *Trie) Search(word string) bool {
	cur := t.root
	for _, r := range word {
		next, ok := cur.children[string(r)]
		if !ok {
			return false
		}
		cur = next
	}
	return cur.terminal
}

// Remove 从树中删除一个完整单词，并自底向上修剪不再被使用的节点链。
// 根节点永远不会被删除。如果该单词不存在，返回false。
func (t *Trie) Remove(word string) bool {
	if !t.Search(word) {
		return false
	}
	t.removeHelper(t.root, []rune(word), 0)
	t.size--
	return true
}

// removeHelper 递归删除，返回值表示当前节点在删除后是否已空、可被父节点摘除。
func (t *Trie) removeHelper(cur *node, word []rune, index int) bool {
	if index == len(word) {
		cur.terminal = false
		return len(cur.children) == 0
	}

	key := string(word[index])
	child, ok := cur.children[key]
	if !ok {
		return false
	}

	if t.removeHelper(child, word, index+1) {
		delete(cur.children, key)
		return len(cur.children) == 0 && !cur.terminal
	}
	return false
}

// Clear 丢弃所有单词，将树重置为空。
func (t *Trie) Clear() {
	t.root = newNode()
	t.size = 0
}

// Words 深度优先枚举树中的全部完整单词。
// 返回结果按字典序排列，每个单词恰好出现一次。
func (t *Trie) Words() []string {
	words := make([]string, 0, t.size)
	collect(t.root, "", &words)
	sort.Strings(words)
	return words
}

func collect(cur *node, prefix string, words *[]string) {
	if cur.terminal {
		*words = append(*words, prefix)
	}
	for key, child := range cur.children {
		collect(child, prefix+key, words)
	}
}

// MarshalJSON 将整棵树序列化为嵌套对象形态。
// 终端节点携带 "*": true，空树序列化为 {}。
func (t *Trie) MarshalJSON() ([]byte, error) {
	return json.Marshal(encodeNode(t.root))
}

func encodeNode(cur *node) map[string]interface{} {
	obj := make(map[string]interface{}, len(cur.children)+1)
	if cur.terminal {
		obj[terminalKey] = true
	}
	for key, child := range cur.children {
		obj[key] = encodeNode(child)
	}
	return obj
}

// UnmarshalJSON 从嵌套对象形态重建整棵树，并重新统计单词数量。
func (t *Trie) UnmarshalJSON(data []byte) error {
	root, count, err := decodeNode(data)
	if err != nil {
		return fmt.Errorf("无法解析序列化的前缀树: %w", err)
	}
	t.root = root
	t.size = count
	return nil
}

func decodeNode(data []byte) (*node, int, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, err
	}

	cur := newNode()
	count := 0
	for key, value := range raw {
		if key == terminalKey {
			var flag bool
			if err := json.Unmarshal(value, &flag); err != nil {
				return nil, 0, err
			}
			if flag {
				cur.terminal = true
				count++
			}
			continue
		}
		child, childCount, err := decodeNode(value)
		if err != nil {
			return nil, 0, err
		}
		cur.children[key] = child
		count += childCount
	}
	return cur, count, nil
}
