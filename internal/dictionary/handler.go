package dictionary

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// WordRequestBody 定义了单个单词操作的请求体结构
type WordRequestBody struct {
	Word string `json:"word" binding:"required"`
}

// WordsRequestBody 定义了批量添加单词的请求体结构
type WordsRequestBody struct {
	Words []string `json:"words" binding:"required"`
}

// HandleAddWord 处理版主添加单词的请求
func HandleAddWord(c *gin.Context) {
	var body WordRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "请求格式错误: " + err.Error()})
		return
	}

	result := AddWord(body.Word)
	c.JSON(http.StatusOK, result)
}

// HandleAddWords 处理版主批量添加单词的请求（对应“从文件导入”表单）。
// 每个单词独立处理，单个失败不影响其余单词。
func HandleAddWords(c *gin.Context) {
	var body WordsRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "请求格式错误: " + err.Error()})
		return
	}

	added := 0
	failures := make(map[string]string)
	for _, word := range body.Words {
		result := AddWord(word)
		if result.Success {
			added++
		} else {
			failures[Normalize(word)] = result.Message
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"added":    added,
		"failures": failures,
	})
}

// HandleRemoveWord 处理版主删除单词的请求
func HandleRemoveWord(c *gin.Context) {
	var body WordRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "请求格式错误: " + err.Error()})
		return
	}

	result := RemoveWord(body.Word)
	c.JSON(http.StatusOK, result)
}

// HandleListWords 返回词典中的全部单词和当前计数
func HandleListWords(c *gin.Context) {
	words, err := GetAllWords()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "获取词典单词失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "words": words, "count": len(words)})
}

// HandleWordCount 返回词典的当前单词数量
func HandleWordCount(c *gin.Context) {
	count, err := GetWordCount()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "获取单词计数失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

// HandleClearDictionary 处理版主清空词典的请求
func HandleClearDictionary(c *gin.Context) {
	result := ClearDictionary()
	c.JSON(http.StatusOK, result)
}
