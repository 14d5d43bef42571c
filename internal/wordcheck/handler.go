package wordcheck

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ValidateRequestBody 定义了前端提交单词校验时，请求体的JSON结构
type ValidateRequestBody struct {
	Word string `json:"word" binding:"required"`
}

// HandleValidateWord 处理Phraser玩法的单词校验请求
func HandleValidateWord(c *gin.Context) {
	var body ValidateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Word is required and must be a string",
		})
		return
	}

	result := ValidateWord(body.Word)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
		"word":    strings.ToLower(strings.TrimSpace(body.Word)),
	})
}
