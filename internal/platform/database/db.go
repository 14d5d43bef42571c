package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是一个全局的GORM实例，作为持久化数据的唯一入口
var DB *gorm.DB

// InitDB 初始化SQLite数据库连接
func InitDB(cfg config.SqliteConfig) {
	var err error

	// GORM日志配置
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 0,
			LogLevel:      logger.Silent, // 在生产环境中可以设为Silent
			Colorful:      true,
		},
	)

	DB, err = gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger:         newLogger,
		TranslateError: true, // 将底层驱动错误翻译为gorm错误，便于统一判断
	})

	if err != nil {
		fmt.Println("连接数据库失败", err)
		panic(err)
	}

	fmt.Println("数据库连接成功！")
}

// IsDuplicateKeyError 判断一个错误是否由主键/唯一索引冲突引起。
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsRetryableError 判断一个错误是否值得短间隔重试。
// SQLite在并发写入时会返回busy/locked，这类错误通常稍后即可成功。
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked")
}
