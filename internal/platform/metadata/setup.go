package metadata

import (
	"fmt"

	"github.com/shiva-profnl/chase-n-phrase-game/internal/platform/database"
)

// PrimeDB 负责迁移metadata表结构
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Metadata{}); err != nil {
		return fmt.Errorf("无法迁移metadata表: %w", err)
	}
	fmt.Println("Metadata数据库表迁移成功。")
	return nil
}
