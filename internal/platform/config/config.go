package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cfg 是一个全局变量，用于存储所有应用程序的配置
var Cfg *Config

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Gameplay GameplayConfig `mapstructure:"gameplay"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"`
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了数据库和缓存相关的配置
type DatabaseConfig struct {
	Redis  RedisConfig  `mapstructure:"redis"`
	Sqlite SqliteConfig `mapstructure:"sqlite"`
}

// RedisConfig 定义了Redis的配置
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SqliteConfig 定义了SQLite的配置
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// GameplayConfig 定义了游戏规则相关的配置
type GameplayConfig struct {
	// MaxCustomWords 是自定义词典的容量上限
	MaxCustomWords int `mapstructure:"maxCustomWords"`

	// MinWordLength 是自定义词典接受的最短单词长度
	MinWordLength int `mapstructure:"minWordLength"`

	// FailOpenPlayStatus 控制游玩状态检查失败时的策略：
	// true表示放行本次游玩（可用性优先），false表示拒绝。
	FailOpenPlayStatus bool `mapstructure:"failOpenPlayStatus"`

	// RecordTTLDays 是帖子数据和游玩记录在Redis中的保留天数
	RecordTTLDays int `mapstructure:"recordTTLDays"`

	// LeaderboardSize 是排行榜查询返回的条目数
	LeaderboardSize int `mapstructure:"leaderboardSize"`

	// SnapshotIntervalMinutes 是排行榜数据落盘的周期
	SnapshotIntervalMinutes int `mapstructure:"snapshotIntervalMinutes"`
}

// RecordTTL 返回帖子与游玩记录的过期时长。
func (g GameplayConfig) RecordTTL() time.Duration {
	return time.Duration(g.RecordTTLDays) * 24 * time.Hour
}

// SnapshotInterval 返回快照周期。
func (g GameplayConfig) SnapshotInterval() time.Duration {
	return time.Duration(g.SnapshotIntervalMinutes) * time.Minute
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 它会在指定的路径中查找名为 config.yaml 的文件
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. 设置配置文件名和类型
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// 2. 添加配置文件搜索路径
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 3. 设置环境变量支持
	// 允许通过环境变量覆盖配置，例如 SERVER_ADDRESS=:8888
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. 缺省值：即使配置文件精简，游戏规则也有合理默认
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.sqlite.path", "chase-n-phrase.db")
	v.SetDefault("gameplay.maxCustomWords", 1000)
	v.SetDefault("gameplay.minWordLength", 2)
	v.SetDefault("gameplay.failOpenPlayStatus", true)
	v.SetDefault("gameplay.recordTTLDays", 30)
	v.SetDefault("gameplay.leaderboardSize", 10)
	v.SetDefault("gameplay.snapshotIntervalMinutes", 10)

	// 5. 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	// 6. 将配置反序列化到结构体中
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// 7. 将加载的配置赋值给全局变量
	Cfg = &cfg

	return Cfg, nil
}
