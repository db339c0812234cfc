package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Resolver ResolverConfig `mapstructure:"resolver"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug or release
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type ResolverConfig struct {
	TimeoutSeconds   int `mapstructure:"timeout_seconds"` // 单次请求超时
	DefaultMaxVideos int `mapstructure:"default_max_videos"`
	MaxMaxVideos     int `mapstructure:"max_max_videos"` // 调用方可请求的上限
	PageCallCap      int `mapstructure:"page_call_cap"`  // 单次解析允许的翻页次数
}

var AppConfig *Config

func LoadConfig(configPath string) error {
	v := viper.New()

	// 默认值
	v.SetDefault("server.port", 8483)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.path", "data/bilinote.db")
	v.SetDefault("resolver.timeout_seconds", 10)
	v.SetDefault("resolver.default_max_videos", 50)
	v.SetDefault("resolver.max_max_videos", 200)
	v.SetDefault("resolver.page_call_cap", 50)

	// 配置文件路径
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}

	// 环境变量替换 (使用 BILINOTE_ 前缀)
	// 比如 BILINOTE_SERVER_PORT=9090
	v.SetEnvPrefix("BILINOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay, use defaults
		fmt.Println("Config file not found, using defaults")
	}

	AppConfig = &Config{}
	if err := v.Unmarshal(AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}
