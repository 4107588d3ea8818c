package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	setFeedDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

// setFeedDefaults 打分参数默认值，配置缺省时兜底
func setFeedDefaults() {
	viper.SetDefault("feed.interaction_window", 100)
	viper.SetDefault("feed.tag_weight_multiplier", 100.0)
	viper.SetDefault("feed.content_type_bonus", 50.0)
	viper.SetDefault("feed.active_hour_bonus", 30.0)
	viper.SetDefault("feed.recency_penalty_per_hour", 0.5)
	viper.SetDefault("feed.default_page_size", 10)
	viper.SetDefault("feed.max_page_size", 50)
	viper.SetDefault("feed.viewed_cache_ttl_hours", 72)
}
