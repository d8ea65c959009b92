package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	DB         DBConfig
	Auth       AuthConfig
	Mail       MailConfig
	Admin      AdminConfig
	Automation AutomationConfig
}

type ServerConfig struct {
	Address string
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     int
}

type AuthConfig struct {
	JWTSecret string
}

type MailConfig struct {
	ResendAPIKey string
	From         string
}

// AdminConfig 是啟動時補種的預設管理員帳號
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

type AutomationConfig struct {
	Interval time.Duration // 自動排程的執行間隔，0 表示只靠外部觸發
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./pkg/config")
	viper.AutomaticEnv()

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("mail.from", "noreply@debatehub.app")
	viper.SetDefault("admin.email", "admin@debate.com")
	viper.SetDefault("admin.name", "Super Admin")
	viper.SetDefault("automation.interval", "1m")

	if err := viper.ReadInConfig(); err != nil {
		// 沒有配置文件時使用預設值加環境變量
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
