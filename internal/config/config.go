// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	JWT            JWTConfig            `mapstructure:"jwt"`
	Log            LogConfig            `mapstructure:"log"`
	PubMed         PubMedConfig         `mapstructure:"pubmed"`
	ClinicalTrials ClinicalTrialsConfig `mapstructure:"clinical_trials"`
	Summarizer     SummarizerConfig     `mapstructure:"summarizer"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 存储所有数据库连接的配置。
type DatabaseConfig struct {
	// Driver 取值 mysql / postgres / sqlite
	Driver      string      `mapstructure:"driver"`
	DSN         string      `mapstructure:"dsn"`
	AutoMigrate bool        `mapstructure:"auto_migrate"`
	Redis       RedisConfig `mapstructure:"redis"`
}

// RedisConfig 存储 Redis 的配置。Addr 为空时不启用 token 黑名单。
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig 存储 JWT 相关的配置。
type JWTConfig struct {
	Secret                 string `mapstructure:"secret"`
	AccessTokenExpireHours int    `mapstructure:"access_token_expire_hours"`
	RefreshTokenExpireDays int    `mapstructure:"refresh_token_expire_days"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// PubMedConfig 存储 NCBI E-utilities 相关的配置。
type PubMedConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// APIKey 可选，配置后 NCBI 允许每秒 10 次请求，否则为 3 次
	APIKey         string  `mapstructure:"api_key"`
	Tool           string  `mapstructure:"tool"`
	Email          string  `mapstructure:"email"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
}

// ClinicalTrialsConfig 存储 ClinicalTrials.gov v2 API 的配置。
type ClinicalTrialsConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// SummarizerConfig 存储摘要模型（Hugging Face Inference API）的配置。
type SummarizerConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	// Concurrency <= 1 时逐条顺序调用
	Concurrency    int `mapstructure:"concurrency"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3001")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("jwt.access_token_expire_hours", 24)
	v.SetDefault("jwt.refresh_token_expire_days", 7)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("pubmed.base_url", "https://eutils.ncbi.nlm.nih.gov/entrez/eutils")
	v.SetDefault("pubmed.tool", "curalink")
	v.SetDefault("clinical_trials.base_url", "https://clinicaltrials.gov/api/v2")
	v.SetDefault("summarizer.base_url", "https://api-inference.huggingface.co/models")
	v.SetDefault("summarizer.model", "facebook/bart-large-cnn")
	v.SetDefault("summarizer.concurrency", 1)
	v.SetDefault("pubmed.timeout_seconds", 30)
	v.SetDefault("clinical_trials.timeout_seconds", 30)
	v.SetDefault("summarizer.timeout_seconds", 30)
}

// bindEnv 兼容原有部署使用的环境变量名。
func bindEnv(v *viper.Viper) error {
	v.SetEnvPrefix("CURALINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"summarizer.api_key": "HF_API_KEY",
		"database.dsn":       "DATABASE_URL",
		"jwt.secret":         "JWT_SECRET",
		"server.port":        "PORT",
		"pubmed.api_key":     "NCBI_API_KEY",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "CURALINK_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return err
		}
	}
	return nil
}

// Load 读取指定路径的 YAML 文件并叠加环境变量，返回一个独立的配置对象。
// configPath 为空时只使用默认值与环境变量。
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("绑定环境变量失败: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("无法将配置解析到结构体中: %w", err)
	}
	return &cfg, nil
}

// Init 初始化配置加载，结果写入全局 Conf 变量，失败时 panic。
func Init(configPath string) {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	Conf = *cfg
}
