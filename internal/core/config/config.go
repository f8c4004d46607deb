package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/docker/go-units"
	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
	MaxBodySize     string   `mapstructure:"max_body_size"` // 如 11MiB
	CORSOrigins     []string `mapstructure:"cors_origins"`
}

// OpsHTTP /health + /metrics 独立端口
type OpsHTTP struct {
	Host string
	Port int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
	Ops  OpsHTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int `mapstructure:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups"`
	MaxAgeDays int `mapstructure:"max_age_days"`
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type Redis struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSec   int    `mapstructure:"ttl_sec"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Image struct {
	MaxSize      string   `mapstructure:"max_size"`
	AllowedTypes []string `mapstructure:"allowed_types"`
}

type Pagination struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

type Limits struct {
	RPS         float64 `mapstructure:"rps"`
	Burst       int     `mapstructure:"burst"`
	PerIPRPS    float64 `mapstructure:"per_ip_rps"`
	PerIPBurst  int     `mapstructure:"per_ip_burst"`
	Concurrency int64   `mapstructure:"concurrency"`
	TimeoutSec  int     `mapstructure:"timeout_sec"`
}

type Config struct {
	App        App
	Log        Log
	DB         DB
	Redis      Redis `mapstructure:"redis"`
	Image      Image
	Pagination Pagination
	Limits     Limits
}

// MaxImageBytes 二进制单位：5MiB = 5*1024*1024
func (c *Config) MaxImageBytes() int64 {
	n, _ := units.RAMInBytes(c.Image.MaxSize)
	return n
}

func (c *Config) MaxBodyBytes() int64 {
	n, _ := units.RAMInBytes(c.App.HTTP.MaxBodySize)
	return n
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "contact-board")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 15)
	v.SetDefault("app.http.writetimeoutsec", 30)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.http.max_body_size", "11MiB") // 前端 10MiB 上限 + multipart 开销
	v.SetDefault("app.ops.host", "127.0.0.1")
	v.SetDefault("app.ops.port", 9090)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.filename", "logs/app.log")
	v.SetDefault("log.file.max_size_mb", 100)
	v.SetDefault("log.file.max_backups", 7)
	v.SetDefault("log.file.max_age_days", 30)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "data/board.db")
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 5)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.automigrate", true)
	v.SetDefault("db.loglevel", "warn")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.ttl_sec", 300)

	v.SetDefault("image.max_size", "5MiB")
	v.SetDefault("image.allowed_types", []string{"image/jpeg", "image/jpg", "image/png", "image/webp", "image/gif"})

	v.SetDefault("pagination.default_limit", 9)
	v.SetDefault("pagination.max_limit", 100)

	v.SetDefault("limits.rps", 200)
	v.SetDefault("limits.burst", 400)
	v.SetDefault("limits.per_ip_rps", 20)
	v.SetDefault("limits.per_ip_burst", 40)
	v.SetDefault("limits.concurrency", 300)
	v.SetDefault("limits.timeout_sec", 10)
}

// Read 读取 yaml + APP_ 前缀环境变量
func Read(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load 失败直接退出
func Load(path string) *Config {
	c, err := Read(path)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return c
}

func (c *Config) validate() error {
	if n, err := units.RAMInBytes(c.Image.MaxSize); err != nil || n <= 0 {
		return fmt.Errorf("invalid image.max_size %q", c.Image.MaxSize)
	}
	if n, err := units.RAMInBytes(c.App.HTTP.MaxBodySize); err != nil || n <= 0 {
		return fmt.Errorf("invalid app.http.max_body_size %q", c.App.HTTP.MaxBodySize)
	}
	if c.Pagination.DefaultLimit > c.Pagination.MaxLimit {
		return fmt.Errorf("pagination.default_limit cannot exceed pagination.max_limit")
	}
	switch c.DB.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}
	return nil
}
