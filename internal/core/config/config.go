package config

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host              string
	Port              int
	BasePath          string
	ReadTimeoutSec    int
	WriteTimeoutSec   int
	IdleTimeoutSec    int
	RequestTimeoutSec int
	RateLimitRPS      float64
	RateLimitBurst    int
	PerIPRPS          float64
	PerIPBurst        int
	MaxConcurrent     int64
	MaxBodyMB         int64
	CORSOrigins       []string
}

type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name  string
	Env   string
	HTTP  HTTP
	Admin AdminHTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
	// ExpiresIn 非空时覆盖 AccessTokenTTLMin。支持 Go duration（"36h"）、
	// 天/周后缀（"7d"、"2w"）以及纯数字秒（"3600"）
	ExpiresIn string
}

// TTL 访问令牌有效期；ExpiresIn 非法时退回分钟配置，Validate 会提前拦下
func (j JWT) TTL() time.Duration {
	if j.ExpiresIn != "" {
		if d, err := ParseExpiresIn(j.ExpiresIn); err == nil {
			return d
		}
	}
	return time.Duration(j.AccessTokenTTLMin) * time.Minute
}

var dayUnits = map[string]time.Duration{
	"d": 24 * time.Hour,
	"w": 7 * 24 * time.Hour,
}

// ParseExpiresIn 解析令牌有效期，结果必须为正
func ParseExpiresIn(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty expiresIn")
	}
	var d time.Duration
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > int64(math.MaxInt64/time.Second) {
			return 0, fmt.Errorf("expiresIn %q out of range", s)
		}
		d = time.Duration(n) * time.Second
	} else if unit, ok := dayUnits[strings.ToLower(s[len(s)-1:])]; ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s[:len(s)-1]), 64)
		if err != nil || !(f > 0) || f > float64(math.MaxInt64/unit) {
			return 0, fmt.Errorf("invalid expiresIn %q", s)
		}
		d = time.Duration(f * float64(unit))
	} else {
		pd, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid expiresIn %q: %w", s, err)
		}
		d = pd
	}
	if d <= 0 {
		return 0, fmt.Errorf("expiresIn %q must be positive", s)
	}
	return d, nil
}

type Auth struct {
	BcryptCost       int
	LoginMaxAttempts int
	LoginWindowSec   int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
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

type Config struct {
	App   App
	Log   Log
	JWT   JWT
	Auth  Auth
	DB    DB
	Redis Redis `mapstructure:"redis"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "todo-api")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 4000)
	v.SetDefault("app.http.basePath", "")
	v.SetDefault("app.http.readTimeoutSec", 5)
	v.SetDefault("app.http.writeTimeoutSec", 10)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.http.requestTimeoutSec", 10)
	v.SetDefault("app.http.rateLimitRPS", 200)
	v.SetDefault("app.http.rateLimitBurst", 400)
	v.SetDefault("app.http.perIPRPS", 20)
	v.SetDefault("app.http.perIPBurst", 40)
	v.SetDefault("app.http.maxConcurrent", 300)
	v.SetDefault("app.http.maxBodyMB", 1)
	v.SetDefault("app.http.corsOrigins", []string{})
	v.SetDefault("app.admin.host", "127.0.0.1")
	v.SetDefault("app.admin.port", 4001)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.filename", "logs/app.log")
	v.SetDefault("log.file.maxSizeMB", 100)
	v.SetDefault("log.file.maxBackups", 7)
	v.SetDefault("log.file.maxAgeDays", 30)
	v.SetDefault("log.file.compress", true)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "todo-api")
	v.SetDefault("jwt.accessTokenTTLMin", 24*60)
	v.SetDefault("jwt.expiresIn", "")

	v.SetDefault("auth.bcryptCost", 10)
	v.SetDefault("auth.loginMaxAttempts", 10)
	v.SetDefault("auth.loginWindowSec", 900)

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "todo.db?_foreign_keys=on")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 10)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("db.logLevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
}

// 旧部署里直接使用的环境变量名
var envAliases = map[string]string{
	"jwt.secret":      "JWT_SECRET",
	"jwt.expiresIn":   "JWT_EXPIRES_IN",
	"auth.bcryptCost": "BCRYPT_SALT_ROUNDS",
	"db.dsn":          "DATABASE_DSN",
	"app.http.port":   "PORT",
}

// Read 配置文件可选：不存在时只用默认值 + 环境变量
func Read(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, alias := range envAliases {
		envKey := "APP_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envKey, alias); err != nil {
			return nil, err
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("jwt.secret must be set (APP_JWT_SECRET or JWT_SECRET)")
	}
	if c.JWT.ExpiresIn != "" {
		if _, err := ParseExpiresIn(c.JWT.ExpiresIn); err != nil {
			return fmt.Errorf("jwt.expiresIn (JWT_EXPIRES_IN): %w", err)
		}
	}
	if c.JWT.TTL() <= 0 {
		return errors.New("jwt token ttl must be positive")
	}
	if c.DB.Driver == "" || c.DB.DSN == "" {
		return errors.New("db.driver and db.dsn must be set")
	}
	return nil
}

func Load(path string) *Config {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	c, err := Read(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return c
}
