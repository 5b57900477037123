package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config 全部配置
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Rules      RulesConfig      `mapstructure:"rules"`
	Server     ServerConfig     `mapstructure:"server"`
	RandomPlay RandomPlayConfig `mapstructure:"randomplay"`
}

// LogConfig 日志
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RulesConfig 可选规则开关，零值即默认规则
type RulesConfig struct {
	StrictCheckSafety bool `mapstructure:"strict_check_safety"`
	EnforceTurnOrder  bool `mapstructure:"enforce_turn_order"`
}

// ServerConfig HTTP 服务
type ServerConfig struct {
	Addr     string `mapstructure:"addr"`
	WebDir   string `mapstructure:"web_dir"`
	MaxGames int    `mapstructure:"max_games"`
}

// RandomPlayConfig 随机对局校验
type RandomPlayConfig struct {
	Games    int   `mapstructure:"games"`
	MaxPlies int   `mapstructure:"max_plies"`
	Workers  int   `mapstructure:"workers"`
	Seed     int64 `mapstructure:"seed"`
}

var (
	mu  sync.RWMutex
	cfg *Config
	v   *viper.Viper
)

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("rules.strict_check_safety", false)
	v.SetDefault("rules.enforce_turn_order", false)

	v.SetDefault("server.addr", ":2888")
	v.SetDefault("server.web_dir", "./web")
	v.SetDefault("server.max_games", 100)

	v.SetDefault("randomplay.games", 10)
	v.SetDefault("randomplay.max_plies", 200)
	v.SetDefault("randomplay.workers", 4)
	v.SetDefault("randomplay.seed", 1)
}

// Init 加载配置；指定路径不存在时退回默认值
func Init(configPath string) error {
	nv := viper.New()
	setViperDefaults(nv)

	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		nv.SetConfigName("config")
		nv.SetConfigType("yaml")
		nv.AddConfigPath(".")
		nv.AddConfigPath("./config")
		nv.AddConfigPath("/etc/xiangqi")
	}

	nv.SetEnvPrefix("XQ")
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case configPath != "" && isMissingFile(err):
			// 指定的文件不存在，用默认值
		case errors.As(err, &notFound):
		default:
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	c := &Config{}
	if err := nv.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	mu.Lock()
	v, cfg = nv, c
	mu.Unlock()
	return nil
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Get 返回当前配置的副本，首次调用时用默认值初始化
func Get() Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()
	if c == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
		mu.RLock()
		c = cfg
		mu.RUnlock()
	}
	return *c
}

// GetViper 底层 viper 实例
func GetViper() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// Set 运行时修改单项配置；校验不过时 Get 仍返回旧配置
func Set(key string, value any) error {
	mu.Lock()
	defer mu.Unlock()
	if v == nil {
		return errors.New("config not initialized")
	}
	v.Set(key, value)
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	cfg = c
	return nil
}

// LoadEnvironmentConfig 把 config.<env>.yaml 合并到当前配置上
// 目录取已加载配置文件所在目录，没有则用工作目录
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()
	if v == nil {
		return errors.New("config not initialized")
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	if used := v.ConfigFileUsed(); used != "" {
		envFile = filepath.Join(filepath.Dir(used), envFile)
	}

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if !isMissingFile(err) {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
		return nil
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	cfg = c
	return nil
}

// ConfigFilePath 已加载的配置文件路径
func ConfigFilePath() string {
	mu.RLock()
	defer mu.RUnlock()
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// WatchConfig 监听配置文件热更新
// 改坏了走 onError，旧配置继续生效
func WatchConfig(onChange func(Config), onError func(error)) {
	mu.RLock()
	wv := v
	mu.RUnlock()
	if wv == nil {
		panic("config not initialized - call Init() first")
	}

	wv.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		c := &Config{}
		err := wv.Unmarshal(c)
		if err == nil {
			err = Validate(c)
		}
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		mu.Lock()
		cfg = c
		mu.Unlock()
		if onChange != nil {
			onChange(*c)
		}
	})
	wv.WatchConfig()
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"console": true, "json": true}
)

// Validate 校验配置值
func Validate(c *Config) error {
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", c.Log.Level)
	}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		return fmt.Errorf("log.format must be console or json (got %q)", c.Log.Format)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Server.MaxGames <= 0 {
		return fmt.Errorf("server.max_games must be positive")
	}

	if c.RandomPlay.Games <= 0 {
		return fmt.Errorf("randomplay.games must be positive")
	}
	if c.RandomPlay.MaxPlies <= 0 {
		return fmt.Errorf("randomplay.max_plies must be positive")
	}
	if c.RandomPlay.Workers <= 0 {
		return fmt.Errorf("randomplay.workers must be positive")
	}
	return nil
}
