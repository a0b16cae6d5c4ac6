// Package config 加载 gocomments 的配置：配置文件、环境变量与命令行参数。
package config

import (
	"errors"
	"fmt"
	"time"

	"gocomments/internal/languages"
	"gocomments/internal/report"
	"gocomments/internal/selector"

	"github.com/spf13/viper"
)

// 配置键。命令行参数通过 viper.BindPFlag 绑定到这些键上。
const (
	KeyFormat        = "format"
	KeyOutput        = "output"
	KeyMaxComments   = "max_comments"
	KeyIgnoreFile    = "ignore_file"
	KeyNoIgnoreFile  = "no_ignore_file"
	KeyVerbose       = "verbose"
	KeyWatchDebounce = "watch.debounce"
)

// EnvPrefix 是环境变量前缀，例如 GOCOMMENTS_FORMAT=json。
const EnvPrefix = "GOCOMMENTS"

// DefaultConfigName 是在当前目录查找的配置文件名（不含后缀）。
const DefaultConfigName = ".gocomments"

// Config 是完整配置。
type Config struct {
	Format       string           `mapstructure:"format"`
	Output       string           `mapstructure:"output"`
	MaxComments  int              `mapstructure:"max_comments"`
	IgnoreFile   string           `mapstructure:"ignore_file"`
	NoIgnoreFile bool             `mapstructure:"no_ignore_file"`
	Verbose      bool             `mapstructure:"verbose"`
	Rules        selector.Rules   `mapstructure:"rules"`
	Languages    []LanguageConfig `mapstructure:"languages"`
	Watch        WatchConfig      `mapstructure:"watch"`
}

// LanguageConfig 描述一个用户自定义语言，会注册到符号表。
type LanguageConfig struct {
	Name        string   `mapstructure:"name"`
	Extensions  []string `mapstructure:"extensions"`
	LineMarkers []string `mapstructure:"line_markers"`
	BlockOpen   string   `mapstructure:"block_open"`
	BlockClose  string   `mapstructure:"block_close"`
}

// WatchConfig 是 watch 命令的设置。
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// New 创建带环境变量支持的 viper 实例。
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// ReadFile 读取配置文件。
// path 为空时在 dir 中查找 .gocomments.yaml，找不到不算错误。
// 返回实际使用的配置文件路径，没有使用时为空。
func ReadFile(v *viper.Viper, path string, dir string) (string, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigType("yaml")
		v.SetConfigName(DefaultConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && path == "" {
			return "", nil
		}
		return "", fmt.Errorf("read config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load 把 viper 中的值解码为 Config 并补齐默认值。
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(cfg)

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	cfg.Format = format

	if cfg.MaxComments < 0 {
		return nil, fmt.Errorf("max_comments must not be negative, got %d", cfg.MaxComments)
	}
	return cfg, nil
}

// applyDefaults 为未设置的字段填充默认值。
func applyDefaults(cfg *Config) {
	if cfg.Format == "" {
		cfg.Format = report.FormatText
	}

	if cfg.MaxComments == 0 {
		cfg.MaxComments = report.DefaultCommentLimit
	}

	if cfg.IgnoreFile == "" {
		cfg.IgnoreFile = selector.DefaultIgnoreFile
	}

	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
}

// SelectorRules 返回默认规则与配置中额外规则合并后的结果。
func (c *Config) SelectorRules() selector.Rules {
	return selector.DefaultRules().Merge(c.Rules)
}

// EffectiveIgnoreFile 返回需要读取的排除文件名，禁用时为空。
func (c *Config) EffectiveIgnoreFile() string {
	if c.NoIgnoreFile {
		return ""
	}
	return c.IgnoreFile
}

// Registry 构造内置符号表，并注册配置中的自定义语言。
func (c *Config) Registry() (*languages.Registry, error) {
	registry := languages.NewRegistry()
	for _, item := range c.Languages {
		syntax := languages.Syntax{
			Name:        item.Name,
			Extensions:  item.Extensions,
			LineMarkers: item.LineMarkers,
		}
		if item.BlockOpen != "" || item.BlockClose != "" {
			syntax.Block = &languages.BlockMarkers{Open: item.BlockOpen, Close: item.BlockClose}
		}
		if err := registry.Register(syntax); err != nil {
			return nil, fmt.Errorf("register language: %w", err)
		}
	}
	return registry, nil
}
