package pkg

import (
	"errors"
	"fmt"
	"io/fs"
	"lxoreader/internal/lxob"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type LogConfig struct {
	LogPath    string `mapstructure:"log_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
	Level      string `mapstructure:"level"`
}

// DecodeConfig 解码相关配置，对应 lxob.Options
type DecodeConfig struct {
	RequireLxob    bool     `mapstructure:"require_lxob"`    // 非 LXOB 文件是否直接拒绝
	Locate         string   `mapstructure:"locate"`          // walk|scan
	ExpectedSize   int      `mapstructure:"expected_size"`   // 0 表示不检查
	ExpectedChunks int      `mapstructure:"expected_chunks"` // 0 表示不检查
	RequirePoints  bool     `mapstructure:"require_points"`  // 缺少 PNTS 块是否报错
	Extensions     []string `mapstructure:"extensions"`      // 允许的文件扩展名
}

// Options 转换为解码选项
func (d DecodeConfig) Options() (lxob.Options, error) {
	mode, err := lxob.ParseLocateMode(d.Locate)
	if err != nil {
		return lxob.Options{}, err
	}
	return lxob.Options{
		RequireLxob:        d.RequireLxob,
		Locate:             mode,
		ExpectedSize:       d.ExpectedSize,
		ExpectedChunkCount: d.ExpectedChunks,
		RequirePoints:      d.RequirePoints,
	}, nil
}

// ServerConfig http 接口配置，Para 为自定义配置项，由 Info 解析
type ServerConfig struct {
	Addr string                 `mapstructure:"addr"`
	Para map[string]interface{} `mapstructure:"config"`
}

// ServerInfo http 接口的专属配置
type ServerInfo struct {
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxBody      int64         `mapstructure:"max_body"` // 请求体最大字节数
	AllowOrigins []string      `mapstructure:"allow_origins"`
}

// Info 将 Para 解码为 ServerInfo，未配置的项使用默认值
func (s ServerConfig) Info() (ServerInfo, error) {
	info := ServerInfo{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		MaxBody:      64 << 20,
		AllowOrigins: []string{"*"},
	}
	if len(s.Para) == 0 {
		return info, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &info,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return ServerInfo{}, fmt.Errorf("创建解码器失败: %w", err)
	}
	if err := decoder.Decode(s.Para); err != nil {
		return ServerInfo{}, fmt.Errorf("server.config 解析失败: %w", err)
	}
	if info.MaxBody <= 0 {
		return ServerInfo{}, fmt.Errorf("server.config 的 max_body 必须大于 0, 实际为 %d", info.MaxBody)
	}
	return info, nil
}

type Config struct {
	Log     LogConfig    `mapstructure:"log"`
	Decode  DecodeConfig `mapstructure:"decode"`
	Server  ServerConfig `mapstructure:"server"`
	Version string       `mapstructure:"version"`
}

var defaults = map[string]any{
	"log::level":              "info",
	"log::max_size":           100,
	"log::max_backups":        3,
	"log::max_age":            30,
	"decode::require_lxob":    true,
	"decode::locate":          string(lxob.LocateWalk),
	"decode::require_points":  false,
	"decode::expected_size":   0,
	"decode::expected_chunks": 0,
	"decode::extensions":      []string{"lxo"},
	"server::addr":            ":8080",
}

// DefaultConfig 没有配置文件时使用的配置
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: "info", MaxSize: 100, MaxBackups: 3, MaxAge: 30},
		Decode: DecodeConfig{
			RequireLxob: true,
			Locate:      string(lxob.LocateWalk),
			Extensions:  []string{"lxo"},
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// InitCommon 用于初始化全局配置。
// 读取 configDir 及其子目录下所有 yaml 文件并合并；目录不存在时只使用默认值。
// 环境变量以 LXOB_ 为前缀覆盖配置，例如 LXOB_DECODE_LOCATE=scan。
func InitCommon(configDir string) (*Config, *viper.Viper, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix("LXOB")
	v.SetEnvKeyReplacer(strings.NewReplacer("::", "_"))
	v.AutomaticEnv() // 读取环境变量

	if configDir != "" {
		if _, err := os.Stat(configDir); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("访问路径 %s 失败: %w", configDir, err)
		} else if err == nil {
			if err := mergeConfigDir(v, configDir); err != nil {
				return nil, nil, err
			}
		}
	}

	var common Config
	// 反序列化到结构体
	if err := v.Unmarshal(&common); err != nil {
		return nil, nil, fmt.Errorf("反序列化配置失败: %w", err)
	}
	if _, err := common.Decode.Options(); err != nil {
		return nil, nil, fmt.Errorf("decode 配置错误: %w", err)
	}
	return &common, v, nil
}

// mergeConfigDir 遍历配置目录及其子目录中的所有 yaml 文件，后读到的覆盖先读到的
func mergeConfigDir(v *viper.Viper, configDir string) error {
	return filepath.WalkDir(configDir, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("访问路径 %s 失败: %w", filePath, err)
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(filePath)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		v.SetConfigFile(filePath)
		if err := v.MergeInConfig(); err != nil {
			return fmt.Errorf("读取配置文件失败 %s: %w", filePath, err)
		}
		return nil
	})
}
