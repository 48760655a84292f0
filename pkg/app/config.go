package app

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/decker502/uistate/pkg/config"
)

// Config 定义应用启动配置
// 先从环境变量读取，再由命令行参数覆盖
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool `env:"UISTATE_VERBOSE"`
	// AppName gdata 存储使用的应用名
	AppName string `env:"UISTATE_APP_NAME" envDefault:"uistate"`
	// LayoutPath 布局文件路径，data/ 开头时优先使用内嵌资源
	LayoutPath string `env:"UISTATE_LAYOUT" envDefault:"data/layout.yaml"`
}

// ParseConfig 解析环境变量和命令行参数
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "显示详细调试信息")
	fs.StringVar(&cfg.AppName, "app", cfg.AppName, "存储目录使用的应用名")
	fs.StringVar(&cfg.LayoutPath, "layout", cfg.LayoutPath, "布局文件路径")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.AppName == "" {
		return Config{}, fmt.Errorf("app name must not be empty")
	}
	if cfg.LayoutPath == "" {
		cfg.LayoutPath = config.DefaultLayoutPath
	}
	return cfg, nil
}
