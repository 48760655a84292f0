//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	cp -r data mobile/ && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.uistate -o build/android/uistate.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	cp -r data mobile/ && ebitenmobile bind -target ios -tags mobile -o build/ios/UIState.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/uistate/pkg/app"
	"github.com/decker502/uistate/pkg/config"
	"github.com/decker502/uistate/pkg/embedded"
)

func init() {
	// 初始化内嵌资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	// 移动端没有命令行和环境变量，使用固定配置
	cfg := app.Config{
		Verbose:    true,
		AppName:    "uistate",
		LayoutPath: config.DefaultLayoutPath,
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
