package main

import (
	"errors"
	"flag"
	"log"

	"github.com/gonewx/explode/pkg/app"
	"github.com/gonewx/explode/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细日志")
	debug      = flag.Bool("debug", false, "显示调试信息")
	configPath = flag.String("config", "", "场景配置文件路径（默认 data/explode.yaml）")
	modelPath  = flag.String("model", "", "覆盖模型路径（.glb）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	width      = flag.Int("width", 0, "窗口宽度")
	height     = flag.Int("height", 0, "窗口高度")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		ModelPath:  *modelPath,
		Seed:       *seed,
		Width:      *width,
		Height:     *height,
		Debug:      *debug,
	})
	if err != nil {
		log.SetOutput(flag.CommandLine.Output())
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Close()

	window := gameApp.SceneConfig().Window
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	// 透明背景：Logo 叠加在窗口底色之上
	op := &ebiten.RunGameOptions{ScreenTransparent: true}
	if err := ebiten.RunGameWithOptions(gameApp, op); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
