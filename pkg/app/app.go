// Package app 提供应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/explode/pkg/config"
	"github.com/gonewx/explode/pkg/embedded"
	"github.com/gonewx/explode/pkg/game"
	"github.com/gonewx/explode/pkg/scenes"
	"github.com/gonewx/explode/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 场景配置文件路径，为空时使用 data/explode.yaml
	ConfigPath string
	// ModelPath 覆盖配置中的模型路径
	ModelPath string
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// Width/Height 覆盖配置中的窗口尺寸
	Width, Height int
	// Debug 显示调试信息
	Debug bool
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	scene        *scenes.ExplodeScene
	sceneConfig  *config.ExplodeConfig
	clock        game.Clock
	origin       time.Time
	frameClock   game.FrameClock
	lastDelta    float64

	// 视口尺寸（物理像素），在 Layout 中记录，下一次 Update 开始时应用
	width, height int
	pendingResize bool
	laidOut       bool
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	return newApp(cfg, game.SystemClock{})
}

// newApp 使用指定时钟创建应用（测试中传入 ManualClock）
func newApp(cfg Config, clock game.Clock) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = config.DefaultExplodeConfigPath
	}
	sceneConfig, err := config.LoadExplodeConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("场景配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载场景配置: %s", configPath)

	if cfg.ModelPath != "" {
		sceneConfig.Model.Path = cfg.ModelPath
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		sceneConfig.Window.Width = cfg.Width
		sceneConfig.Window.Height = cfg.Height
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("[App] 随机种子: %d", seed)

	scene := scenes.NewExplodeScene(scenes.ExplodeSceneOptions{
		Config: sceneConfig,
		Clock:  clock,
		Reader: embedded.ReadFileOrDisk,
		Rand:   rand.New(rand.NewSource(seed)),
		Width:  sceneConfig.Window.Width,
		Height: sceneConfig.Window.Height,
		Debug:  cfg.Debug,
	})

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(scene)

	return &App{
		sceneManager: sceneManager,
		scene:        scene,
		sceneConfig:  sceneConfig,
		clock:        clock,
		origin:       clock.Now(),
		width:        sceneConfig.Window.Width,
		height:       sceneConfig.Window.Height,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次；TPS 与显示刷新率同步，所以一次 Update 对应一帧
func (a *App) Update() error {
	if !utils.IsMobile() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}

		// F11 切换全屏
		if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
			ebiten.SetFullscreen(!ebiten.IsFullscreen())
		}
	}

	a.step()
	return nil
}

// step 推进一帧：先应用视口变化，再计算帧间隔，最后更新场景
func (a *App) step() {
	if a.pendingResize {
		a.pendingResize = false
		if a.sceneManager.Resize(a.width, a.height) {
			log.Printf("[App] 视口尺寸变化: %dx%d", a.width, a.height)
		}
	}

	timestamp := float64(a.clock.Now().Sub(a.origin)) / float64(time.Millisecond)
	a.lastDelta = a.frameClock.Tick(timestamp)
	a.sceneManager.Update(a.lastDelta)
}

// Draw 绘制画面
// 背景保持透明，由窗口/宿主视图决定底色
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 返回逻辑屏幕尺寸
// 按设备像素比放大，高分屏下以物理像素渲染
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if monitor := ebiten.Monitor(); monitor != nil {
		scale = monitor.DeviceScaleFactor()
	}
	return a.LayoutScaled(outsideWidth, outsideHeight, scale)
}

// LayoutScaled 按指定缩放计算逻辑尺寸，并记录待应用的视口变化
// 第一次调用总是记录，场景据此按真实视口确定视角
func (a *App) LayoutScaled(outsideWidth, outsideHeight int, scale float64) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	width := max(int(float64(outsideWidth)*scale), 1)
	height := max(int(float64(outsideHeight)*scale), 1)

	if !a.laidOut || width != a.width || height != a.height {
		a.laidOut = true
		a.width, a.height = width, height
		a.pendingResize = true
	}
	return width, height
}

// Close 释放场景资源
func (a *App) Close() {
	a.sceneManager.Close()
}

// SceneConfig 返回生效的场景配置
func (a *App) SceneConfig() *config.ExplodeConfig {
	return a.sceneConfig
}

// Scene 返回爆炸场景
func (a *App) Scene() *scenes.ExplodeScene {
	return a.scene
}
