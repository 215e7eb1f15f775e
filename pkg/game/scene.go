package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a scene of the viewer (currently only the explode scene).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last frame in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，场景需要感知视口尺寸变化时实现
type Resizable interface {
	// Resize 通知新的视口尺寸（像素），返回 true 表示尺寸确实变化
	Resize(width, height int) bool
}

// Closable 是一个可选接口，场景持有后台任务（如异步加载）时实现
//
// 实现此接口的场景会在以下时机被调用 Close()：
//   - 切换到其他场景
//   - 程序退出
type Closable interface {
	Close()
}
