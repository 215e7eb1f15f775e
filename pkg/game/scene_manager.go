package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene is closed if it implements Closable.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if closable, ok := sm.currentScene.(Closable); ok && sm.currentScene != scene {
		closable.Close()
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景
//
// 返回：
//   - Scene: 当前场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last frame in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Resize 把视口尺寸转发给当前场景
// 返回 true 表示场景确认尺寸发生了变化
func (sm *SceneManager) Resize(width, height int) bool {
	if resizable, ok := sm.currentScene.(Resizable); ok {
		return resizable.Resize(width, height)
	}
	return false
}

// Close 关闭当前场景（程序退出时调用）
func (sm *SceneManager) Close() {
	if closable, ok := sm.currentScene.(Closable); ok {
		closable.Close()
	}
	sm.currentScene = nil
}
