// Package utils 提供通用工具函数
package utils

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// PointerState 存储当前帧的指针输入状态
// 用于统一处理鼠标和触摸输入，轨道控制只依赖这个结构，不直接调用 ebiten
type PointerState struct {
	// Pressed 鼠标左键按下或有一个触摸点
	Pressed bool
	// X, Y 指针位置（逻辑像素）
	X, Y int
	// Zoom 本帧缩放量：滚轮向上为正；双指张开为正
	Zoom float64
}

// PointerReader 读取一帧输入
type PointerReader func() PointerState

// PinchTracker 记录双指间距，用于把捏合手势换算为缩放量
type PinchTracker struct {
	lastDistance float64
	active       bool
}

// pinchScale 双指间距变化多少像素相当于一格滚轮
const pinchScale = 40.0

// Update 根据本帧两个触摸点的距离返回缩放量
// 只有一个或没有触摸点时结束手势并返回 0
func (p *PinchTracker) Update(touches int, distance float64) float64 {
	if touches < 2 {
		p.active = false
		return 0
	}
	if !p.active {
		p.active = true
		p.lastDistance = distance
		return 0
	}
	zoom := (distance - p.lastDistance) / pinchScale
	p.lastDistance = distance
	return zoom
}

// NewPointerReader 创建读取 ebiten 输入的函数
// 优先检测触摸（移动设备），其次鼠标（桌面设备）；移动模式下只响应触摸
func NewPointerReader() PointerReader {
	pinch := &PinchTracker{}
	touchOnly := IsMobile()
	var touchIDs []ebiten.TouchID

	return func() PointerState {
		state := PointerState{}

		touchIDs = ebiten.AppendTouchIDs(touchIDs[:0])
		switch {
		case len(touchIDs) >= 2:
			// 双指：只缩放，不旋转
			x0, y0 := ebiten.TouchPosition(touchIDs[0])
			x1, y1 := ebiten.TouchPosition(touchIDs[1])
			distance := math.Hypot(float64(x1-x0), float64(y1-y0))
			state.Zoom = pinch.Update(len(touchIDs), distance)
			state.X, state.Y = (x0+x1)/2, (y0+y1)/2
			return state
		case len(touchIDs) == 1:
			pinch.Update(1, 0)
			state.Pressed = true
			state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
			return state
		}
		pinch.Update(0, 0)
		if touchOnly {
			return state
		}

		state.X, state.Y = ebiten.CursorPosition()
		state.Pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
		_, wheelY := ebiten.Wheel()
		state.Zoom = wheelY
		return state
	}
}
