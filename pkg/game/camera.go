package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/explode/pkg/config"
)

// Camera 透视相机
//
// 视角按第一次得到的真实视口计算一次（保证水平方向约 40° 可见，见 Bootstrap），
// 之后视口尺寸变化只更新宽高比和投影矩阵。
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	FOV    float64 // 垂直视角（度）
	Aspect float64
	Near   float64
	Far    float64

	Width  int // 视口宽度（像素）
	Height int // 视口高度（像素）

	horizontalFOV float64 // 期望的水平视角（度）

	view           mgl64.Mat4
	projection     mgl64.Mat4
	viewProjection mgl64.Mat4
}

// ComputeFOV 根据期望的水平视角计算垂直视角（度）
//
// 竖屏（高 > 宽）时先把水平视角除以 高/宽，避免 Logo 超出屏幕：
//
//	fov = 2 * atan(tan(hfov/2) / aspect)
//
// 相同输入总是得到相同结果。
func ComputeFOV(horizontalFOV float64, width, height int) float64 {
	w := float64(max(width, 1))
	h := float64(max(height, 1))
	aspect := w / h

	hfov := horizontalFOV
	if h > w {
		hfov /= h / w
	}

	return mgl64.RadToDeg(math.Atan(math.Tan(mgl64.DegToRad(hfov/2))/aspect) * 2)
}

// NewCamera 创建相机并看向目标点
func NewCamera(cfg config.CameraConfig, width, height int) *Camera {
	width = max(width, 1)
	height = max(height, 1)

	c := &Camera{
		Position: mgl64.Vec3(cfg.Position),
		Target:   mgl64.Vec3(cfg.Target),
		Up:       mgl64.Vec3{0, 1, 0},
		FOV:      ComputeFOV(cfg.HorizontalFOV, width, height),
		Aspect:   float64(width) / float64(height),
		Near:     cfg.Near,
		Far:      cfg.Far,
		Width:    width,
		Height:   height,

		horizontalFOV: cfg.HorizontalFOV,
	}
	c.updateProjection()
	c.updateView()
	return c
}

// Bootstrap 按真实视口重新计算视角、宽高比和投影
// 创建相机时窗口可能还没有真实尺寸（移动端），第一次拿到视口时调用一次；
// 返回 true 表示尺寸或视角发生了变化
func (c *Camera) Bootstrap(width, height int) bool {
	width = max(width, 1)
	height = max(height, 1)
	fov := ComputeFOV(c.horizontalFOV, width, height)
	if width == c.Width && height == c.Height && fov == c.FOV {
		return false
	}

	c.Width = width
	c.Height = height
	c.Aspect = float64(width) / float64(height)
	c.FOV = fov
	c.updateProjection()
	return true
}

// Resize 视口尺寸变化时更新宽高比和投影
// 返回 true 表示尺寸确实变化了
func (c *Camera) Resize(width, height int) bool {
	width = max(width, 1)
	height = max(height, 1)
	if width == c.Width && height == c.Height {
		return false
	}

	c.Width = width
	c.Height = height
	c.Aspect = float64(width) / float64(height)
	c.updateProjection()
	return true
}

// SetPosition 移动相机，保持看向目标点
func (c *Camera) SetPosition(position mgl64.Vec3) {
	c.Position = position
	c.updateView()
}

func (c *Camera) updateProjection() {
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
	c.viewProjection = c.projection.Mul4(c.view)
}

func (c *Camera) updateView() {
	c.view = mgl64.LookAtV(c.Position, c.Target, c.Up)
	c.viewProjection = c.projection.Mul4(c.view)
}

// ViewProjection 返回投影矩阵 * 视图矩阵
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.viewProjection
}

// Project 将世界坐标投影到屏幕像素坐标
//
// 返回:
//   - x, y: 屏幕坐标（左上角为原点）
//   - depth: 到相机的视空间距离，用于排序
//   - ok: 点在近裁剪面之前时为 false
func (c *Camera) Project(p mgl64.Vec3) (x, y, depth float64, ok bool) {
	clip := c.viewProjection.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w < c.Near {
		return 0, 0, 0, false
	}

	ndc := clip.Vec3().Mul(1 / w)
	x = (ndc.X() + 1) * 0.5 * float64(c.Width)
	y = (1 - ndc.Y()) * 0.5 * float64(c.Height)
	return x, y, w, true
}
