package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/explode/pkg/config"
)

// Lighting 场景灯光：半球光 + 平行光
// 平面着色，每个三角形按其法线计算一次
type Lighting struct {
	Sky                  mgl64.Vec3 // 天空色（0-1）
	Ground               mgl64.Vec3 // 地面色（0-1）
	HemisphereIntensity  float64
	Directional          mgl64.Vec3 // 平行光颜色（0-1）
	DirectionalIntensity float64
	ToLight              mgl64.Vec3 // 指向光源的单位向量
}

func rgbVec(c config.RGB) mgl64.Vec3 {
	return mgl64.Vec3{float64(c[0]) / 255, float64(c[1]) / 255, float64(c[2]) / 255}
}

// NewLighting 根据配置创建灯光
func NewLighting(cfg config.LightsConfig) *Lighting {
	toLight := mgl64.Vec3(cfg.Directional.Position).Sub(mgl64.Vec3(cfg.Directional.Target))
	if toLight.Len() > 0 {
		toLight = toLight.Normalize()
	}

	return &Lighting{
		Sky:                  rgbVec(cfg.Hemisphere.Sky),
		Ground:               rgbVec(cfg.Hemisphere.Ground),
		HemisphereIntensity:  cfg.Hemisphere.Intensity,
		Directional:          rgbVec(cfg.Directional.Color),
		DirectionalIntensity: cfg.Directional.Intensity,
		ToLight:              toLight,
	}
}

// Shade 计算表面颜色
//
// 半球光按法线朝上的程度在地面色与天空色之间插值；
// 平行光使用 Lambert 漫反射。结果各分量截断到 [0, 1]，alpha 保持不变。
func (l *Lighting) Shade(base [4]float64, normal mgl64.Vec3) [4]float64 {
	if normal.Len() == 0 {
		return base
	}
	n := normal.Normalize()

	w := 0.5*n.Y() + 0.5
	light := l.Ground.Mul(1 - w).Add(l.Sky.Mul(w)).Mul(l.HemisphereIntensity)

	lambert := math.Max(0, n.Dot(l.ToLight))
	light = light.Add(l.Directional.Mul(l.DirectionalIntensity * lambert))

	return [4]float64{
		clamp01(base[0] * light[0]),
		clamp01(base[1] * light[1]),
		clamp01(base[2] * light[2]),
		base[3],
	}
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
