package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/gonewx/explode/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultExplodeConfigPath 默认配置文件路径
const DefaultExplodeConfigPath = "data/explode.yaml"

// ExplodeConfig 爆炸 Logo 场景配置
//
// 包含场景、模型、爆炸动画、自转、相机、灯光、轨道控制和窗口的全部参数。
// 未在 YAML 中出现的字段保留 DefaultExplodeConfig() 中的默认值。
//
// 配置文件位置: data/explode.yaml
type ExplodeConfig struct {
	Scene     SceneConfig     `yaml:"scene"`
	Model     ModelConfig     `yaml:"model"`
	Explosion ExplosionConfig `yaml:"explosion"`
	Rotation  RotationConfig  `yaml:"rotation"`
	Camera    CameraConfig    `yaml:"camera"`
	Lights    LightsConfig    `yaml:"lights"`
	Orbit     OrbitConfig     `yaml:"orbit"`
	Window    WindowConfig    `yaml:"window"`
}

// SceneConfig 场景标识
type SceneConfig struct {
	// Name 场景名称，同时作为绘制目标的标识
	Name string `yaml:"name"`

	// LogoGroupName 碎片父节点名称
	LogoGroupName string `yaml:"logoGroupName"`
}

// ModelConfig 模型资源配置
type ModelConfig struct {
	// Path 模型文件路径（.glb）
	Path string `yaml:"path"`

	// NameFilter 节点名包含该子串（区分大小写）即视为碎片
	NameFilter string `yaml:"nameFilter"`

	// FragmentPrefix 碎片重命名前缀，如 "triangle" -> triangle01
	FragmentPrefix string `yaml:"fragmentPrefix"`
}

// ExplosionConfig 爆炸动画参数
type ExplosionConfig struct {
	// ArmDelayMs 启动后延迟多少毫秒开始爆炸
	ArmDelayMs int `yaml:"armDelayMs"`

	// DurationSeconds 位移阶段持续时间（秒），之后碎片停在原地但继续自转
	DurationSeconds float64 `yaml:"durationSeconds"`

	// BurstCutoffSeconds 快速阶段截止时间（秒），硬切换，不做插值
	BurstCutoffSeconds float64 `yaml:"burstCutoffSeconds"`

	// BurstMultiplier 快速阶段速度倍率
	BurstMultiplier float64 `yaml:"burstMultiplier"`

	// DriftMultiplier 慢速漂移阶段速度倍率
	DriftMultiplier float64 `yaml:"driftMultiplier"`

	// Direction 方向分量的采样范围
	Direction Range `yaml:"direction"`

	// Speed 速度标量的采样范围
	Speed Range `yaml:"speed"`
}

// Range 均匀采样区间 [Min, Max]
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// RotationConfig 碎片自转参数
type RotationConfig struct {
	// Axis 自转轴（加载时归一化）
	Axis [3]float64 `yaml:"axis"`

	// Speed 每帧旋转角度（弧度），与帧间隔无关
	Speed float64 `yaml:"speed"`
}

// CameraConfig 透视相机参数
type CameraConfig struct {
	// HorizontalFOV 期望的水平视角（度），竖屏时按宽高比缩小
	HorizontalFOV float64 `yaml:"horizontalFov"`

	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
}

// LightsConfig 灯光参数
type LightsConfig struct {
	Hemisphere  HemisphereLightConfig  `yaml:"hemisphere"`
	Directional DirectionalLightConfig `yaml:"directional"`
}

// HemisphereLightConfig 半球光：上方天空色、下方地面色
type HemisphereLightConfig struct {
	Sky       RGB     `yaml:"sky"`
	Ground    RGB     `yaml:"ground"`
	Intensity float64 `yaml:"intensity"`
}

// DirectionalLightConfig 平行光
type DirectionalLightConfig struct {
	Color     RGB        `yaml:"color"`
	Intensity float64    `yaml:"intensity"`
	Position  [3]float64 `yaml:"position"`
	Target    [3]float64 `yaml:"target"`
}

// RGB 0-255 颜色分量
type RGB [3]uint8

// Color 转换为 color.RGBA
func (c RGB) Color() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

// OrbitConfig 轨道控制参数
type OrbitConfig struct {
	// RotateSpeed 拖动旋转灵敏度（拖过整个屏幕高度 = 2π * RotateSpeed）
	RotateSpeed float64 `yaml:"rotateSpeed"`

	// ZoomSpeed 滚轮缩放灵敏度
	ZoomSpeed float64 `yaml:"zoomSpeed"`

	MinDistance float64 `yaml:"minDistance"`
	MaxDistance float64 `yaml:"maxDistance"`

	// MinPolar/MaxPolar 极角限制（弧度），避免翻转到正上方/正下方
	MinPolar float64 `yaml:"minPolar"`
	MaxPolar float64 `yaml:"maxPolar"`

	// Damping 松开后是否保留惯性并逐渐衰减
	Damping bool `yaml:"damping"`

	// DampingFrequency/DampingRatio 衰减弹簧参数（harmonica）
	DampingFrequency float64 `yaml:"dampingFrequency"`
	DampingRatio     float64 `yaml:"dampingRatio"`

	// FPS 弹簧步进使用的帧率
	FPS int `yaml:"fps"`
}

// WindowConfig 桌面窗口参数
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// DefaultExplodeConfig 返回默认配置
func DefaultExplodeConfig() *ExplodeConfig {
	return &ExplodeConfig{
		Scene: SceneConfig{
			Name:          "explode",
			LogoGroupName: "LogoObject",
		},
		Model: ModelConfig{
			Path:           "assets/objects/logo.glb",
			NameFilter:     "Cube",
			FragmentPrefix: "triangle",
		},
		Explosion: ExplosionConfig{
			ArmDelayMs:         2000,
			DurationSeconds:    6,
			BurstCutoffSeconds: 1.9,
			BurstMultiplier:    7,
			DriftMultiplier:    0.01,
			Direction:          Range{Min: -1, Max: 1},
			Speed:              Range{Min: 0, Max: 1},
		},
		Rotation: RotationConfig{
			Axis:  [3]float64{-1, -1, -1},
			Speed: 0.003,
		},
		Camera: CameraConfig{
			HorizontalFOV: 40,
			Near:          1,
			Far:           1000,
			Position:      [3]float64{0, 0, -15},
			Target:        [3]float64{0, 0, 0},
		},
		Lights: LightsConfig{
			Hemisphere: HemisphereLightConfig{
				Sky:       RGB{115, 145, 155},
				Ground:    RGB{80, 115, 130},
				Intensity: 1,
			},
			Directional: DirectionalLightConfig{
				Color:     RGB{100, 100, 100},
				Intensity: 0.7,
				Position:  [3]float64{20, 20, -10},
				Target:    [3]float64{0, 0, 0},
			},
		},
		Orbit: OrbitConfig{
			RotateSpeed:      1,
			ZoomSpeed:        1,
			MinDistance:      2,
			MaxDistance:      200,
			MinPolar:         0.01,
			MaxPolar:         math.Pi - 0.01,
			Damping:          true,
			DampingFrequency: 4,
			DampingRatio:     1,
			FPS:              60,
		},
		Window: WindowConfig{
			Title:  "Explode",
			Width:  1280,
			Height: 720,
		},
	}
}

// LoadExplodeConfig 加载爆炸场景配置
//
// 先读嵌入资源，找不到时回退磁盘；YAML 中缺省的字段保留默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/explode.yaml"）
//
// 返回:
//   - *ExplodeConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败
func LoadExplodeConfig(path string) (*ExplodeConfig, error) {
	data, err := embedded.ReadFileOrDisk(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read explode config: %w", err)
	}
	return ParseExplodeConfig(data)
}

// ParseExplodeConfig 从 YAML 字节解析配置
func ParseExplodeConfig(data []byte) (*ExplodeConfig, error) {
	config := DefaultExplodeConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse explode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid explode config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
func (c *ExplodeConfig) Validate() error {
	var errs []error

	if c.Model.Path == "" {
		errs = append(errs, errors.New("model path is empty"))
	}
	if c.Model.NameFilter == "" {
		errs = append(errs, errors.New("model name filter is empty"))
	}

	e := c.Explosion
	if e.ArmDelayMs < 0 {
		errs = append(errs, fmt.Errorf("arm delay must be >= 0, got %d", e.ArmDelayMs))
	}
	if e.DurationSeconds <= 0 {
		errs = append(errs, fmt.Errorf("explosion duration must be > 0, got %f", e.DurationSeconds))
	}
	if e.BurstCutoffSeconds < 0 || e.BurstCutoffSeconds > e.DurationSeconds {
		errs = append(errs, fmt.Errorf("burst cutoff %f outside [0, %f]", e.BurstCutoffSeconds, e.DurationSeconds))
	}
	if e.Direction.Min > e.Direction.Max {
		errs = append(errs, fmt.Errorf("direction range invalid: min %f > max %f", e.Direction.Min, e.Direction.Max))
	}
	if e.Speed.Min > e.Speed.Max {
		errs = append(errs, fmt.Errorf("speed range invalid: min %f > max %f", e.Speed.Min, e.Speed.Max))
	}

	axis := c.Rotation.Axis
	if axis[0] == 0 && axis[1] == 0 && axis[2] == 0 {
		errs = append(errs, errors.New("rotation axis must be non-zero"))
	}

	cam := c.Camera
	if cam.HorizontalFOV <= 0 || cam.HorizontalFOV >= 180 {
		errs = append(errs, fmt.Errorf("horizontal fov must be in (0, 180), got %f", cam.HorizontalFOV))
	}
	if cam.Near <= 0 || cam.Near >= cam.Far {
		errs = append(errs, fmt.Errorf("camera clip range invalid: near %f, far %f", cam.Near, cam.Far))
	}
	if cam.Position == cam.Target {
		errs = append(errs, errors.New("camera position equals target"))
	}

	o := c.Orbit
	if o.MinDistance <= 0 || o.MinDistance > o.MaxDistance {
		errs = append(errs, fmt.Errorf("orbit distance range invalid: min %f, max %f", o.MinDistance, o.MaxDistance))
	}
	if o.MinPolar < 0 || o.MaxPolar > math.Pi || o.MinPolar >= o.MaxPolar {
		errs = append(errs, fmt.Errorf("orbit polar range invalid: min %f, max %f", o.MinPolar, o.MaxPolar))
	}
	if o.Damping && o.FPS <= 0 {
		errs = append(errs, fmt.Errorf("orbit damping fps must be > 0, got %d", o.FPS))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size invalid: %dx%d", c.Window.Width, c.Window.Height))
	}

	return errors.Join(errs...)
}
