package components

import "github.com/go-gl/mathgl/mgl64"

// FragmentComponent 标识 Logo 的一个碎片（"triangle"）
// 加载完成时创建，会话期间不会销毁
type FragmentComponent struct {
	Name       string // 重命名后的名称，如 "triangle01"
	Ordinal    int    // 从 1 开始的序号
	SourceName string // 模型文件中的原始节点名，如 "Cube.003"
}

// LogoGroupComponent 碎片的父节点
// 所有碎片的位置都相对于该节点
type LogoGroupComponent struct {
	Name      string     // 节点名称，如 "LogoObject"
	Position  mgl64.Vec3 // 父节点位置（默认原点）
	Fragments int        // 挂在该节点下的碎片数量
}

// TransformComponent 三维变换（相对父节点）
type TransformComponent struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Scale       mgl64.Vec3

	// 加载时的初始值，用于重置和测试"爆炸前静止"
	LoadPosition    mgl64.Vec3
	LoadOrientation mgl64.Quat
}

// NewTransformComponent 创建变换组件并记录初始值
func NewTransformComponent(position mgl64.Vec3, orientation mgl64.Quat, scale mgl64.Vec3) *TransformComponent {
	return &TransformComponent{
		Position:        position,
		Orientation:     orientation,
		Scale:           scale,
		LoadPosition:    position,
		LoadOrientation: orientation,
	}
}

// Displacement 返回相对加载位置的累计位移
func (t *TransformComponent) Displacement() mgl64.Vec3 {
	return t.Position.Sub(t.LoadPosition)
}

// ExplosionComponent 爆炸飞散参数
// 加载时随机生成，之后不再重新计算
type ExplosionComponent struct {
	Direction mgl64.Vec3 // 方向，每个分量在 [-1, 1] 内均匀采样
	Speed     float64    // 速度标量，在 [0, 1] 内均匀采样
	Velocity  mgl64.Vec3 // 逐轴速度 = Direction * Speed
}

// NewExplosionComponent 根据方向和速度标量创建爆炸组件
func NewExplosionComponent(direction mgl64.Vec3, speed float64) *ExplosionComponent {
	return &ExplosionComponent{
		Direction: direction,
		Speed:     speed,
		Velocity: mgl64.Vec3{
			direction.X() * speed,
			direction.Y() * speed,
			direction.Z() * speed,
		},
	}
}

// SpinComponent 碎片自转
// 每个已激活帧绕固定轴旋转固定角度，与帧间隔无关
type SpinComponent struct {
	Axis  mgl64.Vec3 // 单位向量
	Speed float64    // 每帧旋转弧度
	Angle float64    // 累计旋转弧度
}

// MeshComponent 碎片几何体（局部坐标）
type MeshComponent struct {
	Triangles [][3]mgl64.Vec3
	Color     [4]float64 // 线性 RGBA，0-1
}
