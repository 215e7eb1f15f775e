package components

// OrbitCameraComponent 轨道相机状态
// 相机位于以 Target 为球心的球面上，用球坐标表示。
type OrbitCameraComponent struct {
	// Radius 到目标点的距离
	Radius float64

	// Theta 方位角（弧度），绕 Y 轴
	Theta float64

	// Phi 极角（弧度），0 为正上方
	Phi float64

	// ThetaVelocity/PhiVelocity 每帧角速度（弧度），松开后按弹簧衰减
	ThetaVelocity float64
	PhiVelocity   float64

	// 弹簧内部速度（harmonica 使用，用于把角速度平滑衰减到 0）
	ThetaSpringVel float64
	PhiSpringVel   float64

	// Dragging 是否正在拖动
	Dragging bool

	// LastX/LastY 上一帧指针位置
	LastX, LastY int
}
