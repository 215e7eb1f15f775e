package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/explode/pkg/components"
	"github.com/gonewx/explode/pkg/config"
	"github.com/gonewx/explode/pkg/ecs"
	"github.com/gonewx/explode/pkg/game"
)

// ExplosionSystem 爆炸动画驱动
//
// 每帧根据激活状态、激活后经过时间和帧间隔更新所有碎片：
//   - 未激活：位置和朝向都不变
//   - 已激活且 elapsed <= duration：position += velocity * deltaTime * multiplier
//     multiplier 在 elapsed <= burstCutoff 时为 burstMultiplier（7），之后为 driftMultiplier（0.01），硬切换
//   - 已激活且 elapsed > duration：位置保持不变
//   - 只要已激活：每帧绕固定轴旋转固定角度，与 deltaTime 无关，永不停止
type ExplosionSystem struct {
	entityManager   *ecs.EntityManager
	duration        float64
	burstCutoff     float64
	burstMultiplier float64
	driftMultiplier float64
}

// NewExplosionSystem 创建爆炸动画系统
func NewExplosionSystem(em *ecs.EntityManager, cfg config.ExplosionConfig) *ExplosionSystem {
	return &ExplosionSystem{
		entityManager:   em,
		duration:        cfg.DurationSeconds,
		burstCutoff:     cfg.BurstCutoffSeconds,
		burstMultiplier: cfg.BurstMultiplier,
		driftMultiplier: cfg.DriftMultiplier,
	}
}

// MultiplierAt 返回指定时刻的速度倍率
func (s *ExplosionSystem) MultiplierAt(elapsed float64) float64 {
	if elapsed > s.burstCutoff {
		return s.driftMultiplier
	}
	return s.burstMultiplier
}

// IsMoving 位移阶段是否仍在进行
func (s *ExplosionSystem) IsMoving(elapsed float64) bool {
	return elapsed <= s.duration
}

// PositionDelta 计算单个碎片本帧的位移
func (s *ExplosionSystem) PositionDelta(velocity mgl64.Vec3, elapsed, deltaTime float64) mgl64.Vec3 {
	deltaTime = sanitizeDelta(deltaTime)
	if !s.IsMoving(elapsed) || deltaTime == 0 {
		return mgl64.Vec3{}
	}

	multiplier := s.MultiplierAt(elapsed)
	return mgl64.Vec3{
		velocity.X() * deltaTime * multiplier,
		velocity.Y() * deltaTime * multiplier,
		velocity.Z() * deltaTime * multiplier,
	}
}

// Update 使用共享动画状态推进一帧
func (s *ExplosionSystem) Update(state *game.AnimationState, deltaTime float64) {
	if !state.IsArmed() {
		return
	}
	s.Step(true, state.Elapsed(), deltaTime, state.Fragments())
}

// Step 推进一帧
//
// 参数:
//   - armed: 是否已激活
//   - elapsed: 激活后经过的秒数
//   - deltaTime: 与上一帧的间隔（秒），负数或 NaN 视为 0
//   - fragments: 碎片实体列表
//
// 缺少组件的实体直接跳过（加载器保证不会出现）。
func (s *ExplosionSystem) Step(armed bool, elapsed, deltaTime float64, fragments []ecs.EntityID) {
	if !armed {
		return
	}

	moving := s.IsMoving(elapsed)

	for _, id := range fragments {
		transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !ok {
			continue
		}

		if moving {
			if explosion, ok := ecs.GetComponent[*components.ExplosionComponent](s.entityManager, id); ok {
				transform.Position = transform.Position.Add(s.PositionDelta(explosion.Velocity, elapsed, deltaTime))
			}
		}

		if spin, ok := ecs.GetComponent[*components.SpinComponent](s.entityManager, id); ok {
			spin.Angle += spin.Speed
			// 绕局部轴旋转：orientation = orientation * q(axis, speed)
			transform.Orientation = transform.Orientation.Mul(mgl64.QuatRotate(spin.Speed, spin.Axis)).Normalize()
		}
	}
}

func sanitizeDelta(deltaTime float64) float64 {
	if math.IsNaN(deltaTime) || math.IsInf(deltaTime, 0) || deltaTime < 0 {
		return 0
	}
	return deltaTime
}
