package systems

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/explode/pkg/components"
	"github.com/gonewx/explode/pkg/config"
	"github.com/gonewx/explode/pkg/ecs"
	"github.com/gonewx/explode/pkg/game"
)

const epsilon = 1e-12

func newExplosionTest(velocity mgl64.Vec3) (*ecs.EntityManager, *ExplosionSystem, *game.ManualClock, *game.AnimationState, ecs.EntityID) {
	em := ecs.NewEntityManager()
	clock := game.NewManualClock(time.Unix(0, 0))
	state := game.NewAnimationState(clock)
	id := createTestFragment(em, mgl64.Vec3{}, velocity)
	state.SetFragments([]ecs.EntityID{id})
	system := NewExplosionSystem(em, config.DefaultExplodeConfig().Explosion)
	return em, system, clock, state, id
}

func TestMultiplierAt(t *testing.T) {
	system := NewExplosionSystem(ecs.NewEntityManager(), config.DefaultExplodeConfig().Explosion)

	tests := []struct {
		elapsed float64
		want    float64
	}{
		{0, 7},
		{1.0, 7},
		{1.9, 7}, // 截止点仍属于快速阶段
		{1.9000001, 0.01},
		{3.0, 0.01},
		{6.0, 0.01},
	}
	for _, tt := range tests {
		if got := system.MultiplierAt(tt.elapsed); got != tt.want {
			t.Errorf("MultiplierAt(%v) = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

// TestTwoPhaseMultiplier elapsed=1.0 时位移 0.7，elapsed=3.0 时位移 0.001
func TestTwoPhaseMultiplier(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		wantX   float64
	}{
		{name: "burst phase", elapsed: time.Second, wantX: 1 * 0.1 * 7},
		{name: "drift phase", elapsed: 3 * time.Second, wantX: 1 * 0.1 * 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em, system, clock, state, id := newExplosionTest(mgl64.Vec3{1, 0, 0})
			state.Arm()
			clock.Advance(tt.elapsed)

			system.Update(state, 0.1)

			transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
			if math.Abs(transform.Position.X()-tt.wantX) > epsilon {
				t.Errorf("x delta = %v, want %v", transform.Position.X(), tt.wantX)
			}
			if transform.Position.Y() != 0 || transform.Position.Z() != 0 {
				t.Errorf("y/z should stay 0, got %v", transform.Position)
			}
		})
	}
}

// TestStationaryBeforeArming 未激活时位置和朝向保持加载时的值
func TestStationaryBeforeArming(t *testing.T) {
	em, system, clock, state, id := newExplosionTest(mgl64.Vec3{0.3, -0.2, 0.9})
	transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	spin, _ := ecs.GetComponent[*components.SpinComponent](em, id)

	for frame := 0; frame < 120; frame++ {
		clock.Advance(16 * time.Millisecond)
		system.Update(state, 0.016)
	}

	if transform.Position != transform.LoadPosition {
		t.Errorf("Position changed before arming: %v", transform.Position)
	}
	if transform.Orientation != transform.LoadOrientation {
		t.Errorf("Orientation changed before arming: %v", transform.Orientation)
	}
	if spin.Angle != 0 {
		t.Errorf("Spin angle changed before arming: %v", spin.Angle)
	}
}

// TestPostDurationFreeze 超过 6 秒后位移为 0，自转继续
func TestPostDurationFreeze(t *testing.T) {
	em, system, clock, state, id := newExplosionTest(mgl64.Vec3{1, 1, 1})
	transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	spin, _ := ecs.GetComponent[*components.SpinComponent](em, id)

	state.Arm()
	clock.Advance(6*time.Second + time.Millisecond)

	for frame := 0; frame < 60; frame++ {
		before := transform.Position
		beforeAngle := spin.Angle
		beforeOrientation := transform.Orientation

		system.Update(state, 0.016)
		clock.Advance(16 * time.Millisecond)

		if transform.Position != before {
			t.Fatalf("frame %d: position moved after duration: %v -> %v", frame, before, transform.Position)
		}
		if spin.Angle-beforeAngle <= 0 {
			t.Fatalf("frame %d: rotation stopped after duration", frame)
		}
		if transform.Orientation.ApproxEqual(beforeOrientation) {
			t.Fatalf("frame %d: orientation did not change", frame)
		}
	}
}

// TestDurationBoundaryInclusive elapsed 恰好等于 6 秒时仍然位移（漂移倍率）
func TestDurationBoundaryInclusive(t *testing.T) {
	system := NewExplosionSystem(ecs.NewEntityManager(), config.DefaultExplodeConfig().Explosion)

	delta := system.PositionDelta(mgl64.Vec3{1, 0, 0}, 6.0, 1.0)
	if math.Abs(delta.X()-0.01) > epsilon {
		t.Errorf("delta at elapsed=6.0 = %v, want 0.01", delta.X())
	}

	delta = system.PositionDelta(mgl64.Vec3{1, 0, 0}, 6.0001, 1.0)
	if delta != (mgl64.Vec3{}) {
		t.Errorf("delta after duration = %v, want zero", delta)
	}
}

// TestRotationContinuity 每个已激活帧角度恰好增加 rotationSpeed，与 deltaTime 无关
func TestRotationContinuity(t *testing.T) {
	em, system, clock, state, id := newExplosionTest(mgl64.Vec3{})
	spin, _ := ecs.GetComponent[*components.SpinComponent](em, id)
	transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)

	state.Arm()
	deltas := []float64{0, 0.016, 0.5, 0.001, 2.0, 0.033}

	expected := 0.0
	for i := 0; i < 1000; i++ {
		dt := deltas[i%len(deltas)]
		clock.Advance(time.Duration(dt * float64(time.Second)))
		system.Update(state, dt)

		expected += spin.Speed
		if spin.Angle != expected {
			t.Fatalf("frame %d: angle = %v, want %v", i, spin.Angle, expected)
		}
	}

	// 同轴旋转可交换：累计朝向等于绕轴旋转总角度
	want := mgl64.QuatRotate(expected, spin.Axis)
	if !transform.Orientation.ApproxEqualThreshold(want, 1e-9) && !transform.Orientation.ApproxEqualThreshold(want.Scale(-1), 1e-9) {
		t.Errorf("orientation = %v, want %v", transform.Orientation, want)
	}
}

// TestFirstFrameZeroDelta deltaTime 为 0（第一帧）时不产生位移
func TestFirstFrameZeroDelta(t *testing.T) {
	em, system, _, state, id := newExplosionTest(mgl64.Vec3{1, 1, 1})
	state.Arm()

	system.Update(state, 0)

	transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	if transform.Position != transform.LoadPosition {
		t.Errorf("zero delta should not move fragment, got %v", transform.Position)
	}
}

func TestInvalidDeltaTreatedAsZero(t *testing.T) {
	system := NewExplosionSystem(ecs.NewEntityManager(), config.DefaultExplodeConfig().Explosion)

	for _, dt := range []float64{-0.5, math.NaN(), math.Inf(1)} {
		if delta := system.PositionDelta(mgl64.Vec3{1, 1, 1}, 1.0, dt); delta != (mgl64.Vec3{}) {
			t.Errorf("PositionDelta with dt=%v = %v, want zero", dt, delta)
		}
	}
}

// TestStepSkipsIncompleteFragments 缺少组件的实体被跳过，不会崩溃
func TestStepSkipsIncompleteFragments(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewExplosionSystem(em, config.DefaultExplodeConfig().Explosion)

	bare := em.CreateEntity()
	noExplosion := em.CreateEntity()
	em.AddComponent(noExplosion, components.NewTransformComponent(mgl64.Vec3{1, 2, 3}, mgl64.QuatIdent(), mgl64.Vec3{1, 1, 1}))

	system.Step(true, 1.0, 0.1, []ecs.EntityID{bare, noExplosion, 999})

	transform, _ := ecs.GetComponent[*components.TransformComponent](em, noExplosion)
	if transform.Position != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("fragment without explosion params should not move, got %v", transform.Position)
	}
}

// TestFullTrajectory 完整时间线：快速阶段、漂移阶段、冻结
func TestFullTrajectory(t *testing.T) {
	em, system, clock, state, id := newExplosionTest(mgl64.Vec3{1, 0, 0})
	transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	state.Arm()

	const dt = 0.1
	for i := 0; i < 100; i++ { // 10 秒
		clock.Advance(100 * time.Millisecond)
		system.Update(state, dt)
	}

	// 快速阶段 elapsed = 0.1..1.9 共 19 帧（浮点累加使 1.9 附近可能落在任一侧，允许一帧误差）
	// 漂移阶段到 6.0 秒约 41 帧
	burst := 19 * dt * 7
	drift := 41 * dt * 0.01
	got := transform.Position.X()
	if math.Abs(got-(burst+drift)) > dt*7 {
		t.Errorf("final x = %v, want about %v", got, burst+drift)
	}

	frozen := transform.Position
	clock.Advance(time.Second)
	system.Update(state, dt)
	if transform.Position != frozen {
		t.Error("position should stay frozen after the duration")
	}
}
