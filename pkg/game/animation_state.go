package game

import (
	"time"

	"github.com/gonewx/explode/pkg/ecs"
)

// AnimationState 爆炸动画的共享状态
//
// 由场景持有并以指针传给激活系统和爆炸系统：
//   - armed: 一旦激活永不回退（没有 Disarm 操作）
//   - armedAt: 激活时刻，Elapsed() 从这里开始计时
//   - fragments: 碎片实体列表，加载完成时一次性整体赋值
type AnimationState struct {
	clock     Clock
	armed     bool
	armedAt   time.Time
	fragments []ecs.EntityID
}

// NewAnimationState 创建未激活、无碎片的动画状态
func NewAnimationState(clock Clock) *AnimationState {
	if clock == nil {
		clock = SystemClock{}
	}
	return &AnimationState{
		clock:     clock,
		fragments: []ecs.EntityID{},
	}
}

// Arm 激活爆炸
// 只有第一次调用生效并记录激活时刻，返回值表示本次调用是否完成了激活
func (s *AnimationState) Arm() bool {
	if s.armed {
		return false
	}
	s.armed = true
	s.armedAt = s.clock.Now()
	return true
}

// IsArmed 是否已激活
func (s *AnimationState) IsArmed() bool {
	return s.armed
}

// ArmedAt 激活时刻，未激活时为零值
func (s *AnimationState) ArmedAt() time.Time {
	return s.armedAt
}

// Elapsed 激活后经过的秒数，未激活时为 0
// 基于单调时钟，不会减小
func (s *AnimationState) Elapsed() float64 {
	if !s.armed {
		return 0
	}
	elapsed := s.clock.Now().Sub(s.armedAt).Seconds()
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Fragments 当前碎片列表（加载完成前为空）
func (s *AnimationState) Fragments() []ecs.EntityID {
	return s.fragments
}

// SetFragments 整体替换碎片列表
// 调用方保证一次传入完整列表，渲染循环不会看到部分填充的列表
func (s *AnimationState) SetFragments(ids []ecs.EntityID) {
	s.fragments = ids
}
