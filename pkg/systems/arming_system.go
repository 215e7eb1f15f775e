package systems

import (
	"log"
	"time"

	"github.com/gonewx/explode/pkg/game"
)

// ArmingSystem 一次性激活计时器
//
// 启动后经过 delay（默认 2000ms）激活动画状态，只触发一次，不可取消。
// 每帧对照时钟检查，不依赖帧间隔累加，所以第一帧间隔为 0 或加载卡顿都不影响触发时刻。
type ArmingSystem struct {
	state     *game.AnimationState
	clock     game.Clock
	startedAt time.Time
	delay     time.Duration
	fired     bool
}

// NewArmingSystem 创建激活计时器，从当前时刻开始计时
func NewArmingSystem(state *game.AnimationState, clock game.Clock, delay time.Duration) *ArmingSystem {
	return &ArmingSystem{
		state:     state,
		clock:     clock,
		startedAt: clock.Now(),
		delay:     delay,
	}
}

// Update 检查是否到达激活时刻
// 返回 true 表示本帧完成了激活
func (s *ArmingSystem) Update() bool {
	if s.fired {
		return false
	}

	if s.clock.Now().Sub(s.startedAt) < s.delay {
		return false
	}

	s.fired = true
	if s.state.Arm() {
		log.Printf("[ArmingSystem] 爆炸已激活 (delay=%v, fragments=%d)", s.delay, len(s.state.Fragments()))
		return true
	}
	return false
}

// Remaining 距离激活还剩多少时间，已激活时为 0
func (s *ArmingSystem) Remaining() time.Duration {
	if s.fired {
		return 0
	}
	remaining := s.delay - s.clock.Now().Sub(s.startedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}
