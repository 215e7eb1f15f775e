package game

import (
	"sync"
	"time"
)

// Clock 单调时钟
// 动画状态、激活计时器和渲染循环都通过它取时间，测试中可替换为 ManualClock
type Clock interface {
	Now() time.Time
}

// SystemClock 使用系统单调时钟
type SystemClock struct{}

// Now 返回当前时间（带单调读数）
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock 手动推进的时钟
// 用于测试和无窗口模拟（cmd/verify_explosion），可被多个 goroutine 同时访问
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock 创建从 start 开始的手动时钟
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now 返回当前时间
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance 推进时钟；负值被忽略，时钟不会倒退
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d > 0 {
		c.now = c.now.Add(d)
	}
	return c.now
}
