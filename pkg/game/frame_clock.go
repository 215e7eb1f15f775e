package game

import "math"

// FrameClock 帧间隔计算
//
// deltaTime = (当前时间戳 - 上一帧时间戳) / 1000，单位秒。
// 第一帧没有上一帧，返回 0，避免碎片在第一帧跳到很远的位置；
// 时间戳倒退或非法时同样返回 0。
type FrameClock struct {
	previous    float64
	hasPrevious bool
	frames      uint64
}

// Tick 记录一帧并返回与上一帧的间隔（秒）
// timestampMillis: 帧时间戳（毫秒）
func (c *FrameClock) Tick(timestampMillis float64) float64 {
	c.frames++

	if math.IsNaN(timestampMillis) || math.IsInf(timestampMillis, 0) {
		return 0
	}

	if !c.hasPrevious {
		c.previous = timestampMillis
		c.hasPrevious = true
		return 0
	}

	delta := (timestampMillis - c.previous) / 1000
	c.previous = timestampMillis
	if delta < 0 {
		return 0
	}
	return delta
}

// Frames 已记录的帧数
func (c *FrameClock) Frames() uint64 {
	return c.frames
}

// Reset 回到初始状态，下一帧间隔为 0
func (c *FrameClock) Reset() {
	*c = FrameClock{}
}
