package game

import (
	"context"
	"time"
)

// FrameFunc 每帧回调，timestampMillis 为相对 origin 的毫秒数
// 返回错误时循环停止
type FrameFunc func(timestampMillis float64) error

// RunFrameLoop 可取消的帧循环
//
// 从 ticks 读取帧信号，每个信号调用一次 frame，前一帧返回后才会处理下一帧。
// 退出条件：
//   - ctx 取消：返回 ctx.Err()
//   - ticks 关闭：返回 nil
//   - frame 返回错误：返回该错误
//
// 桌面端由 ebiten 驱动帧，此函数用于无窗口模拟和测试。
func RunFrameLoop(ctx context.Context, ticks <-chan time.Time, origin time.Time, frame FrameFunc) error {
	for {
		// 先检查取消，保证取消后不再执行任何一帧
		if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case tick, ok := <-ticks:
			if !ok {
				return nil
			}
			timestamp := float64(tick.Sub(origin)) / float64(time.Millisecond)
			if err := frame(timestamp); err != nil {
				return err
			}
		}
	}
}
