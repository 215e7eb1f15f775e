// verify_explosion 无窗口验证爆炸动画
//
// 加载模型后用 60Hz 的模拟时钟驱动激活计时器和爆炸动画，
// 按间隔打印每个碎片的位置，最后输出汇总。相同种子输出相同结果。
//
// 用法:
//
//	go run ./cmd/verify_explosion --frames 600 --seed 1
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/explode/pkg/config"
	"github.com/gonewx/explode/pkg/embedded"
	"github.com/gonewx/explode/pkg/game"
	"github.com/gonewx/explode/pkg/scenes"
	"github.com/gonewx/explode/pkg/utils"
	"golang.org/x/sync/errgroup"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	frames     = flag.Int("frames", 600, "模拟帧数（60Hz）")
	seed       = flag.Int64("seed", 1, "随机种子")
	every      = flag.Int("every", 60, "每隔多少帧打印一次位置（0 只打印汇总）")
	configPath = flag.String("config", config.DefaultExplodeConfigPath, "场景配置文件路径")
	modelPath  = flag.String("model", "", "覆盖模型路径（.glb）")
)

// frameInterval 模拟帧间隔
const frameInterval = time.Second / 60

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "verify_explosion: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadExplodeConfig(*configPath)
	if err != nil {
		return err
	}
	if *modelPath != "" {
		cfg.Model.Path = *modelPath
	}

	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := game.NewManualClock(start)
	scene := scenes.NewExplodeScene(scenes.ExplodeSceneOptions{
		Config: cfg,
		Clock:  clock,
		Reader: embedded.ReadFileOrDisk,
		Input:  func() utils.PointerState { return utils.PointerState{} },
		Rand:   rand.New(rand.NewSource(*seed)),
	})
	defer scene.Close()

	if err := scene.AwaitLoad(ctx); err != nil {
		return fmt.Errorf("load %s: %w", cfg.Model.Path, err)
	}

	initial := scene.Snapshot()
	fmt.Printf("model %s: %d fragments, seed %d, %d frames @ 60Hz\n", cfg.Model.Path, len(initial), *seed, *frames)

	g, ctx := errgroup.WithContext(ctx)
	ticks := make(chan time.Time)

	// 生产者：模拟显示器刷新信号
	g.Go(func() error {
		defer close(ticks)
		for i := 0; i < *frames; i++ {
			select {
			case ticks <- start.Add(time.Duration(i) * frameInterval):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	// 消费者：每帧推进时钟并更新场景
	g.Go(func() error {
		var frameClock game.FrameClock
		return game.RunFrameLoop(ctx, ticks, start, func(timestampMillis float64) error {
			target := start.Add(time.Duration(timestampMillis * float64(time.Millisecond)))
			clock.Advance(target.Sub(clock.Now()))

			scene.Update(frameClock.Tick(timestampMillis))

			n := frameClock.Frames()
			if *every > 0 && n%uint64(*every) == 0 {
				printFrame(scene, n, timestampMillis)
			}
			return nil
		})
	})

	if err := g.Wait(); err != nil {
		return err
	}

	printSummary(scene, initial)
	return nil
}

func printFrame(scene *scenes.ExplodeScene, frame uint64, timestampMillis float64) {
	state := scene.State()
	fmt.Printf("\n== frame %d  t=%.3fs  armed=%v  elapsed=%.3fs\n", frame, timestampMillis/1000, state.IsArmed(), state.Elapsed())
	for _, snap := range scene.Snapshot() {
		fmt.Printf("  %-12s pos=(%8.4f, %8.4f, %8.4f)  angle=%.4f\n",
			snap.Name, snap.Position[0], snap.Position[1], snap.Position[2], snap.Angle)
	}
}

func printSummary(scene *scenes.ExplodeScene, initial []scenes.FragmentSnapshot) {
	fmt.Printf("\n== summary\n")
	for i, snap := range scene.Snapshot() {
		displacement := mgl64.Vec3(snap.Position).Sub(mgl64.Vec3(initial[i].Position)).Len()
		fmt.Printf("  %-12s displacement=%.4f  angle=%.4f\n", snap.Name, displacement, snap.Angle)
	}
}
