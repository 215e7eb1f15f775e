package scenes

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/explode/pkg/components"
	"github.com/gonewx/explode/pkg/config"
	"github.com/gonewx/explode/pkg/ecs"
	"github.com/gonewx/explode/pkg/entities"
	"github.com/gonewx/explode/pkg/game"
	"github.com/gonewx/explode/pkg/systems"
	"github.com/gonewx/explode/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// ExplodeSceneOptions 场景依赖
// 零值字段使用默认实现（系统时钟、ebiten 输入、随机种子）
type ExplodeSceneOptions struct {
	Config *config.ExplodeConfig
	Clock  game.Clock
	Reader game.AssetReader
	Input  utils.PointerReader
	Rand   *rand.Rand

	// Width/Height 初始视口尺寸（像素）
	Width, Height int

	// Debug 在左上角显示状态信息
	Debug bool
}

// ExplodeScene 爆炸 Logo 场景
//
// 创建时搭建相机和灯光，并在后台加载模型；模型加载完成前只渲染空场景。
// 每帧依次执行：轮询加载结果 -> 激活计时 -> 爆炸动画 -> 轨道控制。
type ExplodeScene struct {
	config        *config.ExplodeConfig
	entityManager *ecs.EntityManager
	state         *game.AnimationState
	camera        *game.Camera
	lighting      *game.Lighting
	rng           *rand.Rand
	input         utils.PointerReader
	debug         bool

	armingSystem    *systems.ArmingSystem
	explosionSystem *systems.ExplosionSystem
	orbitSystem     *systems.OrbitSystem
	renderSystem    *systems.RenderSystem

	loadResults <-chan game.LoadResult
	cancelLoad  context.CancelFunc
	loaded      bool
	loadErr     error
	logoGroup   ecs.EntityID
	frames      uint64

	// viewportKnown 是否已收到真实视口尺寸
	viewportKnown bool
}

// NewExplodeScene 创建场景并开始异步加载模型
func NewExplodeScene(opts ExplodeSceneOptions) *ExplodeScene {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultExplodeConfig()
	}
	clock := opts.Clock
	if clock == nil {
		clock = game.SystemClock{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	input := opts.Input
	if input == nil {
		input = utils.NewPointerReader()
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = cfg.Window.Width, cfg.Window.Height
	}

	em := ecs.NewEntityManager()
	state := game.NewAnimationState(clock)
	camera := game.NewCamera(cfg.Camera, width, height)
	lighting := game.NewLighting(cfg.Lights)

	scene := &ExplodeScene{
		config:          cfg,
		entityManager:   em,
		state:           state,
		camera:          camera,
		lighting:        lighting,
		rng:             rng,
		input:           input,
		debug:           opts.Debug,
		armingSystem:    systems.NewArmingSystem(state, clock, time.Duration(cfg.Explosion.ArmDelayMs)*time.Millisecond),
		explosionSystem: systems.NewExplosionSystem(em, cfg.Explosion),
		orbitSystem:     systems.NewOrbitSystem(em, camera, cfg.Orbit),
		renderSystem:    systems.NewRenderSystem(em, camera, lighting),
	}

	log.Printf("[ExplodeScene] 绘制目标: %s, 视口 %dx%d, fov %.2f°", cfg.Scene.Name, width, height, camera.FOV)

	if opts.Reader != nil {
		ctx, cancel := context.WithCancel(context.Background())
		scene.cancelLoad = cancel
		scene.loadResults = game.LoadLogoAsync(ctx, opts.Reader, cfg.Model.Path, cfg.Model.NameFilter)
	} else {
		log.Printf("[ExplodeScene] 警告: 未提供资源读取函数，场景中没有碎片")
		scene.loaded = true
	}

	return scene
}

// Update 推进一帧
func (s *ExplodeScene) Update(deltaTime float64) {
	s.frames++
	s.pollLoader()

	s.armingSystem.Update()
	s.explosionSystem.Update(s.state, deltaTime)
	s.orbitSystem.Update(s.input())
}

// pollLoader 非阻塞地检查加载结果
func (s *ExplodeScene) pollLoader() {
	if s.loaded || s.loadResults == nil {
		return
	}
	select {
	case result, ok := <-s.loadResults:
		if ok {
			s.applyLoadResult(result)
		}
	default:
	}
}

// applyLoadResult 注册碎片并一次性发布碎片列表
// 加载失败只记录警告，场景继续渲染（没有碎片）
func (s *ExplodeScene) applyLoadResult(result game.LoadResult) {
	s.loaded = true
	if result.Err != nil {
		s.loadErr = result.Err
		log.Printf("[ExplodeScene] 警告: 模型加载失败，继续显示空场景: %v", result.Err)
		return
	}

	group, ids := entities.NewFragmentEntities(s.entityManager, result.Nodes, s.config, s.rng)
	s.logoGroup = group
	s.state.SetFragments(ids)
	log.Printf("[ExplodeScene] 注册 %d 个碎片 (%s), 实体总数 %d", len(ids), result.Path, s.entityManager.EntityCount())
}

// AwaitLoad 阻塞等待模型加载完成并应用结果
// 只用于无窗口模式和测试；窗口模式下由 Update 轮询
func (s *ExplodeScene) AwaitLoad(ctx context.Context) error {
	if s.loaded || s.loadResults == nil {
		return s.loadErr
	}
	select {
	case result, ok := <-s.loadResults:
		if ok {
			s.applyLoadResult(result)
		} else {
			s.loaded = true
		}
		return s.loadErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Draw 绘制场景
func (s *ExplodeScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen)

	if s.debug {
		ebitenutil.DebugPrintAt(screen, s.DebugText(), 4, 4)
	}
}

// DebugText 调试信息
func (s *ExplodeScene) DebugText() string {
	status := "loading"
	switch {
	case s.LoadError() != nil:
		status = fmt.Sprintf("load failed: %v", s.LoadError())
	case s.loaded:
		status = fmt.Sprintf("%d fragments", len(s.state.Fragments()))
	}
	return fmt.Sprintf("%s\nframe %d  armed %v  t=%.2fs\nTPS %.0f  FPS %.0f",
		status, s.frames, s.state.IsArmed(), s.state.Elapsed(), ebiten.ActualTPS(), ebiten.ActualFPS())
}

// Resize 视口尺寸变化时更新相机
// 第一次收到的尺寸是真实视口，按它确定视角；之后只更新宽高比
func (s *ExplodeScene) Resize(width, height int) bool {
	if !s.viewportKnown {
		s.viewportKnown = true
		changed := s.camera.Bootstrap(width, height)
		log.Printf("[ExplodeScene] 视口 %dx%d, fov %.2f°", s.camera.Width, s.camera.Height, s.camera.FOV)
		return changed
	}
	return s.camera.Resize(width, height)
}

// Close 取消尚未完成的加载
func (s *ExplodeScene) Close() {
	if s.cancelLoad != nil {
		s.cancelLoad()
	}
}

// State 动画状态
func (s *ExplodeScene) State() *game.AnimationState {
	return s.state
}

// EntityManager 场景的实体管理器
func (s *ExplodeScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Camera 场景相机
func (s *ExplodeScene) Camera() *game.Camera {
	return s.camera
}

// Loaded 模型加载是否已结束（成功或失败）
func (s *ExplodeScene) Loaded() bool {
	return s.loaded
}

// LoadError 加载失败的原因，成功或未结束时为 nil
func (s *ExplodeScene) LoadError() error {
	return s.loadErr
}

// FragmentSnapshot 碎片当前状态，用于打印和测试
type FragmentSnapshot struct {
	Name     string
	Position [3]float64
	Angle    float64
}

// Snapshot 按序号返回所有碎片的当前状态
func (s *ExplodeScene) Snapshot() []FragmentSnapshot {
	ids := s.state.Fragments()
	out := make([]FragmentSnapshot, 0, len(ids))
	for _, id := range ids {
		fragment, ok1 := ecs.GetComponent[*components.FragmentComponent](s.entityManager, id)
		transform, ok2 := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !ok1 || !ok2 {
			continue
		}
		snap := FragmentSnapshot{
			Name:     fragment.Name,
			Position: [3]float64(transform.Position),
		}
		if spin, ok := ecs.GetComponent[*components.SpinComponent](s.entityManager, id); ok {
			snap.Angle = spin.Angle
		}
		out = append(out, snap)
	}
	return out
}
