package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/explode/pkg/config"
)

func expectedFOV(hfov, w, h float64) float64 {
	if h > w {
		hfov /= h / w
	}
	return math.Atan(math.Tan(hfov/2*math.Pi/180)/(w/h)) * 2 * 180 / math.Pi
}

func TestComputeFOV(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{name: "landscape", width: 1280, height: 720},
		{name: "portrait", width: 720, height: 1280},
		{name: "square", width: 800, height: 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFOV(40, tt.width, tt.height)
			want := expectedFOV(40, float64(tt.width), float64(tt.height))
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("ComputeFOV() = %f, want %f", got, want)
			}
		})
	}

	// 正方形视口：垂直视角等于水平视角
	if got := ComputeFOV(40, 500, 500); math.Abs(got-40) > 1e-9 {
		t.Errorf("Square viewport fov should be 40, got %f", got)
	}

	// 竖屏时视角比横屏更大（需要看到同样宽度）
	if ComputeFOV(40, 720, 1280) <= ComputeFOV(40, 1280, 720) {
		t.Error("Portrait fov should be larger than landscape fov")
	}
}

// TestCameraBootstrapIdempotent 相同视口创建两次得到相同视角
func TestCameraBootstrapIdempotent(t *testing.T) {
	cfg := config.DefaultExplodeConfig().Camera
	a := NewCamera(cfg, 1920, 1080)
	b := NewCamera(cfg, 1920, 1080)

	if a.FOV != b.FOV {
		t.Errorf("FOV differs between identical bootstraps: %f vs %f", a.FOV, b.FOV)
	}
	if a.ViewProjection() != b.ViewProjection() {
		t.Error("View-projection differs between identical bootstraps")
	}
}

func TestCameraResize(t *testing.T) {
	cfg := config.DefaultExplodeConfig().Camera
	cam := NewCamera(cfg, 1280, 720)
	fov := cam.FOV

	if cam.Resize(1280, 720) {
		t.Error("Resize to the same size should report no change")
	}
	if !cam.Resize(640, 720) {
		t.Fatal("Resize to a new size should report a change")
	}
	if math.Abs(cam.Aspect-640.0/720.0) > 1e-12 {
		t.Errorf("Aspect not updated, got %f", cam.Aspect)
	}
	if cam.FOV != fov {
		t.Errorf("Resize must not recompute fov: %f -> %f", fov, cam.FOV)
	}

	// 零尺寸被视为 1 像素，不会除零
	cam.Resize(0, 0)
	if cam.Width != 1 || cam.Height != 1 {
		t.Errorf("Zero size should clamp to 1x1, got %dx%d", cam.Width, cam.Height)
	}
}

func TestCameraBootstrap(t *testing.T) {
	cfg := config.DefaultExplodeConfig().Camera
	// 创建时使用配置中的窗口尺寸，真实视口是竖屏手机
	cam := NewCamera(cfg, 1280, 720)

	if !cam.Bootstrap(390, 844) {
		t.Fatal("Bootstrap to a new viewport should report a change")
	}
	if want := ComputeFOV(40, 390, 844); cam.FOV != want {
		t.Errorf("Expected fov %f for 390x844, got %f", want, cam.FOV)
	}
	if math.Abs(cam.Aspect-390.0/844.0) > 1e-12 {
		t.Errorf("Aspect not updated, got %f", cam.Aspect)
	}
	if cam.Bootstrap(390, 844) {
		t.Error("Bootstrap with the same viewport should report no change")
	}

	// 与直接按该视口创建的相机一致
	direct := NewCamera(cfg, 390, 844)
	if cam.ViewProjection() != direct.ViewProjection() {
		t.Error("Bootstrapped camera should match a camera created for the same viewport")
	}
}

func TestCameraProject(t *testing.T) {
	cfg := config.DefaultExplodeConfig().Camera
	cam := NewCamera(cfg, 800, 600)

	x, y, depth, ok := cam.Project(mgl64.Vec3{0, 0, 0})
	if !ok {
		t.Fatal("Origin should be visible")
	}
	if math.Abs(x-400) > 1e-6 || math.Abs(y-300) > 1e-6 {
		t.Errorf("Origin should project to screen center, got (%f, %f)", x, y)
	}
	if math.Abs(depth-15) > 1e-6 {
		t.Errorf("Origin depth should be 15, got %f", depth)
	}

	// 相机在 -Z 看向 +Z：世界 +X 出现在屏幕左侧，+Y 在上方
	x, y, _, _ = cam.Project(mgl64.Vec3{1, 1, 0})
	if x >= 400 {
		t.Errorf("+X should appear left of center, got x=%f", x)
	}
	if y >= 300 {
		t.Errorf("+Y should appear above center, got y=%f", y)
	}

	if _, _, _, ok := cam.Project(mgl64.Vec3{0, 0, -20}); ok {
		t.Error("Point behind the camera should not be visible")
	}
}

func TestCameraSetPosition(t *testing.T) {
	cfg := config.DefaultExplodeConfig().Camera
	cam := NewCamera(cfg, 800, 600)
	cam.SetPosition(mgl64.Vec3{15, 0, 0})

	// 目标点仍然在屏幕中心
	x, y, depth, ok := cam.Project(mgl64.Vec3{0, 0, 0})
	if !ok || math.Abs(x-400) > 1e-6 || math.Abs(y-300) > 1e-6 {
		t.Errorf("Target should stay centered, got (%f, %f, ok=%v)", x, y, ok)
	}
	if math.Abs(depth-15) > 1e-6 {
		t.Errorf("Expected depth 15, got %f", depth)
	}
}
