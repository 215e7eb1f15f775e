package systems

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/explode/pkg/components"
	"github.com/gonewx/explode/pkg/config"
	"github.com/gonewx/explode/pkg/ecs"
	"github.com/gonewx/explode/pkg/game"
	"github.com/gonewx/explode/pkg/utils"
)

// zoomBase 每格滚轮的缩放比例
const zoomBase = 0.95

// OrbitSystem 轨道相机控制
// 拖动绕目标点旋转，滚轮/双指缩放距离；松开后角速度由弹簧衰减到 0。
type OrbitSystem struct {
	entityManager *ecs.EntityManager
	camera        *game.Camera
	config        config.OrbitConfig
	spring        harmonica.Spring
	cameraEntity  ecs.EntityID
}

// NewOrbitSystem 创建轨道控制系统，并根据相机当前位置初始化球坐标
func NewOrbitSystem(em *ecs.EntityManager, camera *game.Camera, cfg config.OrbitConfig) *OrbitSystem {
	s := &OrbitSystem{
		entityManager: em,
		camera:        camera,
		config:        cfg,
	}
	if cfg.Damping {
		s.spring = harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.DampingFrequency, cfg.DampingRatio)
	}

	offset := camera.Position.Sub(camera.Target)
	radius := offset.Len()
	phi := math.Pi / 2
	if radius > 0 {
		phi = math.Acos(mgl64.Clamp(offset.Y()/radius, -1, 1))
	}

	s.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, s.cameraEntity, &components.OrbitCameraComponent{
		Radius: radius,
		Theta:  math.Atan2(offset.X(), offset.Z()),
		Phi:    phi,
	})

	return s
}

// CameraEntity 返回轨道相机实体
func (s *OrbitSystem) CameraEntity() ecs.EntityID {
	return s.cameraEntity
}

// Update 根据本帧输入更新相机位置
func (s *OrbitSystem) Update(input utils.PointerState) {
	orbit, ok := ecs.GetComponent[*components.OrbitCameraComponent](s.entityManager, s.cameraEntity)
	if !ok {
		return
	}

	switch {
	case input.Pressed && !orbit.Dragging:
		// 按下的第一帧只记录位置，避免跳变
		orbit.Dragging = true
		orbit.LastX, orbit.LastY = input.X, input.Y
		orbit.ThetaVelocity, orbit.PhiVelocity = 0, 0
		orbit.ThetaSpringVel, orbit.PhiSpringVel = 0, 0

	case input.Pressed:
		// 拖过整个屏幕高度 = 旋转 2π * RotateSpeed
		height := float64(max(s.camera.Height, 1))
		scale := 2 * math.Pi / height * s.config.RotateSpeed
		orbit.ThetaVelocity = -float64(input.X-orbit.LastX) * scale
		orbit.PhiVelocity = -float64(input.Y-orbit.LastY) * scale
		orbit.LastX, orbit.LastY = input.X, input.Y

	default:
		orbit.Dragging = false
		if s.config.Damping {
			orbit.ThetaVelocity, orbit.ThetaSpringVel = s.spring.Update(orbit.ThetaVelocity, orbit.ThetaSpringVel, 0)
			orbit.PhiVelocity, orbit.PhiSpringVel = s.spring.Update(orbit.PhiVelocity, orbit.PhiSpringVel, 0)
		} else {
			orbit.ThetaVelocity, orbit.PhiVelocity = 0, 0
		}
	}

	orbit.Theta += orbit.ThetaVelocity
	orbit.Phi = mgl64.Clamp(orbit.Phi+orbit.PhiVelocity, s.config.MinPolar, s.config.MaxPolar)

	if input.Zoom != 0 {
		orbit.Radius *= math.Pow(zoomBase, s.config.ZoomSpeed*input.Zoom)
	}
	orbit.Radius = mgl64.Clamp(orbit.Radius, s.config.MinDistance, s.config.MaxDistance)

	s.camera.SetPosition(s.camera.Target.Add(OrbitOffset(orbit.Radius, orbit.Theta, orbit.Phi)))
}

// OrbitOffset 球坐标转相对目标点的偏移
//
//	x = r·sinφ·sinθ, y = r·cosφ, z = r·sinφ·cosθ
func OrbitOffset(radius, theta, phi float64) mgl64.Vec3 {
	sinPhi := math.Sin(phi)
	return mgl64.Vec3{
		radius * sinPhi * math.Sin(theta),
		radius * math.Cos(phi),
		radius * sinPhi * math.Cos(theta),
	}
}
