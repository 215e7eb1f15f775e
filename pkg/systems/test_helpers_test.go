package systems

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/explode/pkg/components"
	"github.com/gonewx/explode/pkg/config"
	"github.com/gonewx/explode/pkg/ecs"
)

// createTestFragment 创建测试用的碎片实体
// 这是一个测试辅助函数，被多个测试文件共享使用
func createTestFragment(em *ecs.EntityManager, position, velocity mgl64.Vec3) ecs.EntityID {
	cfg := config.DefaultExplodeConfig()
	id := em.CreateEntity()

	em.AddComponent(id, &components.FragmentComponent{Name: "triangle01", Ordinal: 1, SourceName: "Cube"})
	em.AddComponent(id, components.NewTransformComponent(position, mgl64.QuatIdent(), mgl64.Vec3{1, 1, 1}))
	em.AddComponent(id, &components.ExplosionComponent{
		Direction: velocity,
		Speed:     1,
		Velocity:  velocity,
	})
	em.AddComponent(id, &components.SpinComponent{
		Axis:  mgl64.Vec3(cfg.Rotation.Axis).Normalize(),
		Speed: cfg.Rotation.Speed,
	})
	return id
}

// createTestMeshFragment 创建带单个三角形网格的碎片实体
func createTestMeshFragment(em *ecs.EntityManager, position mgl64.Vec3, color [4]float64) ecs.EntityID {
	id := createTestFragment(em, position, mgl64.Vec3{})
	em.AddComponent(id, &components.MeshComponent{
		Triangles: [][3]mgl64.Vec3{{
			{-0.5, -0.5, 0},
			{0.5, -0.5, 0},
			{0, 0.5, 0},
		}},
		Color: color,
	})
	return id
}
