package entities

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/explode/internal/logo"
	"github.com/gonewx/explode/pkg/components"
	"github.com/gonewx/explode/pkg/config"
	"github.com/gonewx/explode/pkg/ecs"
)

// FragmentName 生成碎片名称：前缀 + 至少两位的序号
// 例如 FragmentName("triangle", 1) = "triangle01"，第 100 个为 "triangle100"
func FragmentName(prefix string, ordinal int) string {
	return fmt.Sprintf("%s%02d", prefix, ordinal)
}

// RandomInRange 在 [min, max) 内均匀采样
func RandomInRange(rng *rand.Rand, r config.Range) float64 {
	return rng.Float64()*(r.Max-r.Min) + r.Min
}

// NewLogoGroupEntity 创建碎片的父节点实体（位于原点）
func NewLogoGroupEntity(manager *ecs.EntityManager, name string, fragments int) ecs.EntityID {
	id := manager.CreateEntity()
	manager.AddComponent(id, &components.LogoGroupComponent{
		Name:      name,
		Position:  mgl64.Vec3{0, 0, 0},
		Fragments: fragments,
	})
	return id
}

// NewFragmentEntity 为一个模型节点创建碎片实体
// 参数:
//   - manager: EntityManager 实例
//   - node: 模型中筛选出的节点
//   - ordinal: 从 1 开始的序号
//   - cfg: 场景配置（命名前缀、随机范围、自转参数）
//   - rng: 随机数源（可设种子以复现轨迹）
//
// 返回: 创建的实体ID
func NewFragmentEntity(manager *ecs.EntityManager, node logo.Node, ordinal int, cfg *config.ExplodeConfig, rng *rand.Rand) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.FragmentComponent{
		Name:       FragmentName(cfg.Model.FragmentPrefix, ordinal),
		Ordinal:    ordinal,
		SourceName: node.Name,
	})

	manager.AddComponent(id, components.NewTransformComponent(node.Translation, node.Rotation, node.Scale))

	manager.AddComponent(id, &components.MeshComponent{
		Triangles: node.Triangles,
		Color:     node.Color,
	})

	// 爆炸方向和速度只在加载时采样一次，速度 = 方向 * 速度标量
	direction := mgl64.Vec3{
		RandomInRange(rng, cfg.Explosion.Direction),
		RandomInRange(rng, cfg.Explosion.Direction),
		RandomInRange(rng, cfg.Explosion.Direction),
	}
	speed := RandomInRange(rng, cfg.Explosion.Speed)
	manager.AddComponent(id, components.NewExplosionComponent(direction, speed))

	manager.AddComponent(id, &components.SpinComponent{
		Axis:  mgl64.Vec3(cfg.Rotation.Axis).Normalize(),
		Speed: cfg.Rotation.Speed,
	})

	return id
}

// NewFragmentEntities 为全部节点创建碎片实体并挂到 Logo 父节点下
//
// 返回的列表按节点顺序排列，序号从 1 开始；调用方应一次性发布该列表。
func NewFragmentEntities(manager *ecs.EntityManager, nodes []logo.Node, cfg *config.ExplodeConfig, rng *rand.Rand) (ecs.EntityID, []ecs.EntityID) {
	group := NewLogoGroupEntity(manager, cfg.Scene.LogoGroupName, len(nodes))

	ids := make([]ecs.EntityID, 0, len(nodes))
	for i, node := range nodes {
		ids = append(ids, NewFragmentEntity(manager, node, i+1, cfg, rng))
	}

	return group, ids
}
