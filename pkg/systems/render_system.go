package systems

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/explode/pkg/components"
	"github.com/gonewx/explode/pkg/ecs"
	"github.com/gonewx/explode/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// maxBatchVertices 单次 DrawTriangles 的顶点上限（uint16 索引）
const maxBatchVertices = 65535 - 3

// ProjectedTriangle 投影到屏幕后的三角形
type ProjectedTriangle struct {
	Fragment ecs.EntityID
	Points   [3][2]float32 // 屏幕坐标
	Depth    float64       // 三个顶点的平均视空间深度
	Color    [4]float32    // 着色后的 RGBA
}

// RenderSystem 碎片渲染
//
// 软件投影 + 平面着色：每帧把所有碎片的三角形变换到世界坐标，
// 按相机投影到屏幕，远的先画（画家算法），最后用 DrawTriangles 批量提交。
// 背景保持透明。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	camera        *game.Camera
	lighting      *game.Lighting

	whiteImage *ebiten.Image // 1x1 白色纹理，首次绘制时创建
	triangles  []ProjectedTriangle
	vertices   []ebiten.Vertex // 顶点数组（复用，避免每帧分配）
	indices    []uint16        // 索引数组（复用，避免每帧分配）
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, camera *game.Camera, lighting *game.Lighting) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		camera:        camera,
		lighting:      lighting,
		triangles:     make([]ProjectedTriangle, 0, 256),
		vertices:      make([]ebiten.Vertex, 0, 768),
		indices:       make([]uint16, 0, 768),
	}
}

// groupOffset 返回 Logo 父节点位置（没有父节点时为原点）
func (s *RenderSystem) groupOffset() mgl64.Vec3 {
	groups := ecs.GetEntitiesWith1[*components.LogoGroupComponent](s.entityManager)
	if len(groups) == 0 {
		return mgl64.Vec3{}
	}
	group, _ := ecs.GetComponent[*components.LogoGroupComponent](s.entityManager, groups[0])
	return group.Position
}

// Collect 计算本帧要绘制的三角形，按深度从远到近排序
// 有顶点落在近裁剪面之后的三角形被丢弃
func (s *RenderSystem) Collect() []ProjectedTriangle {
	s.triangles = s.triangles[:0]
	offset := s.groupOffset()

	ids := ecs.GetEntitiesWith2[*components.TransformComponent, *components.MeshComponent](s.entityManager)
	for _, id := range ids {
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		mesh, _ := ecs.GetComponent[*components.MeshComponent](s.entityManager, id)

		for _, tri := range mesh.Triangles {
			var world [3]mgl64.Vec3
			for i, v := range tri {
				scaled := mgl64.Vec3{v.X() * transform.Scale.X(), v.Y() * transform.Scale.Y(), v.Z() * transform.Scale.Z()}
				world[i] = transform.Orientation.Rotate(scaled).Add(transform.Position).Add(offset)
			}

			// 双面材质：法线总是朝向相机
			normal := world[1].Sub(world[0]).Cross(world[2].Sub(world[0]))
			centroid := world[0].Add(world[1]).Add(world[2]).Mul(1.0 / 3)
			if normal.Dot(s.camera.Position.Sub(centroid)) < 0 {
				normal = normal.Mul(-1)
			}

			projected := ProjectedTriangle{Fragment: id}
			visible := true
			for i, p := range world {
				x, y, depth, ok := s.camera.Project(p)
				if !ok {
					visible = false
					break
				}
				projected.Points[i] = [2]float32{float32(x), float32(y)}
				projected.Depth += depth / 3
			}
			if !visible {
				continue
			}

			shaded := s.lighting.Shade(mesh.Color, normal)
			projected.Color = [4]float32{float32(shaded[0]), float32(shaded[1]), float32(shaded[2]), float32(shaded[3])}
			s.triangles = append(s.triangles, projected)
		}
	}

	sort.SliceStable(s.triangles, func(i, j int) bool {
		return s.triangles[i].Depth > s.triangles[j].Depth
	})
	return s.triangles
}

// Draw 绘制所有碎片
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	triangles := s.Collect()
	if len(triangles) == 0 {
		return
	}

	if s.whiteImage == nil {
		s.whiteImage = ebiten.NewImage(1, 1)
		s.whiteImage.Fill(color.White)
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true

	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	for _, tri := range triangles {
		if len(s.vertices)+3 > maxBatchVertices {
			screen.DrawTriangles(s.vertices, s.indices, s.whiteImage, op)
			s.vertices = s.vertices[:0]
			s.indices = s.indices[:0]
		}

		base := uint16(len(s.vertices))
		for _, p := range tri.Points {
			s.vertices = append(s.vertices, ebiten.Vertex{
				DstX: p[0], DstY: p[1],
				SrcX: 0.5, SrcY: 0.5,
				ColorR: tri.Color[0], ColorG: tri.Color[1], ColorB: tri.Color[2], ColorA: tri.Color[3],
			})
		}
		s.indices = append(s.indices, base, base+1, base+2)
	}

	screen.DrawTriangles(s.vertices, s.indices, s.whiteImage, op)
}
