package logo

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// ErrNoScene is returned when the document has no scene to read nodes from.
var ErrNoScene = errors.New("gltf document has no scene")

// Decode parses a binary (.glb) or JSON (.gltf with embedded buffers) model.
//
// Parameters:
//   - data: raw file content, e.g. the bytes of "assets/objects/logo.glb"
//
// Returns:
//   - *gltf.Document: the decoded document with buffers loaded
//   - error: decoding error, or nil if successful
func Decode(data []byte) (*gltf.Document, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode gltf: %w", err)
	}
	return doc, nil
}

// ExtractFragments selects the root-level nodes of the document's default
// scene whose name contains filter (case-sensitive substring match) and
// returns them in scene order. Every other node is ignored, including
// nested children of the root nodes.
//
// Example:
//
//	doc, _ := logo.Decode(data)
//	nodes, err := logo.ExtractFragments(doc, "Cube")
func ExtractFragments(doc *gltf.Document, filter string) ([]Node, error) {
	if len(doc.Scenes) == 0 {
		return nil, ErrNoScene
	}

	sceneIndex := 0
	if doc.Scene != nil {
		sceneIndex = *doc.Scene
	}
	if sceneIndex < 0 || sceneIndex >= len(doc.Scenes) {
		return nil, fmt.Errorf("default scene %d out of range (%d scenes)", sceneIndex, len(doc.Scenes))
	}

	var nodes []Node
	for _, nodeIndex := range doc.Scenes[sceneIndex].Nodes {
		if nodeIndex < 0 || nodeIndex >= len(doc.Nodes) {
			return nil, fmt.Errorf("scene references missing node %d", nodeIndex)
		}
		src := doc.Nodes[nodeIndex]
		if !strings.Contains(src.Name, filter) {
			continue
		}

		translation, rotation, scale := transformOf(src)
		node := Node{
			Name:        src.Name,
			Translation: translation,
			Rotation:    rotation,
			Scale:       scale,
			Color:       DefaultColor,
		}

		if src.Mesh != nil {
			triangles, color, err := readMesh(doc, *src.Mesh)
			if err != nil {
				return nil, fmt.Errorf("node %q: %w", src.Name, err)
			}
			node.Triangles = triangles
			node.Color = color
		}

		nodes = append(nodes, node)
	}

	return nodes, nil
}

// transformOf returns the node's local translation, rotation and scale.
// A node carries either TRS properties or a column-major matrix; when the
// matrix is set (not zero, not identity) it is decomposed, otherwise the
// TRS values are used with glTF defaults for missing parts.
func transformOf(n *gltf.Node) (mgl64.Vec3, mgl64.Quat, mgl64.Vec3) {
	if n.Matrix != ([16]float64{}) && n.Matrix != gltf.DefaultMatrix {
		return decomposeMatrix(mgl64.Mat4(n.Matrix))
	}
	return translationOf(n), rotationOf(n), scaleOf(n)
}

// decomposeMatrix splits an affine transform without shear into T * R * S.
func decomposeMatrix(m mgl64.Mat4) (mgl64.Vec3, mgl64.Quat, mgl64.Vec3) {
	translation := m.Col(3).Vec3()

	axes := [3]mgl64.Vec3{m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3()}
	scale := mgl64.Vec3{axes[0].Len(), axes[1].Len(), axes[2].Len()}
	// mirrored transforms keep a proper rotation by flipping one axis
	if axes[0].Cross(axes[1]).Dot(axes[2]) < 0 {
		scale[0] = -scale[0]
	}

	var rot mgl64.Mat4
	for i, axis := range axes {
		if scale[i] != 0 {
			axis = axis.Mul(1 / scale[i])
		}
		rot.SetCol(i, axis.Vec4(0))
	}
	rot.SetCol(3, mgl64.Vec4{0, 0, 0, 1})

	return translation, mgl64.Mat4ToQuat(rot).Normalize(), scale
}

func translationOf(n *gltf.Node) mgl64.Vec3 {
	t := n.Translation
	return mgl64.Vec3{t[0], t[1], t[2]}
}

func rotationOf(n *gltf.Node) mgl64.Quat {
	r := n.Rotation
	if r == ([4]float64{}) {
		return mgl64.QuatIdent()
	}
	// glTF stores quaternions as (x, y, z, w)
	return mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}.Normalize()
}

func scaleOf(n *gltf.Node) mgl64.Vec3 {
	s := n.Scale
	if s == ([3]float64{}) {
		return mgl64.Vec3{1, 1, 1}
	}
	return mgl64.Vec3{s[0], s[1], s[2]}
}

// readMesh flattens the triangle primitives of a mesh into a triangle list.
// Non-triangle primitives (points, lines, strips) are skipped.
func readMesh(doc *gltf.Document, meshIndex int) ([][3]mgl64.Vec3, [4]float64, error) {
	color := DefaultColor
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return nil, color, fmt.Errorf("mesh %d out of range", meshIndex)
	}

	var triangles [][3]mgl64.Vec3
	colorSet := false
	for _, prim := range doc.Meshes[meshIndex].Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posAccessor, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		if posAccessor < 0 || posAccessor >= len(doc.Accessors) {
			return nil, color, fmt.Errorf("position accessor %d out of range", posAccessor)
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posAccessor], nil)
		if err != nil {
			return nil, color, fmt.Errorf("failed to read positions: %w", err)
		}

		var indices []uint32
		if prim.Indices != nil {
			if *prim.Indices < 0 || *prim.Indices >= len(doc.Accessors) {
				return nil, color, fmt.Errorf("index accessor %d out of range", *prim.Indices)
			}
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, color, fmt.Errorf("failed to read indices: %w", err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			var tri [3]mgl64.Vec3
			for k := 0; k < 3; k++ {
				idx := int(indices[i+k])
				if idx >= len(positions) {
					return nil, color, fmt.Errorf("index %d out of range (%d positions)", idx, len(positions))
				}
				p := positions[idx]
				tri[k] = mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
			}
			triangles = append(triangles, tri)
		}

		if !colorSet {
			color = materialColor(doc, prim.Material)
			colorSet = true
		}
	}

	return triangles, color, nil
}

func materialColor(doc *gltf.Document, material *int) [4]float64 {
	if material == nil || *material < 0 || *material >= len(doc.Materials) {
		return DefaultColor
	}
	pbr := doc.Materials[*material].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return DefaultColor
	}
	return *pbr.BaseColorFactor
}
