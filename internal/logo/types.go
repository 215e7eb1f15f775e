// Package logo reads the exploding-logo model: a glTF 2.0 scene whose
// root-level nodes carry the individual logo fragments.
package logo

import "github.com/go-gl/mathgl/mgl64"

// DefaultColor is used when a fragment's primitive has no material.
var DefaultColor = [4]float64{0.8, 0.8, 0.8, 1}

// Node is one root-level scene node selected as a logo fragment.
type Node struct {
	// Name is the node name as authored, e.g. "Cube.003".
	Name string

	// Translation, Rotation and Scale are the node's local transform.
	// Rotation defaults to identity and Scale to (1,1,1) when absent.
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
	Scale       mgl64.Vec3

	// Triangles holds the mesh geometry in node-local space.
	// Empty when the node has no mesh.
	Triangles [][3]mgl64.Vec3

	// Color is the linear RGBA base color of the first primitive's material.
	Color [4]float64
}
