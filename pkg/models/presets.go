package models

import "github.com/taigrr/wireview/pkg/math3d"

// Preset names, in registration order.
const (
	PresetSphere  = "Sphere"
	PresetCube    = "Cube"
	PresetPyramid = "Pyramid"
)

// The "Sphere" preset is an octahedral diamond.
var (
	diamondVertices = [...]math3d.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 0.5, Z: 0},
		{X: 0, Y: 0.5, Z: 1},
		{X: -1, Y: 0.5, Z: 0},
		{X: 0, Y: 0.5, Z: -1},
	}
	diamondEdges = [...]Edge{
		// Lower pyramid
		{0, 2}, {0, 3}, {0, 4}, {0, 5},
		// Belt
		{2, 3}, {3, 4}, {4, 5}, {5, 2},
		// Upper pyramid
		{1, 2}, {1, 3}, {1, 4}, {1, 5},
	}

	cubeVertices = [...]math3d.Vec3{
		{X: -1, Y: -1, Z: -1}, // 0: bottom-left-back
		{X: 1, Y: -1, Z: -1},  // 1: bottom-right-back
		{X: 1, Y: 1, Z: -1},   // 2: top-right-back
		{X: -1, Y: 1, Z: -1},  // 3: top-left-back
		{X: -1, Y: -1, Z: 1},  // 4: bottom-left-front
		{X: 1, Y: -1, Z: 1},   // 5: bottom-right-front
		{X: 1, Y: 1, Z: 1},    // 6: top-right-front
		{X: -1, Y: 1, Z: 1},   // 7: top-left-front
	}
	cubeEdges = [...]Edge{
		// Back face
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		// Front face
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		// Connecting edges
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}

	pyramidVertices = [...]math3d.Vec3{
		{X: 0, Y: 1, Z: 0}, // apex
		{X: -1, Y: 0, Z: -1},
		{X: 1, Y: 0, Z: -1},
		{X: 1, Y: 0, Z: 1},
		{X: -1, Y: 0, Z: 1},
	}
	pyramidEdges = [...]Edge{
		{0, 1}, {0, 2}, {0, 3}, {0, 4},
		{1, 2}, {2, 3}, {3, 4}, {4, 1},
	}
)

// Diamond returns the six-vertex diamond registered as "Sphere".
func Diamond() *Body {
	return NewBody(diamondVertices[:], diamondEdges[:])
}

// Cube returns a cube spanning -1..1 on every axis.
func Cube() *Body {
	return NewBody(cubeVertices[:], cubeEdges[:])
}

// Pyramid returns a square pyramid with its apex at y=1.
func Pyramid() *Body {
	return NewBody(pyramidVertices[:], pyramidEdges[:])
}

// NewPresetStore returns a store holding the built-in shapes.
func NewPresetStore() *Store {
	s := NewStore()
	s.mustRegister(PresetSphere, Diamond())
	s.mustRegister(PresetCube, Cube())
	s.mustRegister(PresetPyramid, Pyramid())
	return s
}
