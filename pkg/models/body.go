// Package models holds wireframe geometry: immutable bodies of vertices and
// edges, the built-in presets, a name-ordered store, and loaders that build
// bodies from text or glTF files.
package models

import (
	"errors"

	"github.com/taigrr/wireview/pkg/math3d"
)

var (
	// ErrNotFound is returned when a shape name is not registered.
	ErrNotFound = errors.New("shape not found")

	// ErrInvalidShape is returned when a shape cannot be registered or built.
	ErrInvalidShape = errors.New("invalid shape")
)

// Edge connects two vertices of a body by index. Edges are undirected.
type Edge struct {
	From, To int
}

// E creates a new Edge.
func E(from, to int) Edge {
	return Edge{from, to}
}

// Body is an immutable wireframe: ordered vertices and edges between them.
// Edge indices are not validated; renderers skip edges that fall outside
// the vertex range.
type Body struct {
	vertices []math3d.Vec3
	edges    []Edge

	boundsMin math3d.Vec3
	boundsMax math3d.Vec3
}

// NewBody creates a body from copies of the given slices.
func NewBody(vertices []math3d.Vec3, edges []Edge) *Body {
	b := &Body{
		vertices: append([]math3d.Vec3(nil), vertices...),
		edges:    append([]Edge(nil), edges...),
	}
	b.calculateBounds()
	return b
}

// calculateBounds computes the axis-aligned bounding box.
func (b *Body) calculateBounds() {
	if len(b.vertices) == 0 {
		return
	}

	b.boundsMin = b.vertices[0]
	b.boundsMax = b.vertices[0]

	for _, v := range b.vertices[1:] {
		b.boundsMin = b.boundsMin.Min(v)
		b.boundsMax = b.boundsMax.Max(v)
	}
}

// VertexCount returns the number of vertices.
func (b *Body) VertexCount() int {
	return len(b.vertices)
}

// Vertex returns vertex i. It panics if i is out of range.
func (b *Body) Vertex(i int) math3d.Vec3 {
	return b.vertices[i]
}

// EdgeCount returns the number of edges.
func (b *Body) EdgeCount() int {
	return len(b.edges)
}

// Edge returns the vertex indices of edge i.
func (b *Body) Edge(i int) (from, to int) {
	e := b.edges[i]
	return e.From, e.To
}

// Vertices returns a copy of the vertex list.
func (b *Body) Vertices() []math3d.Vec3 {
	return append([]math3d.Vec3(nil), b.vertices...)
}

// Edges returns a copy of the edge list.
func (b *Body) Edges() []Edge {
	return append([]Edge(nil), b.edges...)
}

// Bounds returns the axis-aligned bounding box. Empty bodies report zeros.
func (b *Body) Bounds() (min, max math3d.Vec3) {
	return b.boundsMin, b.boundsMax
}

// Center returns the center of the bounding box.
func (b *Body) Center() math3d.Vec3 {
	return b.boundsMin.Add(b.boundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (b *Body) Size() math3d.Vec3 {
	return b.boundsMax.Sub(b.boundsMin)
}

// Transform returns a new body with every vertex transformed by mat.
func (b *Body) Transform(mat math3d.Mat4) *Body {
	out := &Body{
		vertices: make([]math3d.Vec3, len(b.vertices)),
		edges:    append([]Edge(nil), b.edges...),
	}
	for i, v := range b.vertices {
		out.vertices[i] = mat.MulVec3(v)
	}
	out.calculateBounds()
	return out
}

// Fit returns a copy centered on the origin whose largest dimension is size.
// Degenerate bodies are only centered.
func (b *Body) Fit(size float64) *Body {
	transform := math3d.Translate(b.Center().Negate())

	dims := b.Size()
	if maxDim := max(dims.X, dims.Y, dims.Z); maxDim > 0 && size > 0 {
		s := size / maxDim
		transform = math3d.ScaleUniform(s).Mul(transform)
	}
	return b.Transform(transform)
}
