package models

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/wireview/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into wireframe bodies.
type GLTFLoader struct {
	// FitSize rescales the loaded body so its largest dimension equals
	// FitSize and centers it on the origin. Zero keeps model coordinates.
	FitSize float64
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		FitSize: 2,
	}
}

// LoadGLTF loads a .gltf or .glb file with the default options.
func LoadGLTF(path string) (*Body, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Body. Line primitives become
// edges as-is; triangle primitives contribute each distinct triangle side
// once. Point and strip/fan triangle primitives are ignored.
func (l *GLTFLoader) Load(path string) (*Body, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	var b wireBuilder
	for _, m := range doc.Meshes {
		if err := b.processMesh(doc, m); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if len(b.vertices) == 0 {
		return nil, fmt.Errorf("%s has no line or triangle geometry: %w", path, ErrInvalidShape)
	}

	body := NewBody(b.vertices, b.edges)
	if l.FitSize > 0 {
		body = body.Fit(l.FitSize)
	}
	return body, nil
}

// wireBuilder accumulates vertices and deduplicated edges across primitives.
type wireBuilder struct {
	vertices []math3d.Vec3
	edges    []Edge
	seen     map[Edge]struct{}
}

func (b *wireBuilder) addEdge(from, to int) {
	if from == to {
		return
	}
	key := E(min(from, to), max(from, to))
	if b.seen == nil {
		b.seen = make(map[Edge]struct{})
	}
	if _, ok := b.seen[key]; ok {
		return
	}
	b.seen[key] = struct{}{}
	b.edges = append(b.edges, E(from, to))
}

// processMesh extracts geometry from a GLTF mesh.
func (b *wireBuilder) processMesh(doc *gltf.Document, m *gltf.Mesh) error {
	for _, prim := range m.Primitives {
		switch prim.Mode {
		case gltf.PrimitiveTriangles, gltf.PrimitiveLines, gltf.PrimitiveLineStrip, gltf.PrimitiveLineLoop:
		default:
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		// Base vertex index for this primitive
		base := len(b.vertices)
		b.vertices = append(b.vertices, positions...)

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}
		for i, idx := range indices {
			if idx >= len(positions) {
				return fmt.Errorf("index %d at %d out of range: %w", idx, i, ErrInvalidShape)
			}
		}

		switch prim.Mode {
		case gltf.PrimitiveLines:
			for i := 0; i+1 < len(indices); i += 2 {
				b.addEdge(base+indices[i], base+indices[i+1])
			}
		case gltf.PrimitiveLineStrip, gltf.PrimitiveLineLoop:
			for i := 0; i+1 < len(indices); i++ {
				b.addEdge(base+indices[i], base+indices[i+1])
			}
			if prim.Mode == gltf.PrimitiveLineLoop && len(indices) > 2 {
				b.addEdge(base+indices[len(indices)-1], base+indices[0])
			}
		default:
			for i := 0; i+2 < len(indices); i += 3 {
				a, c, d := base+indices[i], base+indices[i+1], base+indices[i+2]
				b.addEdge(a, c)
				b.addEdge(c, d)
				b.addEdge(d, a)
			}
		}
	}

	return nil
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range result {
		offset := start + i*stride
		result[i] = math3d.V3(
			float64(readFloat32(data[offset:])),
			float64(readFloat32(data[offset+4:])),
			float64(readFloat32(data[offset+8:])),
		)
	}

	return result, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		offset := start + i*stride
		switch size {
		case 1:
			result[i] = int(data[offset])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[offset:]))
		default:
			result[i] = int(binary.LittleEndian.Uint32(data[offset:]))
		}
	}
	return result, nil
}

// accessorBytes returns the buffer backing an accessor together with the
// first element offset and the element stride, after checking that every
// element fits inside the buffer.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) (data []byte, start, stride int, err error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	if *accessor.BufferView < 0 || *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, 0, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	if bufferView.Buffer < 0 || bufferView.Buffer >= len(doc.Buffers) {
		return nil, 0, 0, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}
	data = doc.Buffers[bufferView.Buffer].Data
	if data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	start = bufferView.ByteOffset + accessor.ByteOffset
	stride = bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	if accessor.Count > 0 {
		end := start + (accessor.Count-1)*stride + elemSize
		if start < 0 || end > len(data) {
			return nil, 0, 0, fmt.Errorf("accessor reads %d..%d past buffer of %d bytes", start, end, len(data))
		}
	}
	return data, start, stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
