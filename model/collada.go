package model

import (
	"encoding/xml"
	"errors"
	"fmt"
	"sync"

	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/kengine/util/collada"
)

// package errors
var (
	ErrNoGeometry  = errors.New("collada document has no geometry")
	ErrNoSource    = errors.New("source type not found")
	ErrBadIndex    = errors.New("collada index out of range")
	ErrUnsupported = errors.New("unsupported model format")
)

// ImportColladaObject reads given file and converts Collada object to
// engine's internal object. Only the first geometry is imported.
func ImportColladaObject(fileContents []byte) (*ColladaObject, error) {
	var colladaModel collada.Collada
	if err := xml.Unmarshal(fileContents, &colladaModel); err != nil {
		return nil, err
	}
	if len(colladaModel.Geometries) == 0 {
		return nil, ErrNoGeometry
	}

	mesh := colladaModel.Geometries[0].Mesh
	positions, ok := mesh.PositionSource()
	if !ok {
		return nil, fmt.Errorf("%w: positions", ErrNoSource)
	}
	vertexInput, _ := mesh.Triangles.Input("VERTEX")

	var (
		normals     collada.Source
		normalInput collada.Input
		hasNormals  bool
	)
	if in, ok := mesh.Triangles.Input("NORMAL"); ok {
		if normals, ok = mesh.SourceByID(in.Source); !ok {
			return nil, fmt.Errorf("%w: %s", ErrNoSource, in.Source)
		}
		normalInput, hasNormals = in, true
	}

	stride := mesh.Triangles.Stride()
	count := len(mesh.Triangles.Index) / stride
	vertices := make([]Vertex, 0, count)
	for idx := 0; idx < count; idx++ {
		indices := mesh.Triangles.Index[stride*idx : stride*idx+stride]

		var vert Vertex
		pos, err := vec3At(positions.Floats.Data, indices[vertexInput.Offset])
		if err != nil {
			return nil, err
		}
		vert.Pos = pos
		if hasNormals {
			if vert.Normal, err = vec3At(normals.Floats.Data, indices[normalInput.Offset]); err != nil {
				return nil, err
			}
		}
		vert.Color = DefaultColor
		vertices = append(vertices, vert)
	}

	return &ColladaObject{
		position: glm.Ident4(),
		rotation: glm.Ident4(),
		vertices: vertices,
	}, nil
}

func vec3At(data []float32, i int) (glm.Vec3, error) {
	if i < 0 || 3*i+2 >= len(data) {
		return glm.Vec3{}, fmt.Errorf("%w: %d of %d", ErrBadIndex, i, len(data)/3)
	}
	return glm.Vec3{data[3*i], data[3*i+1], data[3*i+2]}, nil
}

// ColladaObject is imported from a collada (.dae) file.
// Loaded and held in memory
type ColladaObject struct {
	mutex    sync.RWMutex
	position glm.Mat4
	rotation glm.Mat4

	vertices []Vertex
}

// SetPosition implements interface
func (co *ColladaObject) SetPosition(pos glm.Mat4) {
	co.mutex.Lock()
	co.position = pos
	co.mutex.Unlock()
}

// Position implements interface
func (co *ColladaObject) Position() glm.Mat4 {
	co.mutex.RLock()
	defer co.mutex.RUnlock()
	return co.position
}

// SetRotation implements interface
func (co *ColladaObject) SetRotation(rot glm.Mat4) {
	co.mutex.Lock()
	co.rotation = rot
	co.mutex.Unlock()
}

// Rotation implements interface
func (co *ColladaObject) Rotation() glm.Mat4 {
	co.mutex.RLock()
	defer co.mutex.RUnlock()
	return co.rotation
}

// Vertices implements interface
func (co *ColladaObject) Vertices() []Vertex {
	co.mutex.RLock()
	defer co.mutex.RUnlock()
	return co.vertices
}
