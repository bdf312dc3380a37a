package server

import (
	"os"
	"path/filepath"

	"scenecast/server/internal/scenetree"
	"scenecast/server/internal/wire"
)

// Shape is a geometry variant accepted by SetObject. HalfSpace and Capsule
// are accepted but have no wire representation; setting one logs a
// diagnostic and is otherwise a no-op.
type Shape interface {
	isShape()
}

// Sphere is a sphere of the given radius.
type Sphere struct {
	Radius float64
}

// Cylinder is a cylinder with the given radius and length along its axis.
type Cylinder struct {
	Radius float64
	Length float64
}

// Box is an axis-aligned box with the given extents.
type Box struct {
	Width  float64
	Height float64
	Depth  float64
}

// Ellipsoid is an ellipsoid with the given semi-axes.
type Ellipsoid struct {
	A float64
	B float64
	C float64
}

// Mesh references a triangle-mesh file on disk, uniformly scaled.
type Mesh struct {
	Source string
	Scale  float64
}

// Convex references a mesh file whose convex hull is rendered.
type Convex struct {
	Source string
	Scale  float64
}

// HalfSpace has no wire representation.
type HalfSpace struct{}

// Capsule has no wire representation.
type Capsule struct {
	Radius float64
	Length float64
}

func (Sphere) isShape()    {}
func (Cylinder) isShape()  {}
func (Box) isShape()       {}
func (Ellipsoid) isShape() {}
func (Mesh) isShape()      {}
func (Convex) isShape()    {}
func (HalfSpace) isShape() {}
func (Capsule) isShape()   {}

// Rgba is a surface color with components in [0, 1].
type Rgba struct {
	R float64
	G float64
	B float64
	A float64
}

// SetObject installs a shape at the path, persists the encoded command as
// the node's object command, and broadcasts it. Shapes without a wire
// representation produce a diagnostic only; the call still succeeds.
func (s *Server) SetObject(path string, shape Shape, color Rgba) {
	geometry, ok := s.geometryFor(path, shape)
	if !ok {
		return
	}
	material := wire.Material{Color: [4]float64{color.R, color.G, color.B, color.A}}
	data, err := wire.EncodeShapeObject(scenetree.FullPath(path), geometry, material)
	if err != nil {
		s.logger.Printf("failed to encode object for %q: %v", path, err)
		return
	}
	s.hub.SetObject(path, data)
}

func (s *Server) geometryFor(path string, shape Shape) (wire.Geometry, bool) {
	switch shape := shape.(type) {
	case Sphere:
		return wire.Geometry{Type: wire.GeometrySphere, Radius: shape.Radius}, true
	case Cylinder:
		return wire.Geometry{Type: wire.GeometryCylinder, Radius: shape.Radius, Length: shape.Length}, true
	case Box:
		return wire.Geometry{Type: wire.GeometryBox, Width: shape.Width, Height: shape.Height, Depth: shape.Depth}, true
	case Ellipsoid:
		return wire.Geometry{Type: wire.GeometryEllipsoid, A: shape.A, B: shape.B, C: shape.C}, true
	case Mesh:
		return s.meshGeometry(path, wire.GeometryMesh, shape.Source, shape.Scale)
	case Convex:
		return s.meshGeometry(path, wire.GeometryConvex, shape.Source, shape.Scale)
	case HalfSpace:
		s.logger.Printf("half-space at %q has no wire representation; ignoring", path)
		return wire.Geometry{}, false
	case Capsule:
		s.logger.Printf("capsule at %q has no wire representation; ignoring", path)
		return wire.Geometry{}, false
	default:
		s.logger.Printf("unsupported shape %T at %q; ignoring", shape, path)
		return wire.Geometry{}, false
	}
}

func (s *Server) meshGeometry(path, kind, source string, scale float64) (wire.Geometry, bool) {
	if filepath.Ext(source) != ".obj" {
		s.logger.Printf("mesh source %q for %q is not an .obj file; ignoring", source, path)
		return wire.Geometry{}, false
	}
	if _, err := os.Stat(source); err != nil {
		s.logger.Printf("mesh source %q for %q is unreadable; ignoring: %v", source, path, err)
		return wire.Geometry{}, false
	}
	return wire.Geometry{Type: kind, Source: source, Scale: scale}, true
}

// SetTransform positions the node at the path. The matrix is a 4x4
// homogeneous transform in column-major order.
func (s *Server) SetTransform(path string, matrix [16]float64) {
	data, err := wire.EncodeSetTransform(scenetree.FullPath(path), matrix)
	if err != nil {
		s.logger.Printf("failed to encode transform for %q: %v", path, err)
		return
	}
	s.hub.SetTransform(path, data)
}

// SetProperty sets a named property on the node at the path. Independent
// property names never clobber each other or the node's object command.
func (s *Server) SetProperty(path, property string, value any) {
	data, err := wire.EncodeSetProperty(scenetree.FullPath(path), property, value)
	if err != nil {
		s.logger.Printf("failed to encode property %q for %q: %v", property, path, err)
		return
	}
	s.hub.SetProperty(path, property, data)
}

// Delete removes the subtree at the path, discarding its persisted commands,
// and broadcasts a delete command so live viewers drop the content. Deleting
// a nonexistent path still broadcasts; future joiners are unaffected either
// way.
func (s *Server) Delete(path string) {
	data, err := wire.EncodeDelete(scenetree.FullPath(path))
	if err != nil {
		s.logger.Printf("failed to encode delete for %q: %v", path, err)
		return
	}
	s.hub.Delete(path, data)
}

// HasPath reports whether a node exists at the path.
func (s *Server) HasPath(path string) bool {
	return s.hub.HasPath(path)
}

// GetPackedObject returns the exact bytes a newly joining viewer would
// receive for the node's object command, or nil if none is persisted.
func (s *Server) GetPackedObject(path string) []byte {
	return s.hub.PackedObject(path)
}

// GetPackedTransform returns the node's persisted transform command bytes,
// or nil.
func (s *Server) GetPackedTransform(path string) []byte {
	return s.hub.PackedTransform(path)
}

// GetPackedProperty returns the node's persisted command bytes for the named
// property, or nil.
func (s *Server) GetPackedProperty(path, property string) []byte {
	return s.hub.PackedProperty(path, property)
}
