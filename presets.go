package server

import (
	"scenecast/server/internal/scenetree"
	"scenecast/server/internal/wire"
)

// Well-known paths driven by the composite presets.
const (
	defaultCameraPath = "/Cameras/default/rotated"
	cameraFramePath   = "/Cameras/default"
	cameraObjectPath  = "/Cameras/default/rotated/<object>"
	backgroundPath    = "/Background"
	gridPath          = "/Grid"
	axesPath          = "/Axes"
)

// Camera is a camera preset accepted by SetCamera.
type Camera interface {
	wireCamera() any
}

// PerspectiveCamera is a perspective projection. The near and far clip
// planes are fixed parts of the wire contract (0.01 and 100).
type PerspectiveCamera struct {
	Fov    float64
	Aspect float64
}

// DefaultPerspectiveCamera returns the camera ResetRenderMode installs.
func DefaultPerspectiveCamera() PerspectiveCamera {
	return PerspectiveCamera{Fov: 75, Aspect: 1}
}

func (c PerspectiveCamera) wireCamera() any {
	return wire.PerspectiveCamera{
		Type:   wire.CameraPerspective,
		Fov:    c.Fov,
		Aspect: c.Aspect,
		Near:   wire.PerspectiveNear,
		Far:    wire.PerspectiveFar,
	}
}

// OrthographicCamera is an orthographic projection. Near, far, and zoom are
// fixed parts of the wire contract (-1000, 1000, 1.0).
type OrthographicCamera struct {
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

// DefaultOrthographicCamera returns a centered unit viewing box. The
// vertical extents are inverted (top -1, bottom 1) to match the rotated
// viewer camera frame; overriding one side does not touch the other.
func DefaultOrthographicCamera() OrthographicCamera {
	return OrthographicCamera{Left: -1, Right: 1, Top: -1, Bottom: 1}
}

func (c OrthographicCamera) wireCamera() any {
	return wire.OrthographicCamera{
		Type:   wire.CameraOrthographic,
		Left:   c.Left,
		Right:  c.Right,
		Top:    c.Top,
		Bottom: c.Bottom,
		Near:   wire.OrthographicNear,
		Far:    wire.OrthographicFar,
		Zoom:   wire.OrthographicZoom,
	}
}

// SetCamera installs a camera object at the path, which defaults to the
// well-known viewer camera path when empty. The command persists as the
// node's object command.
func (s *Server) SetCamera(camera Camera, path string) {
	if path == "" {
		path = defaultCameraPath
	}
	data, err := wire.EncodeCameraObject(scenetree.FullPath(path), camera.wireCamera())
	if err != nil {
		s.logger.Printf("failed to encode camera for %q: %v", path, err)
		return
	}
	s.hub.SetObject(path, data)
}

// Set2dRenderMode switches the viewer to a flat orthographic view: an
// orthographic camera pulled back along -Y, with the background, grid, and
// axes hidden. Atomicity holds at the call-sequence level only; broadcasts
// from other producer calls may interleave.
func (s *Server) Set2dRenderMode() {
	s.SetCamera(DefaultOrthographicCamera(), defaultCameraPath)
	s.SetTransform(cameraFramePath, translationMatrix(0, -1, 0))
	s.SetProperty(cameraObjectPath, "position", []float64{0, 0, 0})
	s.SetProperty(backgroundPath, "visible", false)
	s.SetProperty(gridPath, "visible", false)
	s.SetProperty(axesPath, "visible", false)
}

// ResetRenderMode restores the default interactive 3-D view.
func (s *Server) ResetRenderMode() {
	s.SetCamera(DefaultPerspectiveCamera(), defaultCameraPath)
	s.SetTransform(cameraFramePath, identityMatrix())
	s.SetProperty(cameraObjectPath, "position", []float64{0, 0, 0})
	s.SetProperty(backgroundPath, "visible", true)
	s.SetProperty(gridPath, "visible", true)
	s.SetProperty(axesPath, "visible", true)
}

func identityMatrix() [16]float64 {
	return [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func translationMatrix(x, y, z float64) [16]float64 {
	m := identityMatrix()
	m[12], m[13], m[14] = x, y, z
	return m
}
