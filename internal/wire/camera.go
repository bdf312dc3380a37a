package wire

// Camera object type discriminators, matching the names the viewer's
// rendering library expects.
const (
	CameraPerspective  = "PerspectiveCamera"
	CameraOrthographic = "OrthographicCamera"
)

// Perspective camera clip-plane constants. These are part of the public
// wire contract, not incidental values.
const (
	PerspectiveNear = 0.01
	PerspectiveFar  = 100.0
)

// Orthographic camera constants. Near, far, and zoom are fixed on the wire
// regardless of the requested viewing box.
const (
	OrthographicNear = -1000.0
	OrthographicFar  = 1000.0
	OrthographicZoom = 1.0
)

// PerspectiveCamera is the wire form of a perspective camera object.
type PerspectiveCamera struct {
	Type   string  `msgpack:"type" json:"type"`
	Fov    float64 `msgpack:"fov" json:"fov"`
	Aspect float64 `msgpack:"aspect" json:"aspect"`
	Near   float64 `msgpack:"near" json:"near"`
	Far    float64 `msgpack:"far" json:"far"`
}

// OrthographicCamera is the wire form of an orthographic camera object.
type OrthographicCamera struct {
	Type   string  `msgpack:"type" json:"type"`
	Left   float64 `msgpack:"left" json:"left"`
	Right  float64 `msgpack:"right" json:"right"`
	Top    float64 `msgpack:"top" json:"top"`
	Bottom float64 `msgpack:"bottom" json:"bottom"`
	Near   float64 `msgpack:"near" json:"near"`
	Far    float64 `msgpack:"far" json:"far"`
	Zoom   float64 `msgpack:"zoom" json:"zoom"`
}
