package wire

// Geometry type discriminators.
const (
	GeometrySphere    = "sphere"
	GeometryCylinder  = "cylinder"
	GeometryBox       = "box"
	GeometryEllipsoid = "ellipsoid"
	GeometryMesh      = "mesh"
	GeometryConvex    = "convex"
)

// Geometry is the wire form of a shape. Only the fields relevant to the
// tagged type are populated; the rest are omitted from the encoding.
type Geometry struct {
	Type   string  `msgpack:"type" json:"type"`
	Radius float64 `msgpack:"radius,omitempty" json:"radius,omitempty"`
	Length float64 `msgpack:"length,omitempty" json:"length,omitempty"`
	Width  float64 `msgpack:"width,omitempty" json:"width,omitempty"`
	Height float64 `msgpack:"height,omitempty" json:"height,omitempty"`
	Depth  float64 `msgpack:"depth,omitempty" json:"depth,omitempty"`
	A      float64 `msgpack:"a,omitempty" json:"a,omitempty"`
	B      float64 `msgpack:"b,omitempty" json:"b,omitempty"`
	C      float64 `msgpack:"c,omitempty" json:"c,omitempty"`
	Source string  `msgpack:"source,omitempty" json:"source,omitempty"`
	Scale  float64 `msgpack:"scale,omitempty" json:"scale,omitempty"`
}

// Material is the wire form of a surface material: an RGBA color with
// components in [0, 1].
type Material struct {
	Color [4]float64 `msgpack:"color" json:"color"`
}
