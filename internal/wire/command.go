// Package wire encodes scene commands to their canonical msgpack form and
// decodes them back for verification. Encoding is pure: identical logical
// inputs always produce identical bytes, because struct fields serialize in
// declaration order.
package wire

import (
	"github.com/vmihailenco/msgpack/v5"
)

// Command type discriminators carried in the "type" field of every message.
const (
	TypeSetObject    = "set_object"
	TypeSetTransform = "set_transform"
	TypeSetProperty  = "set_property"
	TypeDelete       = "delete"
)

// SetObjectCommand installs an object (a shape with a material, or a camera)
// at a path.
type SetObjectCommand struct {
	Type   string       `msgpack:"type" json:"type"`
	Path   string       `msgpack:"path" json:"path"`
	Object ObjectRecord `msgpack:"object" json:"object"`
}

// ObjectRecord is the payload of a set_object command. Shape objects carry
// geometry and material; camera objects carry a nested object record.
type ObjectRecord struct {
	Geometry *Geometry `msgpack:"geometry,omitempty" json:"geometry,omitempty"`
	Material *Material `msgpack:"material,omitempty" json:"material,omitempty"`
	Object   any       `msgpack:"object,omitempty" json:"object,omitempty"`
}

// SetTransformCommand positions the node at a path. The matrix is a 4x4
// homogeneous transform in column-major order.
type SetTransformCommand struct {
	Type   string      `msgpack:"type" json:"type"`
	Path   string      `msgpack:"path" json:"path"`
	Matrix [16]float64 `msgpack:"matrix" json:"matrix"`
}

// SetPropertyCommand sets a named property on the node at a path. The value
// is a scalar or a small vector (bool, number, string, []float64).
type SetPropertyCommand struct {
	Type     string `msgpack:"type" json:"type"`
	Path     string `msgpack:"path" json:"path"`
	Property string `msgpack:"property" json:"property"`
	Value    any    `msgpack:"value" json:"value"`
}

// DeleteCommand removes the node at a path along with its subtree.
type DeleteCommand struct {
	Type string `msgpack:"type" json:"type"`
	Path string `msgpack:"path" json:"path"`
}

// EncodeShapeObject encodes a set_object command for a shape with a material.
func EncodeShapeObject(path string, geometry Geometry, material Material) ([]byte, error) {
	return msgpack.Marshal(SetObjectCommand{
		Type: TypeSetObject,
		Path: path,
		Object: ObjectRecord{
			Geometry: &geometry,
			Material: &material,
		},
	})
}

// EncodeCameraObject encodes a set_object command whose payload is a camera.
func EncodeCameraObject(path string, camera any) ([]byte, error) {
	return msgpack.Marshal(SetObjectCommand{
		Type:   TypeSetObject,
		Path:   path,
		Object: ObjectRecord{Object: camera},
	})
}

// EncodeSetTransform encodes a set_transform command.
func EncodeSetTransform(path string, matrix [16]float64) ([]byte, error) {
	return msgpack.Marshal(SetTransformCommand{
		Type:   TypeSetTransform,
		Path:   path,
		Matrix: matrix,
	})
}

// EncodeSetProperty encodes a set_property command.
func EncodeSetProperty(path, property string, value any) ([]byte, error) {
	return msgpack.Marshal(SetPropertyCommand{
		Type:     TypeSetProperty,
		Path:     path,
		Property: property,
		Value:    value,
	})
}

// EncodeDelete encodes a delete command.
func EncodeDelete(path string) ([]byte, error) {
	return msgpack.Marshal(DeleteCommand{
		Type: TypeDelete,
		Path: path,
	})
}

// CommandType extracts the type discriminator without decoding the rest of
// the command.
func CommandType(data []byte) (string, error) {
	var probe struct {
		Type string `msgpack:"type" json:"type"`
	}
	if err := msgpack.Unmarshal(data, &probe); err != nil {
		return "", err
	}
	return probe.Type, nil
}

// DecodeSetObject decodes a set_object command. A camera payload decodes into
// the Object field as a map keyed by field name.
func DecodeSetObject(data []byte) (SetObjectCommand, error) {
	var cmd SetObjectCommand
	err := msgpack.Unmarshal(data, &cmd)
	return cmd, err
}

// DecodeSetTransform decodes a set_transform command.
func DecodeSetTransform(data []byte) (SetTransformCommand, error) {
	var cmd SetTransformCommand
	err := msgpack.Unmarshal(data, &cmd)
	return cmd, err
}

// DecodeSetProperty decodes a set_property command.
func DecodeSetProperty(data []byte) (SetPropertyCommand, error) {
	var cmd SetPropertyCommand
	err := msgpack.Unmarshal(data, &cmd)
	return cmd, err
}

// DecodeDelete decodes a delete command.
func DecodeDelete(data []byte) (DeleteCommand, error) {
	var cmd DeleteCommand
	err := msgpack.Unmarshal(data, &cmd)
	return cmd, err
}
