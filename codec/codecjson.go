package codec

import "encoding/json"

// JSONCodec is the default codec. The platform wire protocol is
// schemaless JSON, so no other implementation ships with the SDK.
type JSONCodec struct{}

// Encode serializes v as JSON.
func (c *JSONCodec) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Decode deserializes JSON bytes into v.
func (c *JSONCodec) Decode(b []byte, v any) error {
	return json.Unmarshal(b, v)
}

// Remap re-encodes src and decodes the result into dst. Used to project
// untyped payload maps onto typed configuration records.
func Remap(src, dst any) error {
	b, err := Encode(src)
	if err != nil {
		return err
	}
	return Decode(b, dst)
}
