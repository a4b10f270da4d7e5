// Package codec handles serialization of platform envelopes.
package codec

import "errors"

var (
	errCodecNotInit = errors.New("codec not init")

	_codec Codec = &JSONCodec{}
)

// Codec encodes and decodes wire messages exchanged with the platform.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(b []byte, v any) error
}

// Encode serializes v with the package-level codec.
func Encode(v any) ([]byte, error) {
	if _codec == nil {
		return nil, errCodecNotInit
	}
	return _codec.Encode(v)
}

// Decode deserializes b into v with the package-level codec.
func Decode(b []byte, v any) error {
	if _codec == nil {
		return errCodecNotInit
	}
	return _codec.Decode(b, v)
}

// SetCodec replaces the package-level codec.
func SetCodec(c Codec) {
	_codec = c
}
