package avro

import (
	"fmt"

	"github.com/linkedin/goavro/v2"
)

// Encoder wraps a goavro codec. goavro codecs are safe for concurrent use.
type Encoder struct {
	codec *goavro.Codec
}

// NewEncoder creates a new encoder from an Avro schema string
func NewEncoder(schema string) (*Encoder, error) {
	codec, err := goavro.NewCodec(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to create avro codec: %w", err)
	}
	return &Encoder{codec: codec}, nil
}

// EncodeNative converts a Go native map to Avro binary format
func (e *Encoder) EncodeNative(native interface{}) ([]byte, error) {
	binary, err := e.codec.BinaryFromNative(nil, native)
	if err != nil {
		return nil, fmt.Errorf("failed to encode to avro binary: %w", err)
	}
	return binary, nil
}

// DecodeNative is the inverse of EncodeNative. Trailing bytes are an error.
func (e *Encoder) DecodeNative(data []byte) (interface{}, error) {
	native, rest, err := e.codec.NativeFromBinary(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode avro binary: %w", err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("failed to decode avro binary: %d trailing bytes", len(rest))
	}
	return native, nil
}
