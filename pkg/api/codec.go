package api

import (
	"encoding/json"
	"fmt"
)

// CodecName is registered for the "application/json" content type,
// replacing Connect's protobuf-JSON codec.
const CodecName = "json"

// Codec marshals plain Go messages with encoding/json. It satisfies
// connect.Codec.
type Codec struct{}

func (Codec) Name() string { return CodecName }

func (Codec) Marshal(msg any) ([]byte, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return b, nil
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		// an empty body is the zero message
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}
