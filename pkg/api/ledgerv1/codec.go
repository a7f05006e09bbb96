package ledgerv1

import (
	"encoding/json"
	"fmt"
)

// codecNameJSON replaces Connect's protobuf-JSON codec so plain structs can
// travel as application/json.
const codecNameJSON = "json"

// JSONCodec is a connect.Codec backed by encoding/json.
type JSONCodec struct{}

func (JSONCodec) Name() string {
	return codecNameJSON
}

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}
