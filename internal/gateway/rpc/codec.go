package rpc

import (
	"encoding/json"
	"fmt"
)

// Codec передаёт сообщения RPC-шлюза как JSON (content-type application/grpc+json).
// Frame проходит через кодек без изменений, остальные значения сериализуются encoding/json.
type Codec struct{}

// Frame — уже сериализованное JSON-сообщение.
type Frame struct {
	Data []byte
}

func (Codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case *Frame:
		if len(m.Data) == 0 {
			return []byte("{}"), nil
		}
		return m.Data, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("json codec: marshal %T: %w", v, err)
		}
		return data, nil
	}
}

func (Codec) Unmarshal(data []byte, v any) error {
	if f, ok := v.(*Frame); ok {
		f.Data = append(f.Data[:0], data...)
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec: unmarshal %T: %w", v, err)
	}
	return nil
}

func (Codec) Name() string {
	return "json"
}
