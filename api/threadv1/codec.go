package threadv1

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// ContentSubtype — content-subtype gRPC для сообщений thread.v1
// (application/grpc+json).
const ContentSubtype = "json"

// Codec кодирует сообщения thread.v1 в JSON.
// Сообщения — обычные Go-структуры с json-тегами, без сгенерированного protobuf.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("threadv1 codec marshal %T: %w", v, err)
	}

	return b, nil
}

func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("threadv1 codec unmarshal %T: %w", v, err)
	}

	return nil
}

func (Codec) Name() string { return ContentSubtype }

func init() {
	encoding.RegisterCodec(Codec{})
}
