package collection

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// UpdateRequest は Update の要求です。
type UpdateRequest[P any] struct {
	ID    string `json:"id"`
	Patch P      `json:"patch"`
}

// Encode は v を JSON と同じ形の Struct に変換します。v は JSON オブジェクトになる値である必要があります。
func Encode(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return out, nil
}

// Decode は Struct を v へ展開します。nil は空のオブジェクトとして扱います。
func Decode(s *structpb.Struct, v any) error {
	if s == nil {
		s = &structpb.Struct{}
	}
	raw, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// EncodeList は items を ListValue に変換します。
func EncodeList[T any](items []T) (*structpb.ListValue, error) {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode list: %w", err)
	}
	out := &structpb.ListValue{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("encode list: %w", err)
	}
	return out, nil
}

// DecodeList は ListValue を []T に展開します。
func DecodeList[T any](l *structpb.ListValue) ([]T, error) {
	if l == nil || len(l.GetValues()) == 0 {
		return []T{}, nil
	}
	raw, err := protojson.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return out, nil
}
