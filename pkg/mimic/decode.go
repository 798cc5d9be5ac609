package mimic

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// DecodeRow decodes a type-erased row into the caller's declared row shape.
// Fields map by `db` tag, falling back to a case-insensitive match on the
// field name. The adapter itself stays type-erased at the boundary; this is
// the bridge to strong typing for callers that want it.
func DecodeRow[T any](row Row) (T, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: "db",
	})
	if err != nil {
		return out, fmt.Errorf("failed to build row decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(row)); err != nil {
		return out, fmt.Errorf("failed to decode row: %w", err)
	}
	return out, nil
}

// DecodeRows decodes every row of a result set into the caller's row shape,
// preserving order.
func DecodeRows[T any](rows []Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		v, err := DecodeRow[T](row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
