package notegate

import (
	"encoding/json"
	"fmt"
	"time"
)

// CanvasSuffix is the key suffix that marks an object as a canvas document.
const CanvasSuffix = ".canvas"

// Note is a plain-text object stored in the bucket.
type Note struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// ObjectInfo is the metadata returned by a head call on the store.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// CanvasDocument is a canvas read back from the store. Content holds the
// parsed JSON value, or the raw string when the stored bytes are not JSON.
type CanvasDocument struct {
	Name         string    `json:"name"`
	Content      any       `json:"content"`
	LastModified time.Time `json:"last_modified"`
}

// CanvasContent is the value accepted for a canvas write: a JSON object,
// a JSON array, or a plain string. Other JSON types are rejected at the
// boundary so the stored representation stays unambiguous.
type CanvasContent struct {
	value any
}

// NewCanvasContent wraps a decoded JSON value. Accepts map[string]any,
// []any, and string; anything else returns ErrInvalidInput.
func NewCanvasContent(v any) (CanvasContent, error) {
	switch v.(type) {
	case map[string]any, []any, string:
		return CanvasContent{value: v}, nil
	default:
		return CanvasContent{}, fmt.Errorf("canvas content must be an object, array, or string: %w", ErrInvalidInput)
	}
}

// UnmarshalJSON lets CanvasContent be decoded directly from a request body.
func (c *CanvasContent) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode canvas content: %w", err)
	}
	parsed, err := NewCanvasContent(v)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// IsZero reports whether the content was never set. A request body that
// omits the content field leaves the zero value behind.
func (c CanvasContent) IsZero() bool {
	return c.value == nil
}

// Value returns the wrapped JSON value.
func (c CanvasContent) Value() any {
	return c.value
}

// Encode produces the bytes written to the store. Objects and arrays are
// serialized with stable key order and two-space indentation so repeated
// writes of the same value are byte-identical. Strings are stored raw.
func (c CanvasContent) Encode() ([]byte, error) {
	switch v := c.value.(type) {
	case string:
		return []byte(v), nil
	case map[string]any, []any:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode canvas content: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("canvas content is empty: %w", ErrInvalidInput)
	}
}

// DecodeCanvasValue parses stored canvas bytes back into a JSON value,
// falling back to the raw string when the bytes are not valid JSON.
func DecodeCanvasValue(data []byte) any {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return string(data)
	}
	return v
}
