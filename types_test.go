package notegate_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"notegate"
)

func TestCanvasContent_UnmarshalObject(t *testing.T) {
	var c notegate.CanvasContent
	err := json.Unmarshal([]byte(`{"nodes":[{"id":1}],"title":"board"}`), &c)
	assert.NoError(t, err)
	assert.False(t, c.IsZero())

	v, ok := c.Value().(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "board", v["title"])
}

func TestCanvasContent_UnmarshalArray(t *testing.T) {
	var c notegate.CanvasContent
	err := json.Unmarshal([]byte(`[1,2,3]`), &c)
	assert.NoError(t, err)
	_, ok := c.Value().([]any)
	assert.True(t, ok)
}

func TestCanvasContent_UnmarshalString(t *testing.T) {
	var c notegate.CanvasContent
	err := json.Unmarshal([]byte(`"freeform text"`), &c)
	assert.NoError(t, err)
	assert.Equal(t, "freeform text", c.Value())
}

func TestCanvasContent_RejectsOtherJSONTypes(t *testing.T) {
	for _, raw := range []string{`42`, `3.14`, `true`, `null`} {
		var c notegate.CanvasContent
		err := json.Unmarshal([]byte(raw), &c)
		assert.Error(t, err, "input %s", raw)
		assert.True(t, errors.Is(err, notegate.ErrInvalidInput), "input %s", raw)
	}
}

func TestCanvasContent_EncodeObjectIsDeterministic(t *testing.T) {
	c, err := notegate.NewCanvasContent(map[string]any{
		"zebra": 1,
		"alpha": map[string]any{"nested": true},
	})
	assert.NoError(t, err)

	first, err := c.Encode()
	assert.NoError(t, err)
	second, err := c.Encode()
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "{\n  \"alpha\": {\n    \"nested\": true\n  },\n  \"zebra\": 1\n}", string(first))
}

func TestCanvasContent_EncodeStringIsRaw(t *testing.T) {
	c, err := notegate.NewCanvasContent("plain text, not JSON-quoted")
	assert.NoError(t, err)

	data, err := c.Encode()
	assert.NoError(t, err)
	assert.Equal(t, "plain text, not JSON-quoted", string(data))
}

func TestCanvasContent_EncodeZeroValueFails(t *testing.T) {
	var c notegate.CanvasContent
	_, err := c.Encode()
	assert.True(t, errors.Is(err, notegate.ErrInvalidInput))
}

func TestDecodeCanvasValue(t *testing.T) {
	v := notegate.DecodeCanvasValue([]byte(`{"a":1}`))
	m, ok := v.(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, float64(1), m["a"])

	v = notegate.DecodeCanvasValue([]byte(`[true]`))
	_, ok = v.([]any)
	assert.True(t, ok)

	// Not valid JSON: fall back to the raw string.
	v = notegate.DecodeCanvasValue([]byte("just some text"))
	assert.Equal(t, "just some text", v)
}
