package notegate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"notegate"
)

func TestIsValidKey(t *testing.T) {
	valid := []string{
		"file.txt",
		"folder/file.txt",
		"deeply/nested/path/file",
		"board.canvas",
		"unicode-日本語.txt",
		"with spaces.txt",
	}
	for _, k := range valid {
		assert.True(t, notegate.IsValidKey(k), "expected valid: %q", k)
	}

	invalid := []string{
		"",
		".",
		"/",
		"/absolute",
		"trailing/",
		"../escape",
		"safe/../escape",
		"double//slash",
		"back\\slash",
		"query?param",
		"frag#ment",
		"./relative",
		"dir/./file",
		"dir/.",
		"nul\x00byte",
		"ctrl\x01char",
	}
	for _, k := range invalid {
		assert.False(t, notegate.IsValidKey(k), "expected invalid: %q", k)
	}
}

func TestNormalizeCanvasKey(t *testing.T) {
	assert.Equal(t, "foo.canvas", notegate.NormalizeCanvasKey("foo"))
	assert.Equal(t, "foo.canvas", notegate.NormalizeCanvasKey("foo.canvas"))
	assert.Equal(t, "foo.json.canvas", notegate.NormalizeCanvasKey("foo.json"))
}
