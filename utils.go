package notegate

import (
	"strings"
	"unicode/utf8"
)

// IsValidKey validates that a key meets the requirements for a bucket key.
// It checks that the key:
//   - is not empty, ".", or "/"
//   - is relative (does not start with "/")
//   - does not end with "/"
//   - does not contain ".." (path traversal)
//   - does not contain "//" (empty segments)
//   - does not contain invalid characters: \ ? #
//   - is valid UTF-8
//   - does not contain "." segments (/., /./, or ending with /.)
//   - does not contain null bytes, control characters, or DEL
//
// Returns true if the key is valid, false otherwise.
func IsValidKey(k string) bool {
	if k == "" || k == "/" || k == "." {
		return false
	}

	if k[0] == '/' {
		return false
	}

	if strings.HasSuffix(k, "/") {
		return false
	}

	if strings.Contains(k, "..") {
		return false
	}

	if strings.Contains(k, "//") {
		return false
	}

	if strings.ContainsAny(k, `\?#`) {
		return false
	}

	if !utf8.ValidString(k) {
		return false
	}

	if strings.Contains(k, "/./") || strings.HasPrefix(k, "./") || strings.HasSuffix(k, "/.") {
		return false
	}

	for _, r := range k {
		if r == 0 || r < 0x20 || r == 0x7f {
			return false
		}
	}

	return true
}

// NormalizeCanvasKey appends the canvas suffix when the name does not
// already carry it. The check is a plain suffix comparison.
func NormalizeCanvasKey(name string) string {
	if strings.HasSuffix(name, CanvasSuffix) {
		return name
	}
	return name + CanvasSuffix
}
