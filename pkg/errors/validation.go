package errors

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	hexColor   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	namedColor = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)
	funcColor  = regexp.MustCompile(`^(?:rgb|rgba|hsl|hsla)\([0-9.,%\s]+\)$`)
)

// ValidateColor checks that a color is safe to embed in an SVG or HTML
// attribute. Accepted forms are hex (#rgb, #rrggbb, with optional alpha),
// CSS color keywords, and rgb()/hsl() functional notation with numeric
// arguments. An empty color is valid and means "use the palette".
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if len(color) > 64 {
		return New(ErrCodeInvalidColor, "color too long (max 64 characters)")
	}
	if hexColor.MatchString(color) || namedColor.MatchString(color) || funcColor.MatchString(color) {
		return nil
	}
	return New(ErrCodeInvalidColor, "unsupported color value: %q", color)
}

// ValidatePath validates a data source path for safety.
// It prevents path traversal when a path comes from an untrusted request.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative, not absolute")
	}
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain '..' (path traversal)")
		}
	}
	return nil
}
