package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// identifierRegex matches node and cluster identifiers: a letter followed by
// letters, digits, underscores or dashes.
var identifierRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidateIdentifier validates a node or cluster identifier.
//
// Identifiers end up as Graphviz node names, Mermaid ids and map keys in the
// declaration file formats, so they are kept to a conservative character set:
//   - No empty identifiers
//   - Maximum length of 128 characters
//   - Must start with a letter
//   - Letters, digits, '_' and '-' only
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDiagram, "identifier cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidDiagram, "identifier too long (max 128 characters)")
	}

	if !identifierRegex.MatchString(id) {
		return New(ErrCodeInvalidDiagram, "invalid identifier: %q", id)
	}

	return nil
}

// ValidateLabel validates a display label. Labels may span several lines but
// must not carry other control characters.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidDiagram, "label cannot be empty")
	}

	for _, r := range label {
		if r != '\n' && unicode.IsControl(r) {
			return New(ErrCodeInvalidDiagram, "label %q contains invalid control characters", label)
		}
	}

	return nil
}

// ValidateOutputPath validates the path a rendered diagram is written to.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must name a file, not a directory (no trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "output path must name a file: %q", path)
	}

	return nil
}
