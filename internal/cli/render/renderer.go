package render

import (
	"fmt"
	"slices"
)

type Renderer[T any] interface {
	Render(result T) error
}

// Output formats supported by commands with machine-readable output
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists the accepted --format values
var Formats = []string{FormatTable, FormatJSON, FormatYAML}

// ValidateFormat rejects unknown --format values
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return fmt.Errorf("unknown format %q (expected one of %v)", format, Formats)
	}
	return nil
}
