package manifest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const schemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["commands"],
	"properties": {
		"version": {"type": "string"},
		"commands": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"properties": {
					"description": {"type": "string"},
					"usage": {"type": "string"},
					"aliases": {"type": "array", "items": {"type": "string"}},
					"hidden": {"type": "boolean"}
				}
			}
		}
	}
}`

// Validate checks the manifest file at path against the manifest schema.
// The returned error lists every violation.
func Validate(path string) error {
	if path == "" {
		path = FileName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate manifest: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var b strings.Builder
	b.WriteString("manifest is invalid:")
	for _, desc := range result.Errors() {
		fmt.Fprintf(&b, "\n  %s", desc)
	}
	return errors.New(b.String())
}
