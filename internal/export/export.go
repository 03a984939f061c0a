// Package export renders the reading list into the documents shown to the user.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"jrlgen/internal/domain"
)

// Format names an output encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user supplied format name
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json or yaml)", name)
	}
}

// NewDocument wraps export records into the exported document
func NewDocument(items []domain.ExportItem) domain.Export {
	if items == nil {
		items = []domain.ExportItem{}
	}
	return domain.Export{Items: items}
}

// JSON renders doc with two-space indentation and a trailing newline
func JSON(doc domain.Export) ([]byte, error) {
	doc = NewDocument(doc.Items)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return buf.Bytes(), nil
}

// YAML renders doc as a YAML document
func YAML(doc domain.Export) ([]byte, error) {
	doc = NewDocument(doc.Items)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return buf.Bytes(), nil
}

// Render encodes doc in the requested format
func Render(doc domain.Export, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return YAML(doc)
	default:
		return JSON(doc)
	}
}
