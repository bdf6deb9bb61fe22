// Package transfer reads and writes routine documents of the form
// {"routines": [...]} as JSON or YAML.
package transfer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/routined/internal/model"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("transfer: unknown format %q", raw)
	}
}

// FormatForPath picks the format from the file extension, falling back to fallback.
func FormatForPath(path string, fallback Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	if fallback == "" {
		return FormatJSON
	}
	return fallback
}

type document struct {
	Routines []model.Routine `json:"routines" yaml:"routines"`
}

func Encode(w io.Writer, routines []model.Routine, f Format) error {
	if routines == nil {
		routines = []model.Routine{}
	}
	doc := document{Routines: routines}
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// Decode parses and validates a document. Any schema violation is returned as
// a *ValidationError that matches ErrSchema.
func Decode(data []byte, f Format) ([]model.Routine, error) {
	var raw any
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &ValidationError{Problems: []FieldError{{Path: "$", Message: err.Error()}}}
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil {
			return nil, &ValidationError{Problems: []FieldError{{Path: "$", Message: err.Error()}}}
		}
		if dec.More() {
			return nil, &ValidationError{Problems: []FieldError{{Path: "$", Message: "trailing data after document"}}}
		}
	}
	return validate(raw)
}

func ReadFile(path string, fallback Format) ([]model.Routine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	return Decode(data, FormatForPath(path, fallback))
}

// WriteFile writes through a temp file and renames it into place.
func WriteFile(path string, routines []model.Routine, fallback Format) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	var buf bytes.Buffer
	if err := Encode(&buf, routines, FormatForPath(path, fallback)); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace export file: %w", err)
	}
	return nil
}
