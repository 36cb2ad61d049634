package zoning

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseTables decodes a YAML table file and overlays it on the built-in
// defaults. An empty document yields the defaults unchanged.
func ParseTables(r io.Reader) (Tables, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to read zoning tables: %w", err)
	}

	defaults := DefaultTables()
	if len(bytes.TrimSpace(data)) == 0 {
		return defaults, nil
	}

	var overlay Tables
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Tables{}, fmt.Errorf("failed to parse zoning tables: %w", err)
	}

	merged := defaults.Merge(overlay)
	if err := merged.Validate(); err != nil {
		return Tables{}, fmt.Errorf("invalid zoning tables: %w", err)
	}
	return merged, nil
}

// LoadTables reads a YAML table file from disk. An empty path returns the
// built-in defaults.
func LoadTables(path string) (Tables, error) {
	if path == "" {
		return DefaultTables(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to open zoning tables %s: %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	return ParseTables(file)
}

// EncodeYAML renders the tables in the same format ParseTables accepts.
func (t Tables) EncodeYAML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(t); err != nil {
		return nil, fmt.Errorf("failed to encode zoning tables: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode zoning tables: %w", err)
	}
	return buf.Bytes(), nil
}
