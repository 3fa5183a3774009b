package ruleset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format represents a rule-set file format.
type Format string

const (
	// FormatYAML is the YAML format.
	FormatYAML Format = "yaml"
	// FormatJSON is the JSON format.
	FormatJSON Format = "json"
)

var (
	// ErrRulesNotFound is returned when a rule-set file does not exist.
	ErrRulesNotFound = errors.New("rule set file not found")
	// ErrUnsupportedFormat is returned for unknown file extensions.
	ErrUnsupportedFormat = errors.New("unsupported rule set format")
)

// LoadFile reads and compiles a rule-set file. The format follows the extension.
func LoadFile(path string) (*RuleSet, error) {
	spec, err := ReadSpecFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(spec)
}

// ReadSpecFile reads a rule-set file without compiling it.
func ReadSpecFile(path string) (Spec, error) {
	var format Format
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".json":
		format = FormatJSON
	default:
		return Spec{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Spec{}, fmt.Errorf("%w: %s", ErrRulesNotFound, path)
		}
		return Spec{}, fmt.Errorf("failed to read rule set: %w", err)
	}
	return ParseSpec(data, format)
}

// ParseSpec decodes a spec, rejecting unknown fields.
func ParseSpec(data []byte, format Format) (Spec, error) {
	var spec Spec
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&spec); err != nil {
			return Spec{}, fmt.Errorf("failed to parse YAML rule set: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&spec); err != nil {
			return Spec{}, fmt.Errorf("failed to parse JSON rule set: %w", err)
		}
	default:
		return Spec{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return spec, nil
}

// MarshalSpec encodes a spec in the given format.
func MarshalSpec(spec Spec, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(spec)
	case FormatJSON:
		return json.MarshalIndent(spec, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Resolve returns a preset when name matches one, otherwise loads name as a file.
func Resolve(nameOrPath string) (*RuleSet, error) {
	for _, spec := range Presets() {
		if spec.Name == nameOrPath {
			return Compile(spec)
		}
	}
	if filepath.Ext(nameOrPath) == "" {
		return Lookup(nameOrPath)
	}
	return LoadFile(nameOrPath)
}
