package loader

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a dataset file format.
type Format int

// Supported formats.
const (
	TOML Format = iota + 1
	YAML
	JSON
)

func (f Format) String() string {
	switch f {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// parse decodes data into a map, reporting failures as *ParseError.
func (f Format) parse(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	var err error
	switch f {
	case TOML:
		err = toml.Unmarshal(data, &config)
	case YAML:
		err = yaml.Unmarshal(data, &config)
	case JSON:
		err = json.Unmarshal(data, &config)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, newParseError(source, err)
	}
	if config == nil {
		config = make(map[string]any)
	}
	return config, nil
}

// ParseError represents an error while parsing a dataset file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func newParseError(path string, err error) *ParseError {
	pe := &ParseError{Path: path, Message: err.Error(), Err: err}

	var tomlErr *toml.DecodeError
	var jsonErr *json.SyntaxError
	switch {
	case errors.As(err, &tomlErr):
		pe.Line, pe.Column = tomlErr.Position()
	case errors.As(err, &jsonErr):
		pe.Message = fmt.Sprintf("%s (offset %d)", jsonErr.Error(), jsonErr.Offset)
	}
	return pe
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DeepMerge recursively merges src into dst.
// Values in src override values in dst.
// Maps are merged recursively; other types are replaced.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = srcVal
	}
	return dst
}
