package rigfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads and validates a rig document. The format follows the file
// extension (.toml, .json, .yaml or .yml) and is detected from the content
// otherwise.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rig: %w", err)
	}
	return Parse(data, formatFromExt(filepath.Ext(path)))
}

// Parse decodes and validates a rig document. An empty format tries TOML,
// then JSON, then YAML.
func Parse(data []byte, format string) (*Document, error) {
	doc := &Document{}
	switch strings.ToLower(format) {
	case FormatTOML:
		if _, err := toml.Decode(string(data), doc); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case FormatJSON:
		if err := decodeJSON(data, doc); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	case FormatYAML, "yml":
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	case "":
		if err := autoDetectAndParse(data, doc); err != nil {
			return nil, fmt.Errorf("parse rig: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// autoDetectAndParse attempts to parse the document in multiple formats.
func autoDetectAndParse(data []byte, doc *Document) error {
	if _, err := toml.Decode(string(data), doc); err == nil {
		return nil
	}

	*doc = Document{}
	if err := decodeJSON(data, doc); err == nil {
		return nil
	}

	*doc = Document{}
	if err := yaml.Unmarshal(data, doc); err == nil {
		return nil
	}

	return fmt.Errorf("unable to parse rig document (tried TOML, JSON, YAML)")
}

func decodeJSON(data []byte, doc *Document) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(doc)
}

func formatFromExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return ""
	}
}
