package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/timeoverwrite/pkg/adapters/memory"
)

// Fixture is the on-disk form of an annotated document.
// Annotation regions are relative to Offset.
type Fixture struct {
	Text        string              `json:"text" yaml:"text"`
	Offset      int                 `json:"offset,omitempty" yaml:"offset,omitempty"`
	Annotations []memory.Annotation `json:"annotations" yaml:"annotations"`
}

// Serializer defines how to read and write a specific file format.
type Serializer interface {
	// Parse reads from r and returns a Fixture.
	Parse(r io.Reader) (*Fixture, error)
	// Serialize converts the Fixture to bytes.
	Serialize(f Fixture) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON fixtures.
type JSONSerializer struct{}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

func (s *JSONSerializer) Parse(r io.Reader) (*Fixture, error) {
	var f Fixture
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return &f, nil
}

func (s *JSONSerializer) Serialize(f Fixture) ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// --- YAML Serializer ---

// YAMLSerializer handles reading and writing YAML fixtures.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Parse(r io.Reader) (*Fixture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var f Fixture
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil // empty file
		}
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return &f, nil
}

func (s *YAMLSerializer) Serialize(f Fixture) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(f); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
