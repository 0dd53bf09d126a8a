package metric

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// metricDoc is the YAML shape of one catalog entry.
type metricDoc struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// catalogDoc is the YAML shape of a catalog definition file.
type catalogDoc struct {
	Metrics []metricDoc `yaml:"metrics"`
}

// Load parses a YAML catalog definition from r. Unknown fields, duplicate
// keys, and unsupported value types are rejected.
func Load(r io.Reader) (*Catalog, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var doc catalogDoc

	decodeErr := decoder.Decode(&doc)
	if decodeErr != nil {
		return nil, fmt.Errorf("decode metric catalog: %w", decodeErr)
	}

	catalog := NewCatalog()

	for _, entry := range doc.Metrics {
		addErr := catalog.Add(Metric{Key: entry.Key, Name: entry.Name, Type: ValueType(entry.Type)})
		if addErr != nil {
			return nil, fmt.Errorf("metric catalog: %w", addErr)
		}
	}

	return catalog, nil
}

// LoadFile parses the YAML catalog definition at path.
func LoadFile(path string) (*Catalog, error) {
	f, openErr := os.Open(path)
	if openErr != nil {
		return nil, fmt.Errorf("open metric catalog: %w", openErr)
	}
	defer f.Close()

	return Load(f)
}
