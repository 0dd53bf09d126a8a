package replay

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed pass-schema.json
var passSchema []byte

// ValidateDocument checks a YAML pass document against the embedded schema
// before it is decoded into typed structures. The returned error lists
// every violation.
func ValidateDocument(data []byte) error {
	var doc any

	unmarshalErr := yaml.Unmarshal(data, &doc)
	if unmarshalErr != nil {
		return fmt.Errorf("parse pass document: %w", unmarshalErr)
	}

	result, validateErr := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(passSchema),
		gojsonschema.NewGoLoader(doc))
	if validateErr != nil {
		return fmt.Errorf("validate pass document: %w", validateErr)
	}

	if result.Valid() {
		return nil
	}

	var b strings.Builder

	b.WriteString("invalid pass document:")

	for _, violation := range result.Errors() {
		b.WriteString("\n  - ")
		b.WriteString(violation.String())
	}

	return fmt.Errorf("%s", b.String())
}
