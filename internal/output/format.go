package output

import (
	"encoding/json"

	yaml "gopkg.in/yaml.v2"
)

// Formatter serializes a report for machine consumption.
type Formatter func(interface{}) ([]byte, error)

func JsonFormatter(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func YamlFormatter(v interface{}) ([]byte, error) {
	return yaml.Marshal(v)
}
