package render

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/titlelens/pkg/dashboard"
)

const yamlIndent = 2

// WriteJSON encodes the snapshot as indented JSON.
func WriteJSON(w io.Writer, snap dashboard.Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot json: %w", err)
	}

	return nil
}

// WriteYAML encodes the snapshot as YAML.
func WriteYAML(w io.Writer, snap dashboard.Snapshot) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(yamlIndent)

	err := encoder.Encode(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot yaml: %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("flush snapshot yaml: %w", err)
	}

	return nil
}
