package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/davidbz/chargeflow/internal/charge"
)

// chargeFile is the on-disk form of a charge configuration.
type chargeFile struct {
	ChargeModel string         `json:"charge_model" yaml:"charge_model"`
	Properties  map[string]any `json:"properties"   yaml:"properties"`
}

// readChargeFile loads path, or stdin for "-". YAML is chosen by extension;
// anything else is parsed as JSON with exact numbers.
func readChargeFile(path string, stdin io.Reader) (charge.Model, charge.Properties, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to read charge file: %w", err)
	}

	var file chargeFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return "", nil, fmt.Errorf("failed to parse YAML charge file: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&file); err != nil {
			return "", nil, fmt.Errorf("failed to parse JSON charge file: %w", err)
		}
	}

	model, err := charge.ParseModel(file.ChargeModel)
	if err != nil {
		return "", nil, err
	}

	return model, file.Properties, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type validationOutput struct {
	Valid  bool                    `json:"valid"`
	Errors charge.ValidationErrors `json:"errors"`
}
