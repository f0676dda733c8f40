// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile reads applicant data files for the CLI. The format is
// chosen by extension: .yaml and .yml are YAML, .json is JSON. The path "-"
// reads YAML from standard input, which also accepts JSON documents.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/credit-engine/pkg/types"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// ErrUnsupportedFormat is returned for file extensions other than
// .yaml, .yml and .json.
var ErrUnsupportedFormat = errors.New("unsupported profile format")

// Format identifies a profile encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf returns the encoding implied by path's extension.
func FormatOf(path string) (Format, error) {
	if path == Stdin {
		return FormatYAML, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Decode reads one document of the given format from r into v.
func Decode(r io.Reader, format Format, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading profile: %w", err)
	}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parsing JSON profile: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parsing YAML profile: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}

// Load decodes the file at path into v.
func Load(path string, v any) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	if path == Stdin {
		return Decode(os.Stdin, format, v)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening profile: %w", err)
	}
	defer f.Close()

	if err := Decode(f, format, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadFinancial reads a FinancialProfile from path.
func LoadFinancial(path string) (types.FinancialProfile, error) {
	var p types.FinancialProfile
	err := Load(path, &p)
	return p, err
}

// LoadPsychometric reads a PsychometricProfile from path.
func LoadPsychometric(path string) (types.PsychometricProfile, error) {
	var p types.PsychometricProfile
	err := Load(path, &p)
	return p, err
}

// LoadApplicant reads an Applicant from path. When the file carries no id,
// the file name without extension is used.
func LoadApplicant(path string) (types.Applicant, error) {
	var a types.Applicant
	if err := Load(path, &a); err != nil {
		return a, err
	}
	if a.ID == "" && path != Stdin {
		base := filepath.Base(path)
		a.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return a, nil
}
