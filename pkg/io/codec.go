package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/archdiagram/pkg/diagram"
	apperrors "github.com/matzehuels/archdiagram/pkg/errors"
	"github.com/matzehuels/archdiagram/pkg/render"
)

// Declaration formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// FormatFromPath returns the declaration format implied by a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", apperrors.New(apperrors.ErrCodeInvalidFormat,
		"cannot infer declaration format from %q (use .json, .yaml, .yml or .toml)", path)
}

// WriteJSON encodes a diagram as indented JSON.
func WriteJSON(d *diagram.Diagram, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromDiagram(d)); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode json")
	}
	return nil
}

// ReadJSON decodes a JSON declaration. Unknown fields are rejected.
func ReadJSON(r io.Reader) (*diagram.Diagram, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode json")
	}
	return doc.toDiagram()
}

// WriteYAML encodes a diagram as YAML.
func WriteYAML(d *diagram.Diagram, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fromDiagram(d)); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode yaml")
	}
	if err := enc.Close(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode yaml")
	}
	return nil
}

// ReadYAML decodes a YAML declaration. Unknown fields are rejected.
func ReadYAML(r io.Reader) (*diagram.Diagram, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode yaml")
	}
	return doc.toDiagram()
}

// WriteTOML encodes a diagram as TOML.
func WriteTOML(d *diagram.Diagram, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(fromDiagram(d)); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode toml")
	}
	return nil
}

// ReadTOML decodes a TOML declaration. Unknown keys are rejected.
func ReadTOML(r io.Reader) (*diagram.Diagram, error) {
	var doc document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "decode toml: unknown key %q", undecoded[0].String())
	}
	return doc.toDiagram()
}

// Write encodes d in the given declaration format.
func Write(d *diagram.Diagram, w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		return WriteJSON(d, w)
	case FormatYAML:
		return WriteYAML(d, w)
	case FormatTOML:
		return WriteTOML(d, w)
	}
	return apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported declaration format %q", format)
}

// Read decodes a declaration in the given format.
func Read(r io.Reader, format string) (*diagram.Diagram, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatTOML:
		return ReadTOML(r)
	}
	return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unsupported declaration format %q", format)
}

// Export writes d to path in format, or in the format implied by the
// extension when format is empty. The file is replaced atomically and is
// not touched when encoding fails.
func Export(d *diagram.Diagram, path, format string) error {
	if format == "" {
		var err error
		if format, err = FormatFromPath(path); err != nil {
			return err
		}
	}
	var buf bytes.Buffer
	if err := Write(d, &buf, format); err != nil {
		return err
	}
	return render.WriteFile(path, buf.Bytes())
}

// Import reads a declaration file, inferring the format from its extension.
func Import(path string) (*diagram.Diagram, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	d, err := Read(f, format)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.GetCode(err), err, "import %s", path)
	}
	return d, nil
}
