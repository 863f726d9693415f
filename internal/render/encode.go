// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/jeranaias/linediff/internal/diff"
)

// Document is the machine-readable form of one diff.
type Document struct {
	Left      string        `json:"left" yaml:"left"`
	Right     string        `json:"right" yaml:"right"`
	Options   diff.Options  `json:"options" yaml:"options"`
	Added     int           `json:"added" yaml:"added"`
	Removed   int           `json:"removed" yaml:"removed"`
	Unchanged int           `json:"unchanged" yaml:"unchanged"`
	Records   []diff.Record `json:"records" yaml:"records"`
}

// NewDocument bundles a result with the names and options that produced it.
func NewDocument(left, right string, opts diff.Options, res diff.Result) Document {
	records := res.Records
	if records == nil {
		records = []diff.Record{}
	}
	return Document{
		Left:      left,
		Right:     right,
		Options:   opts,
		Added:     res.Added,
		Removed:   res.Removed,
		Unchanged: res.Unchanged,
		Records:   records,
	}
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// WriteYAML writes v as a YAML document.
func WriteYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write YAML: %w", err)
	}
	return nil
}
