// json_output.go - Machine-readable output for linediff commands.
//
// Every command accepts --json and then writes exactly one envelope to
// stdout (one per result, one per line, for watch).
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jeranaias/linediff/internal/config"
	"github.com/jeranaias/linediff/internal/render"
)

// now is replaced in tests.
var now = time.Now

// JSONResponse is the standardized response format for all CLI commands.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success" yaml:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data" yaml:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error" yaml:"error"`

	// ErrorType categorises Error (see ErrorType)
	ErrorType string `json:"error_type,omitempty" yaml:"error_type,omitempty"`

	// Timestamp is the RFC 3339 time when the response was generated
	Timestamp string `json:"timestamp" yaml:"timestamp"`

	// Command is the command that was executed
	Command string `json:"command,omitempty" yaml:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Error:     nil,
		Timestamp: now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Data:      nil,
		Error:     &errStr,
		Timestamp: now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Write outputs the response as indented JSON.
func (r *JSONResponse) Write(w io.Writer) error {
	return render.WriteJSON(w, r)
}

// WriteCompact outputs the response on a single line.
func (r *JSONResponse) WriteCompact(w io.Writer) error {
	return json.NewEncoder(w).Encode(r)
}

// WriteYAML outputs the response as a YAML document.
func (r *JSONResponse) WriteYAML(w io.Writer) error {
	return render.WriteYAML(w, r)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// DiffData is the data returned by the diff command.
type DiffData = render.Document

// StatsData is the data returned by the stats command.
type StatsData struct {
	Left      string `json:"left" yaml:"left"`
	Right     string `json:"right" yaml:"right"`
	Added     int    `json:"added" yaml:"added"`
	Removed   int    `json:"removed" yaml:"removed"`
	Unchanged int    `json:"unchanged" yaml:"unchanged"`
	Identical bool   `json:"identical" yaml:"identical"`
}

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version,omitempty" yaml:"go_version,omitempty"`
}

// ConfigData represents the data returned by config show.
type ConfigData struct {
	Path   string         `json:"config_path" yaml:"config_path"`
	Config *config.Config `json:"config" yaml:"config"`
}

// ConfigValueData represents the data returned by config get and set.
type ConfigValueData struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
	Path  string `json:"config_path,omitempty" yaml:"config_path,omitempty"`
}
