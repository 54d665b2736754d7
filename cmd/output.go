// Package cmd provides output formatting utilities for dockr CLI.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

var outputFormats = []string{"text", "json", "yaml"}

func validateOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case "text", "json", "yaml", "yml":
		return nil
	}
	return fmt.Errorf("unsupported output format: %s, allowed formats are: %v", format, outputFormats)
}

// isStructured reports whether format is a machine-readable format.
func isStructured(format string) bool {
	switch strings.ToLower(format) {
	case "json", "yaml", "yml":
		return true
	}
	return false
}

// PrintOutput formats and prints data according to the specified output format.
func PrintOutput(w io.Writer, format string, data interface{}) error {
	switch strings.ToLower(format) {
	case "json":
		return printJSON(w, data)
	case "yaml", "yml":
		return printYAML(w, data)
	case "text":
		return printText(w, data)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// printJSON outputs data as JSON.
func printJSON(w io.Writer, data interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// printYAML outputs data as YAML.
func printYAML(w io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer func() {
		_ = encoder.Close()
	}()
	return encoder.Encode(data)
}

// printText outputs data in a human-readable text format. Strings and
// string lists print one per line; anything else falls back to %+v.
func printText(w io.Writer, data interface{}) error {
	var err error
	switch v := data.(type) {
	case string:
		_, err = fmt.Fprintln(w, v)
	case []string:
		for _, s := range v {
			if _, err = fmt.Fprintln(w, s); err != nil {
				return err
			}
		}
	default:
		_, err = fmt.Fprintf(w, "%+v\n", data)
	}
	return err
}

// OperationResult represents the result of an operation that can be output in structured format.
type OperationResult struct {
	Success bool     `json:"success" yaml:"success"`
	Message string   `json:"message,omitempty" yaml:"message,omitempty"`
	Items   []string `json:"items,omitempty" yaml:"items,omitempty"`
	Errors  []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}
