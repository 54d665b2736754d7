package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPrintOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	data := OperationResult{
		Success: true,
		Message: "Test successful",
		Items:   []string{"item1", "item2"},
	}

	require.NoError(t, PrintOutput(&buf, "json", data))

	var result OperationResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, data, result)
	assert.Contains(t, buf.String(), "\n  \"success\": true")
}

func TestPrintOutput_YAML(t *testing.T) {
	for _, format := range []string{"yaml", "yml", "YAML"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			data := OperationResult{Success: false, Errors: []string{"boom"}}

			require.NoError(t, PrintOutput(&buf, format, data))

			var result OperationResult
			require.NoError(t, yaml.Unmarshal(buf.Bytes(), &result))
			assert.Equal(t, data, result)
		})
	}
}

func TestPrintOutput_Text(t *testing.T) {
	tests := []struct {
		name     string
		data     interface{}
		expected string
	}{
		{name: "string", data: "hello", expected: "hello\n"},
		{name: "string list", data: []string{"db", "api"}, expected: "db\napi\n"},
		{name: "struct", data: struct{ Field string }{"value"}, expected: "{Field:value}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, PrintOutput(&buf, "text", tt.data))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestPrintOutput_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := PrintOutput(&buf, "invalid", map[string]string{"key": "value"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format: invalid")
}

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range []string{"text", "json", "yaml", "yml", "JSON"} {
		assert.NoError(t, validateOutputFormat(format), format)
	}
	assert.Error(t, validateOutputFormat("xml"))

	assert.True(t, isStructured("json"))
	assert.True(t, isStructured("yml"))
	assert.False(t, isStructured("text"))
}
