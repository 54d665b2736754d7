package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvKey(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		expectError bool
	}{
		{"valid uppercase", "NODE_ENV", false},
		{"valid leading underscore", "_PRIVATE", false},
		{"valid mixed case", "myVar2", false},
		{"empty", "", true},
		{"starts with digit", "1VAR", true},
		{"starts with dash", "-VAR", true},
		{"contains dash", "MY-VAR", true},
		{"contains dot", "my.var", true},
		{"too long", strings.Repeat("A", MaxEnvKeyLen+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EnvKey(tt.key)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnvValue(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		expected []string
	}{
		{name: "plain variable", key: "NODE_ENV", value: "production"},
		{name: "plain short value", key: "PORT", value: "80"},
		{name: "strong secret", key: "DB_PASSWORD", value: "v9#Lq2!xZr"},
		{name: "default secret", key: "DB_PASSWORD", value: "Admin", expected: []string{"sensitive variable DB_PASSWORD appears to contain a test/default value"}},
		{name: "short secret", key: "API_TOKEN", value: "abc12", expected: []string{"sensitive variable API_TOKEN has a short value, consider a secret"}},
		{name: "repeating secret", key: "JWT_SECRET", value: "aaaaaaaaab", expected: []string{"sensitive variable JWT_SECRET has a low entropy value"}},
		{name: "null byte", key: "NAME", value: "a\x00b", expected: []string{"value of NAME contains a null byte"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EnvValue(tt.key, tt.value))
		})
	}
}

func TestSanitizeForLogging(t *testing.T) {
	assert.Equal(t, "production", SanitizeForLogging("NODE_ENV", "production"))
	assert.Equal(t, "[REDACTED]", SanitizeForLogging("API_KEY", "abcd"))
	assert.Equal(t, "s3******23", SanitizeForLogging("DB_PASSWORD", "s3cretpw23"))
}

func TestIsSensitiveKey(t *testing.T) {
	for _, key := range []string{"PASSWORD", "db_password", "GITHUB_TOKEN", "TLS_CERT", "AUTH_URL"} {
		assert.True(t, IsSensitiveKey(key), key)
	}
	for _, key := range []string{"NODE_ENV", "PORT", "DATABASE_URL"} {
		assert.False(t, IsSensitiveKey(key), key)
	}
}

func TestIsRepeatingPattern(t *testing.T) {
	assert.False(t, isRepeatingPattern("abc"))
	assert.True(t, isRepeatingPattern("aaaa"))
	assert.True(t, isRepeatingPattern("aaab"))
	assert.False(t, isRepeatingPattern("abcd"))
}
