// Package validate checks environment variables for naming problems and
// weak secret values.
package validate

import (
	"fmt"
	"strings"
	"unicode"
)

// Limits for environment variables.
const (
	MaxEnvValueSize = 32768 // 32KB
	MaxEnvKeyLen    = 256
)

var (
	// sensitiveKeywords identifies potentially sensitive environment variable names.
	sensitiveKeywords = []string{
		"password", "secret", "key", "token", "auth", "credential",
		"private", "cert", "ssl", "tls", "api_key", "access_key",
	}

	// weakValues are obvious test or default values.
	weakValues = []string{"password", "secret", "123456", "admin", "test", "default", "changeme"}
)

// EnvKey validates an environment variable key against POSIX naming rules.
func EnvKey(key string) error {
	if key == "" {
		return fmt.Errorf("environment variable key cannot be empty")
	}
	if len(key) > MaxEnvKeyLen {
		return fmt.Errorf("environment variable key is longer than %d characters", MaxEnvKeyLen)
	}

	for i, r := range key {
		if i == 0 {
			if unicode.IsDigit(r) {
				return fmt.Errorf("environment variable key cannot start with digit: %s", key)
			}
			if !unicode.IsLetter(r) && r != '_' {
				return fmt.Errorf("environment variable key must start with letter or underscore: %s", key)
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return fmt.Errorf("environment variable key contains invalid character '%c': %s", r, key)
		}
	}

	return nil
}

// EnvValue returns warnings about an environment variable value. Values of
// sensitive keys are checked for weak content. Warnings never include the
// value itself.
func EnvValue(key, value string) []string {
	var warnings []string

	if len(value) > MaxEnvValueSize {
		warnings = append(warnings, fmt.Sprintf("value of %s is very large (%d bytes)", key, len(value)))
	}
	if strings.ContainsRune(value, 0) {
		warnings = append(warnings, fmt.Sprintf("value of %s contains a null byte", key))
	}
	if !IsSensitiveKey(key) {
		return warnings
	}

	lowerValue := strings.ToLower(strings.TrimSpace(value))
	for _, weak := range weakValues {
		if lowerValue == weak {
			return append(warnings, fmt.Sprintf("sensitive variable %s appears to contain a test/default value", key))
		}
	}
	if len(value) < 8 {
		warnings = append(warnings, fmt.Sprintf("sensitive variable %s has a short value, consider a secret", key))
	} else if isRepeatingPattern(value) {
		warnings = append(warnings, fmt.Sprintf("sensitive variable %s has a low entropy value", key))
	}

	return warnings
}

// IsSensitiveKey reports whether an environment variable key indicates sensitive data.
func IsSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, keyword := range sensitiveKeywords {
		if strings.Contains(lowerKey, keyword) {
			return true
		}
	}
	return false
}

// isRepeatingPattern checks if a string consists mostly of repeating characters.
func isRepeatingPattern(s string) bool {
	if len(s) < 4 {
		return false
	}

	charCount := make(map[rune]int)
	for _, r := range s {
		charCount[r]++
	}

	// More than half the string is one character.
	threshold := len(s) / 2
	for _, count := range charCount {
		if count > threshold {
			return true
		}
	}

	return false
}

// SanitizeForLogging redacts sensitive values for safe logging.
func SanitizeForLogging(key, value string) string {
	if !IsSensitiveKey(key) {
		return value
	}
	if len(value) <= 4 {
		return "[REDACTED]"
	}
	// Show first 2 and last 2 characters with asterisks in between
	return value[:2] + strings.Repeat("*", len(value)-4) + value[len(value)-2:]
}
