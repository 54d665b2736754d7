/*
Copyright © 2025 Travis Lyons travis.lyons@gmail.com

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

// Package cmd provides output helper functions for generated artifacts
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/trly/dockr/internal/fs"
	"github.com/trly/dockr/internal/service"
)

// stdoutPath selects stdout when passed as an output path.
const stdoutPath = "-"

// writeOutput writes content to path, or to out when path is empty or "-".
func writeOutput(files *fs.Service, out io.Writer, path, content string) error {
	if path == "" || path == stdoutPath {
		_, err := io.WriteString(out, content)
		return err
	}
	_, err := files.WriteArtifact(path, content)
	return err
}

// splitPair splits a KEY=VALUE pair.
func splitPair(pair string) (string, string, error) {
	key, value, ok := strings.Cut(pair, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("invalid KEY=VALUE pair: %q", pair)
	}
	return key, value, nil
}

// parseKeyValues parses KEY=VALUE pairs. Later pairs win.
func parseKeyValues(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	vals := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, err := splitPair(pair)
		if err != nil {
			return nil, err
		}
		vals[key] = value
	}
	return vals, nil
}

// parseEnvRows parses KEY=VALUE pairs into environment rows in order.
func parseEnvRows(pairs []string) ([]service.EnvVar, error) {
	rows := make([]service.EnvVar, 0, len(pairs))
	for _, pair := range pairs {
		key, value, err := splitPair(pair)
		if err != nil {
			return nil, err
		}
		rows = append(rows, service.EnvVar{Key: key, Value: value})
	}
	return rows, nil
}
