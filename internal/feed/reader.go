// Package feed reads, parses, and validates the pipe-delimited sales feed.
package feed

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/avencourt/salescope/internal/common"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// encodings is the fallback chain tried when decoding a feed file.
// Legacy exports from the reporting system are occasionally latin-1 or cp1252.
var encodings = []struct {
	enc  encoding.Encoding
	name string
}{
	{unicode.UTF8, "utf-8"},
	{charmap.ISO8859_1, "latin-1"},
	{charmap.Windows1252, "cp1252"},
}

// ReadLines reads a sales feed file and returns its data lines.
// The header row is skipped and blank lines are dropped.
func ReadLines(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sales feed: %w", err)
	}

	content, encodingName, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrUndecodable, path)
	}

	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			// Header row
			first = false
			continue
		}
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan sales feed: %w", err)
	}

	slog.Debug("Read sales feed",
		"path", path,
		"encoding", encodingName,
		"lines", len(lines))

	return lines, nil
}

// decode converts raw file bytes to a string, trying each known encoding.
func decode(raw []byte) (string, string, error) {
	if utf8.Valid(raw) {
		return string(raw), "utf-8", nil
	}

	for _, e := range encodings[1:] {
		decoded, err := e.enc.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		return string(decoded), e.name, nil
	}

	return "", "", common.ErrUndecodable
}
