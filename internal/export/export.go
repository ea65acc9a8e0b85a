package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/radhe-ai/ravi/internal/activity"
)

// DefaultFilename is the export name used when none is given.
const DefaultFilename = "ravi-logs.jsonl.zst"

// ContentType is the media type of an export stream.
const ContentType = "application/zstd"

// Write encodes records to w as zstd-compressed JSON Lines.
func Write(w io.Writer, records []activity.Record) error {
	encoder, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}

	enc := json.NewEncoder(encoder)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			encoder.Close()
			return fmt.Errorf("encode record %s: %w", r.ID, err)
		}
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}
	return nil
}

// WriteFile writes records to path, creating parent directories.
// A path without the .jsonl.zst suffix gets it appended. Returns the final path.
func WriteFile(path string, records []activity.Record) (string, error) {
	if path == "" {
		path = DefaultFilename
	}
	if !strings.HasSuffix(path, ".jsonl.zst") {
		path += ".jsonl.zst"
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create export dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export: %w", err)
	}

	if err := Write(f, records); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close export: %w", err)
	}

	return path, nil
}

// Read decodes a stream produced by Write.
func Read(r io.Reader) ([]activity.Record, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer decoder.Close()

	var records []activity.Record
	scanner := bufio.NewScanner(decoder)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; scanner.Scan(); line++ {
		if len(strings.TrimSpace(scanner.Text())) == 0 {
			continue
		}
		var rec activity.Record
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("decode line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}

	return records, nil
}

// ReadFile decodes the export at path.
func ReadFile(path string) ([]activity.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()
	return Read(f)
}
