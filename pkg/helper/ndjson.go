package helper

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"
)

// maxLineSize bounds a single NDJSON line. Device supervisors concatenate
// container output into one record, so lines can get long.
const maxLineSize = 1024 * 1024

// OnLineFunc is invoked for each NDJSON line. Returning io.EOF stops the
// scan gracefully.
type OnLineFunc func(line []byte) error

// ScanNDJSON streams newline-delimited JSON from the reader to the callback.
// Blank lines and keepalive frames (a single space) are skipped.
func ScanNDJSON(r io.Reader, fn OnLineFunc) error {
	if fn == nil {
		return errors.New("ndjson: callback cannot be nil")
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || (len(line) == 1 && line[0] == ' ') {
			continue
		}
		dup := append([]byte(nil), line...)
		if err := fn(dup); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
	return scanner.Err()
}

// ReadNDJSON reads all NDJSON entries from the reader into a slice.
func ReadNDJSON[T any](r io.Reader) ([]T, error) {
	var out []T
	err := ScanNDJSON(r, func(line []byte) error {
		var item T
		if err := json.Unmarshal(line, &item); err != nil {
			return err
		}
		out = append(out, item)
		return nil
	})
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return out, nil
}

// ReadNDJSONFile reads all NDJSON entries from the file into a slice.
func ReadNDJSONFile[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return ReadNDJSON[T](f)
}
