package core

import (
	"bufio"
	"io"
	"strings"
)

// ContentScanner decodes a Contents index stream line by line. Each
// useful line carries a file path and a location column separated by
// whitespace; lines with fewer than two columns (headers, blanks) are
// skipped rather than reported.
type ContentScanner struct {
	scanner  *bufio.Scanner
	file     string
	location string
}

func NewContentScanner(r io.Reader) *ContentScanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &ContentScanner{scanner: scanner}
}

// Scan advances to the next file entry, returning false at end of
// input or on a read error.
func (s *ContentScanner) Scan() bool {
	for s.scanner.Scan() {
		fields := strings.Fields(s.scanner.Text())
		if len(fields) < 2 {
			continue
		}
		s.file = fields[0]
		s.location = fields[1]
		return true
	}
	return false
}

// File returns the file path column of the current entry.
func (s *ContentScanner) File() string {
	return s.file
}

// Location returns the location column of the current entry.
func (s *ContentScanner) Location() string {
	return s.location
}

func (s *ContentScanner) Err() error {
	return s.scanner.Err()
}
