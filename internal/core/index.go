package core

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Stanza is one record's worth of key/value fields from a repository
// index. Looking up a key the stanza does not carry is the ordinary
// two-value map access; repository indexes omit optional fields all the
// time and that is never a parse failure.
type Stanza map[string]string

// Field returns the value for key and whether the stanza carries it.
func (s Stanza) Field(key string) (string, bool) {
	value, ok := s[key]
	return value, ok
}

// StanzaScanner decodes a repository index stream into stanzas, one
// Scan call at a time, in source order. The scanner is lazy, single
// pass, and forward only; restart by constructing a new scanner over
// the same input.
//
// Each non-blank line either starts a field ("Key: value") or, when it
// begins with whitespace, continues the previous field: the trimmed
// text is appended with no separator. A blank line terminates the
// stanza; a trailing stanza at end of input is still emitted.
type StanzaScanner struct {
	scanner *bufio.Scanner
	stanza  Stanza
	err     error
	line    int
	done    bool
}

func NewStanzaScanner(r io.Reader) *StanzaScanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &StanzaScanner{scanner: scanner}
}

// Scan advances to the next stanza. It returns false at end of input or
// on the first malformed line; Err tells the two apart.
func (s *StanzaScanner) Scan() bool {
	if s.done || s.err != nil {
		return false
	}
	var stanza Stanza
	lastKey := ""
	for s.scanner.Scan() {
		s.line++
		line := s.scanner.Text()
		if line == "" {
			if len(stanza) > 0 {
				s.stanza = stanza
				return true
			}
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			if lastKey == "" {
				s.err = errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("malformed index: continuation before any field at line %d", s.line))
				return false
			}
			stanza[lastKey] += strings.TrimSpace(line)
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			s.err = errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("malformed index: no field separator at line %d", s.line))
			return false
		}
		if stanza == nil {
			stanza = Stanza{}
		}
		lastKey = strings.TrimSpace(key)
		stanza[lastKey] = strings.TrimSpace(value)
	}
	if err := s.scanner.Err(); err != nil {
		s.err = errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("malformed index: stream read failed").
			WithCause(err)
		return false
	}
	s.done = true
	if len(stanza) > 0 {
		s.stanza = stanza
		return true
	}
	return false
}

// Stanza returns the stanza produced by the last successful Scan.
func (s *StanzaScanner) Stanza() Stanza {
	return s.stanza
}

func (s *StanzaScanner) Err() error {
	return s.err
}
