package xmi

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrMalformed marks a document whose XML framing cannot be read.
	ErrMalformed = errors.New("malformed document")
	// ErrDocumentTooLarge marks a document exceeding the configured byte limit.
	ErrDocumentTooLarge = errors.New("document too large")
	// ErrTooDeep marks a document nested deeper than the configured limit.
	ErrTooDeep = errors.New("document nesting too deep")
)

// ParseError is a fatal parse failure with the source position it occurred at.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var sb strings.Builder
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("line %d", e.Line))
		if e.Column > 0 {
			sb.WriteString(fmt.Sprintf(":%d", e.Column))
		}
		sb.WriteString(": ")
	}
	if e.Err != nil {
		sb.WriteString(e.Err.Error())
	} else {
		sb.WriteString("parse error")
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// limitedReader fails with ErrDocumentTooLarge once more than n bytes are read.
type limitedReader struct {
	r io.Reader
	n int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.n < 0 {
		return 0, ErrDocumentTooLarge
	}
	if int64(len(p)) > l.n+1 {
		p = p[:l.n+1]
	}
	n, err := l.r.Read(p)
	l.n -= int64(n)
	if l.n < 0 {
		return n, ErrDocumentTooLarge
	}
	return n, err
}
