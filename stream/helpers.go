// Package stream filters line-oriented input through whole-line matchers.
//
// Example - print the lines of a log that match a pattern:
//
//	re := thompson.MustCompile("(GET|POST) ok")
//	io.Copy(os.Stdout, stream.MatchLines(file, re))
package stream

import (
	"bytes"
	"errors"
	"io"
)

const chunkSize = 4096

// Matcher is satisfied by *thompson.Regexp and by generated matchers.
type Matcher interface {
	MatchBytes(b []byte) bool
}

// MatchLines returns an io.Reader that only outputs the lines of r that m
// matches in full. The line terminator ("\n" or "\r\n") is not passed to m
// but is kept in the output.
func MatchLines(r io.Reader, m Matcher) io.Reader {
	return LineFilter(r, func(line []byte) bool {
		return m.MatchBytes(trimEOL(line))
	})
}

// LineFilter returns an io.Reader that only outputs lines matching the predicate.
// Lines are delimited by '\n'. The newline character is included in the line
// passed to the predicate and in the output.
func LineFilter(r io.Reader, pred func(line []byte) bool) io.Reader {
	return &lineFilterReader{
		source: r,
		pred:   pred,
		buf:    make([]byte, 0, chunkSize),
	}
}

func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte{'\n'})
	return bytes.TrimSuffix(line, []byte{'\r'})
}

// lineFilterReader implements io.Reader for LineFilter.
type lineFilterReader struct {
	source io.Reader
	pred   func(line []byte) bool

	// Unprocessed input; buf[start:] holds at most one partial line.
	buf       []byte
	start     int
	sourceEOF bool

	// Lines that passed the filter and have not been read yet.
	output []byte

	err error
}

func (r *lineFilterReader) Read(p []byte) (int, error) {
	for len(r.output) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		r.err = r.fill()
	}

	n := copy(p, r.output)
	r.output = r.output[n:]
	return n, nil
}

// fill reads one more chunk from the source and filters every complete
// line in the buffer. It returns io.EOF once the source is drained.
func (r *lineFilterReader) fill() error {
	// Drop processed lines
	remaining := copy(r.buf, r.buf[r.start:])
	r.buf = r.buf[:remaining]
	r.start = 0
	r.output = r.output[:0]

	if !r.sourceEOF {
		if cap(r.buf)-len(r.buf) < chunkSize {
			grown := make([]byte, len(r.buf), 2*cap(r.buf)+chunkSize)
			copy(grown, r.buf)
			r.buf = grown
		}

		n, err := r.source.Read(r.buf[len(r.buf):cap(r.buf)])
		r.buf = r.buf[:len(r.buf)+n]
		if errors.Is(err, io.EOF) {
			r.sourceEOF = true
		} else if err != nil {
			// Lines completed by this read are still delivered.
			r.splitLines()
			return err
		}
	}

	r.splitLines()

	if r.sourceEOF {
		// Last line without newline
		if r.start < len(r.buf) {
			r.emit(r.buf[r.start:])
			r.start = len(r.buf)
		}
		return io.EOF
	}
	return nil
}

// splitLines filters every complete line in buf[start:].
func (r *lineFilterReader) splitLines() {
	for {
		idx := bytes.IndexByte(r.buf[r.start:], '\n')
		if idx < 0 {
			return
		}
		r.emit(r.buf[r.start : r.start+idx+1])
		r.start += idx + 1
	}
}

func (r *lineFilterReader) emit(line []byte) {
	if r.pred(line) {
		r.output = append(r.output, line...)
	}
}
