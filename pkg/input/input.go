package input

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Reader reads lines without losing buffered input between calls.
type Reader struct {
	rd *bufio.Reader
}

func NewReader(rd io.Reader) *Reader {
	return &Reader{rd: bufio.NewReader(rd)}
}

type line struct {
	text string
	err  error
}

// ReadLine returns the next line without its trailing newline. A final
// line with no newline is returned with a nil error; io.EOF follows it.
// A cancelled context returns immediately, leaving the read pending.
func (r *Reader) ReadLine(ctx context.Context) (string, error) {
	result := make(chan line, 1)

	go func() {
		text, err := r.rd.ReadString('\n')
		if err == io.EOF && text != "" {
			err = nil
		}
		result <- line{text: strings.TrimRight(text, "\r\n"), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-result:
		return l.text, l.err
	}
}
