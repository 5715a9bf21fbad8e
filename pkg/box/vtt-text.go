package box

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"
)

// boxstring bodies: raw UTF-8, cut at the first NUL on read, written without
// a terminator.

func boxStringSize(s string) uint64 {
	return BasicBoxLen + uint64(len(s))
}

func decodeBoxString(r io.ReadSeeker, header *BasicBox) (s string, err error) {
	var c *Cursor
	if c, err = openCursor(r, header); err != nil {
		return
	}
	var remain int64
	if remain, err = c.Remaining(); err != nil {
		return
	}
	buf := make([]byte, remain)
	if err = c.ReadFull(buf); err != nil {
		return
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	if !utf8.Valid(buf) {
		return "", fmt.Errorf("%s: %w", header.Type, ErrInvalidText)
	}
	return string(buf), c.SkipToEnd()
}

func encodeBoxString(w io.Writer, boxtype BoxType, s string) (n int, err error) {
	if n, err = NewBasicBox(boxtype, boxStringSize(s)).Encode(w); err != nil {
		return
	}
	var nn int
	nn, err = io.WriteString(w, s)
	return n + nn, err
}
