package box

import (
	"fmt"
	"io"
	"math"
)

// Cursor bounds the body of one box. Every decoder reads through a cursor and
// finishes with SkipToEnd so siblings start where the header said they would.
type Cursor struct {
	r      io.ReadSeeker
	header *BasicBox
	start  int64
	end    int64
}

// openCursor expects r to be positioned right after header.
func openCursor(r io.ReadSeeker, header *BasicBox) (*Cursor, error) {
	hs := header.headerSize()
	if header.Size < hs {
		return nil, fmt.Errorf("%s declares %d bytes: %w", header.Type, header.Size, ErrSizeTooSmall)
	}
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	start := pos - int64(hs)
	end, err := boxEnd(r, header, start)
	if err != nil {
		return nil, err
	}
	return &Cursor{
		r:      r,
		header: header,
		start:  start,
		end:    end,
	}, nil
}

// boxEnd returns the offset after a box starting at start, failing when the
// declared size runs past the end of r. The position of r is preserved.
func boxEnd(r io.ReadSeeker, header *BasicBox, start int64) (int64, error) {
	if header.Size > uint64(math.MaxInt64-start) {
		return 0, fmt.Errorf("%s declares %d bytes: %w", header.Type, header.Size, io.ErrUnexpectedEOF)
	}
	end := start + int64(header.Size)
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	streamEnd, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err = r.Seek(pos, io.SeekStart); err != nil {
		return 0, err
	}
	if end > streamEnd {
		return 0, fmt.Errorf("%s declares %d bytes, %d available: %w", header.Type, header.Size, streamEnd-start, io.ErrUnexpectedEOF)
	}
	return end, nil
}

func (c *Cursor) Pos() (int64, error) {
	return c.r.Seek(0, io.SeekCurrent)
}

func (c *Cursor) Remaining() (int64, error) {
	pos, err := c.Pos()
	if err != nil {
		return 0, err
	}
	return c.end - pos, nil
}

// ReadFull fills buf without crossing the end of the box.
func (c *Cursor) ReadFull(buf []byte) error {
	remain, err := c.Remaining()
	if err != nil {
		return err
	}
	if int64(len(buf)) > remain {
		return fmt.Errorf("%s needs %d more bytes, %d left: %w", c.header.Type, len(buf), remain, ErrSizeTooSmall)
	}
	_, err = io.ReadFull(c.r, buf)
	return err
}

// Next reads the header of the next child. It returns nil once fewer bytes
// than a header remain; those bytes are padding. A child is rejected with
// ErrChildLargerThanParent when it exceeds the parent's size or overruns the
// bytes left in the parent.
func (c *Cursor) Next() (*BasicBox, error) {
	remain, err := c.Remaining()
	if err != nil {
		return nil, err
	}
	if remain < BasicBoxLen {
		return nil, nil
	}
	child, err := ReadHeader(c.r)
	if err != nil {
		return nil, err
	}
	if child.Size > c.header.Size || child.End() > c.end {
		return nil, fmt.Errorf("%s (%d bytes) in %s (%d bytes): %w", child.Type, child.Size, c.header.Type, c.header.Size, ErrChildLargerThanParent)
	}
	return child, nil
}

// SkipChild moves past a child whose header was returned by Next.
func (c *Cursor) SkipChild(child *BasicBox) error {
	if child.Size < child.headerSize() {
		return fmt.Errorf("%s declares %d bytes: %w", child.Type, child.Size, ErrSizeTooSmall)
	}
	_, err := c.r.Seek(child.End(), io.SeekStart)
	return err
}

func (c *Cursor) SkipToEnd() error {
	_, err := c.r.Seek(c.end, io.SeekStart)
	return err
}
