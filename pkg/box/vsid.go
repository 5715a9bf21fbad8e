package box

import (
	"fmt"
	"io"

	"m7s.live/mp4vtt/pkg/util"
)

// class CueSourceIDBox extends Box('vsid') {
// 	int(32) source_ID;
// }

type CueSourceIDBox struct {
	SourceID uint32 `json:"source_id"`
}

func (box *CueSourceIDBox) Type() BoxType {
	return TypeVSID
}

func (box *CueSourceIDBox) Size() uint64 {
	return BasicBoxLen + 4
}

// Decode accepts bodies longer than 4 bytes and ignores the excess.
func (box *CueSourceIDBox) Decode(r io.ReadSeeker, header *BasicBox) (err error) {
	var c *Cursor
	if c, err = openCursor(r, header); err != nil {
		return
	}
	buf := make([]byte, 4)
	if err = c.ReadFull(buf); err != nil {
		return
	}
	reader := util.Buffer(buf)
	box.SourceID = reader.ReadUint32()
	return c.SkipToEnd()
}

func (box *CueSourceIDBox) Encode(w io.Writer) (n int, err error) {
	if n, err = NewBasicBox(TypeVSID, box.Size()).Encode(w); err != nil {
		return
	}
	buf := make(util.Buffer, 0, 4)
	buf.WriteUint32(box.SourceID)
	var nn int
	nn, err = w.Write(buf)
	return n + nn, err
}

func (box *CueSourceIDBox) Summary() string {
	return fmt.Sprintf("source_id=%d", box.SourceID)
}
