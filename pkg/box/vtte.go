package box

import (
	"io"
)

// class VTTEmptyCueBox extends Box('vtte') {
// }

// VTTEmptyCueBox is the whole content of a sample that covers a gap between
// cues.
type VTTEmptyCueBox struct{}

func (box *VTTEmptyCueBox) Type() BoxType {
	return TypeVTTE
}

func (box *VTTEmptyCueBox) Size() uint64 {
	return BasicBoxLen
}

func (box *VTTEmptyCueBox) Decode(r io.ReadSeeker, header *BasicBox) error {
	c, err := openCursor(r, header)
	if err != nil {
		return err
	}
	return c.SkipToEnd()
}

func (box *VTTEmptyCueBox) Encode(w io.Writer) (int, error) {
	return NewBasicBox(TypeVTTE, BasicBoxLen).Encode(w)
}

func (box *VTTEmptyCueBox) Summary() string {
	return ""
}
