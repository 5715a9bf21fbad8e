package box

import (
	"fmt"
	"io"
)

// class CueIDBox extends Box('iden') {
// 	boxstring cue_id;
// }

type CueIDBox struct {
	CueID string `json:"cue_id"`
}

func (box *CueIDBox) Type() BoxType {
	return TypeIDEN
}

func (box *CueIDBox) Size() uint64 {
	return boxStringSize(box.CueID)
}

func (box *CueIDBox) Decode(r io.ReadSeeker, header *BasicBox) (err error) {
	box.CueID, err = decodeBoxString(r, header)
	return
}

func (box *CueIDBox) Encode(w io.Writer) (int, error) {
	return encodeBoxString(w, TypeIDEN, box.CueID)
}

func (box *CueIDBox) Summary() string {
	return fmt.Sprintf("cue_id=%s", box.CueID)
}
