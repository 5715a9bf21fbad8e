package box

import (
	"fmt"
	"io"
)

// class CuePayloadBox extends Box('payl') {
// 	boxstring cue_text;
// }

type CuePayloadBox struct {
	CueText string `json:"cue_text"`
}

func (box *CuePayloadBox) Type() BoxType {
	return TypePAYL
}

func (box *CuePayloadBox) Size() uint64 {
	return boxStringSize(box.CueText)
}

func (box *CuePayloadBox) Decode(r io.ReadSeeker, header *BasicBox) (err error) {
	box.CueText, err = decodeBoxString(r, header)
	return
}

func (box *CuePayloadBox) Encode(w io.Writer) (int, error) {
	return encodeBoxString(w, TypePAYL, box.CueText)
}

func (box *CuePayloadBox) Summary() string {
	return fmt.Sprintf("cue_text=%q", box.CueText)
}
