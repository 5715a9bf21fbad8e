package box

import (
	"fmt"
	"io"
)

// class CueTimeBox extends Box('ctim') {
// 	boxstring cue_current_time;
// }

// CueTimeBox carries the WebVTT timestamp of the sample start, for cues that
// began in an earlier sample.
type CueTimeBox struct {
	CurrentTime string `json:"current_time"`
}

func (box *CueTimeBox) Type() BoxType {
	return TypeCTIM
}

func (box *CueTimeBox) Size() uint64 {
	return boxStringSize(box.CurrentTime)
}

func (box *CueTimeBox) Decode(r io.ReadSeeker, header *BasicBox) (err error) {
	box.CurrentTime, err = decodeBoxString(r, header)
	return
}

func (box *CueTimeBox) Encode(w io.Writer) (int, error) {
	return encodeBoxString(w, TypeCTIM, box.CurrentTime)
}

func (box *CueTimeBox) Summary() string {
	return fmt.Sprintf("current_time=%s", box.CurrentTime)
}
