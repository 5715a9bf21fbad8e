package box

import (
	"fmt"
	"io"
)

// class WebVTTSourceLabelBox extends Box('vlab') {
// 	boxstring source_label;
// }

type WebVTTSourceLabelBox struct {
	SourceLabel string `json:"source_label"`
}

func (box *WebVTTSourceLabelBox) Type() BoxType {
	return TypeVLAB
}

func (box *WebVTTSourceLabelBox) Size() uint64 {
	return boxStringSize(box.SourceLabel)
}

func (box *WebVTTSourceLabelBox) Decode(r io.ReadSeeker, header *BasicBox) (err error) {
	box.SourceLabel, err = decodeBoxString(r, header)
	return
}

func (box *WebVTTSourceLabelBox) Encode(w io.Writer) (int, error) {
	return encodeBoxString(w, TypeVLAB, box.SourceLabel)
}

func (box *WebVTTSourceLabelBox) Summary() string {
	return fmt.Sprintf("source_label=%s", box.SourceLabel)
}
