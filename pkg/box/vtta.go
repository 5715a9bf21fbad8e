package box

import (
	"fmt"
	"io"
)

// class VTTAdditionalTextBox extends Box('vtta') {
// 	boxstring cue_additional_text;
// }

// VTTAdditionalTextBox carries text that sat between cues in the source file,
// such as NOTE blocks.
type VTTAdditionalTextBox struct {
	CueAdditionalText string `json:"cue_additional_text"`
}

func (box *VTTAdditionalTextBox) Type() BoxType {
	return TypeVTTA
}

func (box *VTTAdditionalTextBox) Size() uint64 {
	return boxStringSize(box.CueAdditionalText)
}

func (box *VTTAdditionalTextBox) Decode(r io.ReadSeeker, header *BasicBox) (err error) {
	box.CueAdditionalText, err = decodeBoxString(r, header)
	return
}

func (box *VTTAdditionalTextBox) Encode(w io.Writer) (int, error) {
	return encodeBoxString(w, TypeVTTA, box.CueAdditionalText)
}

func (box *VTTAdditionalTextBox) Summary() string {
	return fmt.Sprintf("cue_additional_text=%q", box.CueAdditionalText)
}
