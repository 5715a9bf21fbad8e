package box

import (
	"fmt"
	"io"
)

// class WebVTTConfigurationBox extends Box('vttC') {
// 	boxstring config;
// }

// WebVTTConfigurationBox holds the text of the WebVTT file up to the first
// cue, starting with the "WEBVTT" signature line.
type WebVTTConfigurationBox struct {
	Config string `json:"config"`
}

func (box *WebVTTConfigurationBox) Type() BoxType {
	return TypeVTTC
}

func (box *WebVTTConfigurationBox) Size() uint64 {
	return boxStringSize(box.Config)
}

func (box *WebVTTConfigurationBox) Decode(r io.ReadSeeker, header *BasicBox) (err error) {
	box.Config, err = decodeBoxString(r, header)
	return
}

func (box *WebVTTConfigurationBox) Encode(w io.Writer) (int, error) {
	return encodeBoxString(w, TypeVTTC, box.Config)
}

func (box *WebVTTConfigurationBox) Summary() string {
	return fmt.Sprintf("config=%q", box.Config)
}
