package box

import (
	"fmt"
	"io"
)

// class CueSettingsBox extends Box('sttg') {
// 	boxstring settings;
// }

type CueSettingsBox struct {
	Settings string `json:"settings"`
}

func (box *CueSettingsBox) Type() BoxType {
	return TypeSTTG
}

func (box *CueSettingsBox) Size() uint64 {
	return boxStringSize(box.Settings)
}

func (box *CueSettingsBox) Decode(r io.ReadSeeker, header *BasicBox) (err error) {
	box.Settings, err = decodeBoxString(r, header)
	return
}

func (box *CueSettingsBox) Encode(w io.Writer) (int, error) {
	return encodeBoxString(w, TypeSTTG, box.Settings)
}

func (box *CueSettingsBox) Summary() string {
	return fmt.Sprintf("settings=%s", box.Settings)
}
