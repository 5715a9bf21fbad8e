package box

import (
	"io"
	"strings"
)

// class VTTCueBox extends Box('vttc') {
// 	CueSourceIDBox();  // optional
// 	CueIDBox();        // optional
// 	CueTimeBox();      // optional
// 	CueSettingsBox();  // optional
// 	CuePayloadBox();   // required
// }

type VTTCueBox struct {
	SourceID    *CueSourceIDBox `json:"source_id,omitempty"`
	CueID       *CueIDBox       `json:"cue_id,omitempty"`
	CueTime     *CueTimeBox     `json:"cue_time,omitempty"`
	CueSettings *CueSettingsBox `json:"cue_settings,omitempty"`
	Payload     CuePayloadBox   `json:"payload"`
}

func (box *VTTCueBox) Type() BoxType {
	return TypeVTTc
}

// children in encoding order; the payload is always last.
func (box *VTTCueBox) children() (children []IBox) {
	if box.SourceID != nil {
		children = append(children, box.SourceID)
	}
	if box.CueID != nil {
		children = append(children, box.CueID)
	}
	if box.CueTime != nil {
		children = append(children, box.CueTime)
	}
	if box.CueSettings != nil {
		children = append(children, box.CueSettings)
	}
	return append(children, &box.Payload)
}

func (box *VTTCueBox) Size() uint64 {
	size := uint64(BasicBoxLen)
	for _, child := range box.children() {
		size += child.Size()
	}
	return size
}

// Decode keeps the last occurrence of a repeated child and drops unknown
// children.
func (box *VTTCueBox) Decode(r io.ReadSeeker, header *BasicBox) error {
	c, err := openCursor(r, header)
	if err != nil {
		return err
	}
	var cue VTTCueBox
	var payl *CuePayloadBox
	for {
		child, err := c.Next()
		if err != nil {
			return err
		}
		if child == nil {
			break
		}
		switch child.Type {
		case TypeVSID:
			cue.SourceID = &CueSourceIDBox{}
			err = cue.SourceID.Decode(r, child)
		case TypeIDEN:
			cue.CueID = &CueIDBox{}
			err = cue.CueID.Decode(r, child)
		case TypeCTIM:
			cue.CueTime = &CueTimeBox{}
			err = cue.CueTime.Decode(r, child)
		case TypeSTTG:
			cue.CueSettings = &CueSettingsBox{}
			err = cue.CueSettings.Decode(r, child)
		case TypePAYL:
			payl = &CuePayloadBox{}
			err = payl.Decode(r, child)
		default:
			err = c.SkipChild(child)
		}
		if err != nil {
			return err
		}
	}
	if payl == nil {
		return &MissingChildError{Parent: TypeVTTc, Child: TypePAYL}
	}
	if err = c.SkipToEnd(); err != nil {
		return err
	}
	cue.Payload = *payl
	*box = cue
	return nil
}

func (box *VTTCueBox) Encode(w io.Writer) (n int, err error) {
	if n, err = NewBasicBox(TypeVTTc, box.Size()).Encode(w); err != nil {
		return
	}
	for _, child := range box.children() {
		var nn int
		nn, err = child.Encode(w)
		n += nn
		if err != nil {
			return
		}
	}
	return
}

func (box *VTTCueBox) Summary() string {
	var parts []string
	for _, child := range box.children() {
		parts = append(parts, child.Summary())
	}
	return strings.Join(parts, " ")
}
